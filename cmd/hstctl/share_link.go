package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/datastore"
)

func newShareLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share-link",
		Short: "Enlaces de solo lectura para los visores",
	}
	cmd.AddCommand(newShareLinkCreateCmd())
	return cmd
}

func newShareLinkCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un enlace compartido y muestra su URL",
		Example: `  hstctl share-link create --name contador
  hstctl share-link create --name socio --expires 720h`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			expires, _ := cmd.Flags().GetDuration("expires")
			baseURL, _ := cmd.Flags().GetString("base-url")
			if expires < 0 {
				return fmt.Errorf("--expires no puede ser negativo")
			}

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = cfg.Storage.PublicBaseURL
			}

			ctx := cmd.Context()
			stores, err := datastore.Open(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer stores.Close()

			now := time.Now()
			link := &entity.ShareLink{
				ID:        uuid.NewString(),
				Token:     strings.ReplaceAll(uuid.NewString(), "-", ""),
				Name:      strings.TrimSpace(name),
				Active:    true,
				CreatedAt: now,
			}
			if expires > 0 {
				exp := now.Add(expires)
				link.ExpiresAt = &exp
			}
			if err := stores.ShareLinks.Create(ctx, link); err != nil {
				return fmt.Errorf("guardar enlace: %w", err)
			}
			log.Info().Str("name", link.Name).Str("driver", stores.Driver).Msg("enlace compartido creado")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "token: %s\n", link.Token)
			fmt.Fprintf(out, "url:   %s/api/report/%s\n", strings.TrimRight(baseURL, "/"), link.Token)
			if link.ExpiresAt != nil {
				fmt.Fprintf(out, "vence: %s\n", link.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().String("name", "", "Nombre descriptivo del enlace")
	cmd.Flags().Duration("expires", 0, "Vigencia (ej. 720h); 0 = sin vencimiento")
	cmd.Flags().String("base-url", "", "URL pública del API (default STORAGE_PUBLIC_BASE_URL)")
	return cmd
}
