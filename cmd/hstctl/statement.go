package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/datastore"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/pdf"
)

func newStatementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Genera el estado de cuenta en PDF",
		Long: `Genera el estado de cuenta del período indicado.
Sin fechas usa el mes en curso (primer día del mes hasta hoy).`,
		Example: `  hstctl statement
  hstctl statement --from 2026-01-01 --to 2026-03-31 --out-dir ./reportes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			outDir, _ := cmd.Flags().GetString("out-dir")

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			loc := cfg.App.Location()
			p := ledger.MonthToDate(time.Now().In(loc))
			if from != "" || to != "" {
				if p, err = ledger.NewPeriod(from, to, loc); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			stores, err := datastore.Open(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer stores.Close()

			snapshots := bookkeeping.NewSnapshotLoader(stores.Movements, stores.Invoices, stores.Payments)
			uc := bookkeeping.NewStatementUseCase(snapshots,
				pdf.NewStatementGenerator(cfg.App.Name, language.AmericanEnglish), "HST - Estado de cuenta")
			content, filename, err := uc.Render(ctx, p)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o750); err != nil {
				return fmt.Errorf("crear %s: %w", outDir, err)
			}
			path := filepath.Join(outDir, filename)
			if err := os.WriteFile(path, content, 0o640); err != nil {
				return fmt.Errorf("escribir %s: %w", path, err)
			}
			log.Info().Str("file", path).Str("period", p.Label()).Int("bytes", len(content)).Msg("estado de cuenta generado")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().String("from", "", "Desde (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Hasta (YYYY-MM-DD)")
	cmd.Flags().String("out-dir", ".", "Directorio de salida")
	return cmd
}
