package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/hst-contabilidad/pkg/config"
	"github.com/jhoicas/hst-contabilidad/pkg/logger"
)

var version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hstctl",
		Short: "Administración de HST Contabilidad",
		Long: `hstctl agrupa las tareas que no pasan por el API:
generar el hash de la contraseña del operador, crear enlaces de solo lectura
para los visores y descargar el estado de cuenta en PDF.

Lee la misma configuración que el API (variables de entorno o .env).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newHashPasswordCmd(), newShareLinkCmd(), newStatementCmd())
	return root
}

// loadConfig configuración y logger para los comandos que usan el almacén.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	return cfg, log.Component("hstctl"), nil
}
