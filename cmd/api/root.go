package main

import (
	"github.com/spf13/cobra"

	"vet-clinic-records/internal/config"
	"vet-clinic-records/internal/platform/logger"
)

// app agrupa lo que cargan los PersistentPreRunE y usan los subcomandos.
type app struct {
	configFile string
	cfg        config.Config
	log        logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "api",
		Short: "Vet clinic records service",
		Long: `Servicio de registro de animales, dueños y procedimientos.

Sin subcomando levanta el servidor HTTP (igual que "api serve").`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (yaml/json/toml); env vars take precedence")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newAnimalCmd(a))
	return root
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		App:    cfg.AppName,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}
