package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/talenthub/talenthub-api/internal/infrastructure/config"
	"github.com/talenthub/talenthub-api/pkg/logger"
)

// app is the state shared by every subcommand once configuration is loaded.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "talenthub",
		Short:         "TalentHub marketplace API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  !cfg.IsProduction(),
				Service: "talenthub-api",
			})
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newPurgeCmd(a),
	)
	return root
}
