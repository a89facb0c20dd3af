package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talenthub/talenthub-api/internal/infrastructure/config"
	"github.com/talenthub/talenthub-api/internal/infrastructure/db/postgres"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|reset|version]",
		Short:     "Apply or inspect the Postgres schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status", "reset", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.StoreDriver != config.DriverPostgres {
				return fmt.Errorf("migrate needs STORE_DRIVER=postgres, got %q", a.cfg.StoreDriver)
			}
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			res, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer res.Close()

			m, err := postgres.NewMigrator(res.pool, a.log)
			if err != nil {
				return err
			}
			defer m.Close()
			return m.Run(cmd.Context(), command)
		},
	}
}
