package main

import (
	"github.com/spf13/cobra"

	redisdb "github.com/talenthub/talenthub-api/internal/infrastructure/db/redis"
	"github.com/talenthub/talenthub-api/internal/seed"
)

const defaultSeedPassword = "talenthub-demo"

func (a *app) seeder(res *resources, password string) *seed.Seeder {
	var locker seed.Locker = seed.NopLocker{}
	if res.redis != nil {
		locker = redisdb.NewLocker(res.redis)
	}
	return seed.New(res.store, locker, a.log, seed.Options{
		Password: password,
		Fixtures: seed.DefaultFixtures(),
	})
}

func newSeedCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, jobs and projects; existing rows are kept",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer res.Close()

			_, err = a.seeder(res, password).Seed(cmd.Context())
			return err
		},
	}
	cmd.Flags().StringVar(&password, "password", defaultSeedPassword, "password given to every seeded user")
	return cmd
}

func newPurgeCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every project, job and user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				a.log.Warn().Msg("purge deletes all marketplace data; re-run with --yes to confirm")
				return nil
			}
			res, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer res.Close()

			_, err = a.seeder(res, "").Purge(cmd.Context())
			return err
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
