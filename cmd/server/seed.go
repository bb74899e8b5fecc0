package main

import (
	"context"
	"time"

	"cofounder-match/internal/database/seeder"
	"cofounder-match/internal/infrastructure/cache"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagDemo bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the skill catalog, optionally with demo profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}

		db, err := connect(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		seeders := seeder.Defaults()
		if flagDemo {
			seeders = seeder.WithDemo()
		}
		if err := (seeder.Runner{Seeders: seeders, Log: log}).Run(cmd.Context(), db); err != nil {
			return err
		}

		// Cached catalog and queue snapshots predate the seed.
		redis := cache.NewRedis(cfg.Redis, log)
		defer redis.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		if err := redis.InvalidateSkills(ctx); err != nil {
			log.Warn("invalidate skills cache failed", zap.Error(err))
		}
		if err := redis.InvalidateDiscovery(ctx); err != nil {
			log.Warn("invalidate discovery queues failed", zap.Error(err))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&flagDemo, "demo", false, "also insert demo founder profiles")
}
