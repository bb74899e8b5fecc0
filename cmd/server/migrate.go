package main

import (
	"fmt"

	"cofounder-match/internal/database/migration"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
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

		applied, err := migration.Runner{Dir: cfg.App.MigrationsDir, Log: log}.Run(cmd.Context(), db.SQLDB())
		if err != nil {
			return err
		}
		log.Info("migrations complete", zap.Int("applied", len(applied)))
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
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

		statuses, err := migration.Runner{Dir: cfg.App.MigrationsDir, Log: log}.Status(cmd.Context(), db.SQLDB())
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "V%d\t%s\t%s\n", s.Version, s.Name, state)
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}
