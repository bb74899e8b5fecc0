package main

import (
	"context"
	"time"

	"cofounder-match/internal/config"
	"cofounder-match/internal/database"
	dbpostgres "cofounder-match/internal/database/postgres"
	"cofounder-match/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "cofounder-match"

var (
	flagJSON  bool
	flagDebug bool

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "cofounder-match serves co-founder discovery, likes and matches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "verbose/debug output (overrides LOG_DEBUG)")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "json format for logging (overrides LOG_JSON)")
}

// setup loads configuration and builds the logger shared by every command.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	json, debug := cfg.Log.JSON, cfg.Log.Debug
	if cmd.Flags().Changed("json") {
		json = flagJSON
	}
	if cmd.Flags().Changed("debug") {
		debug = flagDebug
	}

	log, err := logger.New(json, debug)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log.With(zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment)), nil
}

func connect(ctx context.Context, cfg config.DatabaseConfig) (database.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return dbpostgres.Connect(ctx, cfg)
}
