package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"cofounder-match/internal/app"
	"cofounder-match/internal/database/migration"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and websocket server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&flagMigrate, "migrate", false, "apply pending migrations before serving")
}

func serve(cmd *cobra.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	bootstrap, cleanup, err := app.Bootstrap(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("cleanup error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flagMigrate {
		r := migration.Runner{Dir: cfg.App.MigrationsDir, Log: log}
		if _, err := r.Run(ctx, bootstrap.Container.DB.SQLDB()); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return bootstrap.Fiber.ShutdownWithContext(shutdownCtx)
}
