package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flipdeck/flipdeck/internal/api"
	"github.com/flipdeck/flipdeck/internal/app"
	"github.com/flipdeck/flipdeck/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal analytics API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		cfg := a.Config()

		log.Info("starting flipdeck server",
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
		)

		var registry *metrics.Registry
		if cfg.Metrics.Enabled {
			registry = a.Registry()
		}

		server, err := api.NewServer(api.Config{
			Host:        cfg.Server.Host,
			Port:        cfg.Server.Port,
			APIKey:      cfg.Server.APIKey,
			MetricsPath: cfg.Metrics.Path,
		}, api.Dependencies{
			Source:   a,
			Registry: registry,
		}, log)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}

		// Recompute loop drives gauges and alert rules.
		loopCtx, stopLoop := context.WithCancel(context.Background())
		defer stopLoop()
		go func() {
			if err := a.Start(loopCtx); err != nil && err != context.Canceled {
				log.Error("recompute loop error", zap.Error(err))
			}
		}()

		go func() {
			if err := server.Start(); err != nil {
				log.Error("server error", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("shutting down flipdeck server")
		stopLoop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	})
}
