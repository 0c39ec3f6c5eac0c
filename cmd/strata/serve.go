package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/strata/internal/config"
	"github.com/aretw0/strata/pkg/adapters/file"
	httpAdapter "github.com/aretw0/strata/pkg/adapters/http"
	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/observability"
	"github.com/aretw0/strata/pkg/ports"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Hosts puzzle sessions over a JSON API, with live views over SSE and pointer
gestures over WebSocket. Metrics are exposed on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		puzzles, _ := cmd.Flags().GetString("puzzles")

		logger := newLogger(cfg)

		var loader ports.PuzzleLoader = memory.NewDefaultLoader()
		if puzzles != "" {
			loader = file.NewDir(puzzles)
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		var server *httpAdapter.Server
		metrics := observability.NewMetrics(reg, func() int { return server.Sessions.Count() })
		server = httpAdapter.NewServer(
			httpAdapter.WithDefaultPuzzle(cfg),
			httpAdapter.WithLoader(loader),
			httpAdapter.WithLifecycleHooks(observability.Combine(metrics.Hooks(), observability.LoggingHooks(logger))),
			httpAdapter.WithGatherer(reg),
			httpAdapter.WithLogger(logger),
		)

		// Streams (SSE, WebSocket) end when baseCtx is cancelled, so Shutdown can complete.
		baseCtx, cancelStreams := context.WithCancel(context.Background())
		defer cancelStreams()
		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return baseCtx },
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting strata server", "addr", srv.Addr, "puzzle", cfg.Name, "catalogue", describeCatalogue(puzzles))
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("shutting down")
			cancelStreams()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("strata server stopped gracefully", "sessions", server.Sessions.Count())
		}
		return nil
	},
}

func describeCatalogue(dir string) string {
	if dir == "" {
		return config.DefaultName
	}
	return dir
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides server.addr)")
	serveCmd.Flags().String("puzzles", "", "Directory of puzzle YAML files offered by POST /sessions")
}
