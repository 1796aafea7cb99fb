package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"stargate/internal/platform/config"
	"stargate/internal/platform/httpserver"
	"stargate/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

// buildApp is replaced in tests.
var buildApp = build

// main loads configuration, builds the application and keeps the server
// lifecycle small. Business logic lives in the internal service packages.
func main() {
	os.Exit(run())
}

// run returns the process exit code. Deferred cleanup always runs before
// main exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := buildApp(ctx, cfg, log, prometheus.DefaultRegisterer)
	if err != nil {
		log.Error("failed to start", "error", err)
		return 1
	}
	defer application.close()

	srv := httpserver.New(cfg.Addr, application.router)
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range application.background {
		g.Go(func() error {
			if err := task(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		log.Info("starting stargate", "addr", cfg.Addr, "env", cfg.Env, "storage", application.storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return 1
	}
	return 0
}
