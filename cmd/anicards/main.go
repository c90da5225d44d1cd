package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/RLAlpha49/AniCards-sub005/internal/anilist"
	"github.com/RLAlpha49/AniCards-sub005/internal/config"
	"github.com/RLAlpha49/AniCards-sub005/internal/jobs"
	"github.com/RLAlpha49/AniCards-sub005/internal/log"
	"github.com/RLAlpha49/AniCards-sub005/internal/metrics"
	"github.com/RLAlpha49/AniCards-sub005/internal/server"
	"github.com/RLAlpha49/AniCards-sub005/internal/service"
	"github.com/RLAlpha49/AniCards-sub005/internal/store"
	"github.com/RLAlpha49/AniCards-sub005/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// It is unrecoverable if we cannot produce an application config
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialise logger
	logger, err := log.New(log.Config{
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.FilePath,
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	// Set the default global logger
	log.SetDefaultLogger(logger)

	log.Info("Starting up AniCards", "version", version.GetVersion(), "build_time", version.GetBuildTime())

	if err := run(cfg); err != nil {
		log.Error("Unhandled error while running server", "error", err)
		os.Exit(1)
	}

	log.Info("AniCards shutting down.  Goodbye!")
}

func run(cfg *config.Config) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	counter := metrics.NewPrometheus(registry)

	st, err := store.Open(cfg.Store.Dir, counter)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("Error closing card store", "error", err)
		}
	}()

	al := anilist.NewClient(cfg.AniList.Endpoint)
	svc := service.New(st, nil)

	refresher := jobs.NewRefresher(st, al, counter)
	if cfg.Jobs.RefreshSchedule != "" {
		if err := refresher.Start(cfg.Jobs.RefreshSchedule); err != nil {
			return fmt.Errorf("starting refresh job: %w", err)
		}
		defer refresher.Stop()
	}

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, svc, st, al, counter, registry)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("Received shutdown signal", "signal", sig.String())
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	}
}
