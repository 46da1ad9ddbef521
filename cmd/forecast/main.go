package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/climate-forecast/internal/adapter/dataset"
	"github.com/couchcryptid/climate-forecast/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/climate-forecast/internal/adapter/kafka"
	"github.com/couchcryptid/climate-forecast/internal/adapter/scenario"
	"github.com/couchcryptid/climate-forecast/internal/adapter/sqlite"
	"github.com/couchcryptid/climate-forecast/internal/config"
	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/observability"
	"github.com/couchcryptid/climate-forecast/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	input := domain.DefaultForecastInput()
	if cfg.ForecastInputPath != "" {
		input, err = scenario.Load(cfg.ForecastInputPath)
		if err != nil {
			logger.Error("failed to load forecast scenario", "path", cfg.ForecastInputPath, "error", err)
			os.Exit(1)
		}
	}
	logger.Info("forecast scenario loaded", "projections", len(input), "path", cfg.ForecastInputPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runs := httpadapter.NewRunCache(httpadapter.DefaultRecentRuns)
	loaders := []pipeline.Loader{runs}

	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loaders = append(loaders, writer)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	}

	var store *sqlite.Store
	if cfg.SQLitePath != "" {
		store, err = sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			logger.Error("failed to open forecast history", "path", cfg.SQLitePath, "error", err)
			os.Exit(1)
		}
		loaders = append(loaders, store)

		// Serve the last stored forecast until the first run completes.
		if last, err := store.LatestRun(ctx); err == nil {
			_ = runs.LoadRun(ctx, last)
			logger.Info("restored latest forecast", "run_id", last.ID, "generated_at", last.GeneratedAt)
		} else if !errors.Is(err, sqlite.ErrNotFound) {
			logger.Warn("failed to restore latest forecast", "error", err)
		}
	}

	p := pipeline.New(logger, metrics)
	src := dataset.NewFile(cfg.DataPath)
	opts := pipeline.Options{SplitRatio: cfg.SplitRatio, Seed: cfg.SplitSeed}

	var srvOpts []httpadapter.ServerOption
	if store != nil {
		srvOpts = append(srvOpts, httpadapter.WithHistory(store))
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, runs, logger, srvOpts...)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start forecast scheduler.
	go func() {
		if err := p.ForecastEvery(ctx, cfg.ForecastInterval, src, input, opts, loaders...); err != nil {
			logger.Error("forecast scheduler error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("forecast history close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
