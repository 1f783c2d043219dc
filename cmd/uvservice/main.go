package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/uv-index-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/uv-index-etl/internal/adapter/kafka"
	"github.com/couchcryptid/uv-index-etl/internal/adapter/rivm"
	"github.com/couchcryptid/uv-index-etl/internal/config"
	"github.com/couchcryptid/uv-index-etl/internal/domain"
	"github.com/couchcryptid/uv-index-etl/internal/observability"
	"github.com/couchcryptid/uv-index-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	client := rivm.NewClient(cfg.StationsURL, cfg.FeedTimeout, metrics, logger)

	// Station metadata is optional (STATIONS_URL).
	var stations domain.StationDirectory
	if cfg.StationsURL != "" {
		stations = rivm.NewCachedDirectory(client)
		logger.Info("station directory enabled", "url", cfg.StationsURL)
	} else {
		logger.Info("station directory disabled")
	}

	// Hourly records are produced to Kafka only when brokers are configured.
	var (
		publisher pipeline.HourlyPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.SinkEnabled.Set(1)
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka sink disabled")
	}

	locator := domain.FeedLocator{BaseURL: cfg.FeedBaseURL, SourceTag: cfg.FeedSourceTag, Ext: cfg.FeedFileExt}
	svc := pipeline.New(
		pipeline.NewFeedFetcher(client, locator, cfg.FeedMinBytes, cfg.FeedLocation, metrics, logger),
		pipeline.NewTransformer(cfg.FeedDelimiters, cfg.FeedLocation, metrics, logger),
		stations,
		publisher,
		pipeline.NewResultCache(cfg.CacheTTL, clock),
		clock, logger, metrics,
	)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Warm the cache so /readyz turns green without waiting for a client.
	g.Go(func() error {
		res, err := svc.Load(gctx)
		switch {
		case err != nil && gctx.Err() == nil:
			logger.Warn("initial load failed", "error", err)
		case err == nil:
			logger.Info("initial load complete", "records", len(res.UVData), "mock", res.MockUVDataUsed)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
	}

	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
