package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/quake-map-service/internal/adapter/feed"
	httpadapter "github.com/couchcryptid/quake-map-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-map-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/couchcryptid/quake-map-service/internal/overlay"
	"github.com/couchcryptid/quake-map-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat).With("service", "quake-map")
	metrics := observability.NewMetrics()

	source := feed.NewClient(cfg.EarthquakeFeedURL, cfg.BoundaryFeedURL, cfg.FeedTimeout, metrics, logger)
	builder := overlay.NewBuilder(
		domain.StyleResolver{MinRadius: cfg.MinRadius},
		overlay.LineStyle{Color: cfg.BoundaryColor, Weight: cfg.BoundaryWeight},
	)
	base := overlay.BaseMap{
		CenterLat:   cfg.MapCenterLat,
		CenterLon:   cfg.MapCenterLon,
		Zoom:        cfg.MapZoom,
		TileURL:     cfg.TileURL,
		Attribution: overlay.OSMAttribution,
	}

	// Marker publication is feature-flagged via KAFKA_ENABLED.
	var (
		sink   pipeline.MarkerSink
		writer *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sink = writer
		logger.Info("kafka marker sink enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka marker sink disabled")
	}

	p := pipeline.New(source, builder, sink, base, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, cfg.RenderWriteTimeout(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Startup render pass and diagnostic lookup.
	go func() {
		if err := p.Run(ctx, cfg.LookupID); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("startup render error", "error", err)
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

	logger.Info("shutdown complete")
}
