package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

const (
	DefaultEarthquakeFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson"
	DefaultBoundaryFeedURL   = "https://raw.githubusercontent.com/fraxen/tectonicplates/master/GeoJSON/PB2002_boundaries.json"
	DefaultTileURL           = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultLookupID          = "nc73872510"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Feed endpoints.
	EarthquakeFeedURL string
	BoundaryFeedURL   string
	FeedTimeout       time.Duration

	// Marker and overlay styling.
	MinRadius      float64
	BoundaryColor  string
	BoundaryWeight float64

	// Base map.
	MapCenterLat float64
	MapCenterLon float64
	MapZoom      int
	TileURL      string

	// LookupID is the event logged by the startup diagnostic. Empty disables it.
	LookupID string

	// Optional Kafka sink for styled markers.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FEED_TIMEOUT", "30s"))
	if err != nil || feedTimeout <= 0 {
		return nil, errors.New("invalid FEED_TIMEOUT")
	}

	minRadius, err := parseFloat("MIN_RADIUS", "0")
	if err != nil {
		return nil, err
	}
	if minRadius < 0 {
		return nil, errors.New("MIN_RADIUS must not be negative")
	}

	boundaryWeight, err := parseFloat("BOUNDARY_WEIGHT", "3")
	if err != nil {
		return nil, err
	}
	if boundaryWeight <= 0 {
		return nil, errors.New("BOUNDARY_WEIGHT must be positive")
	}

	centerLat, err := parseFloat("MAP_CENTER_LAT", "37.09")
	if err != nil {
		return nil, err
	}
	centerLon, err := parseFloat("MAP_CENTER_LON", "-95.71")
	if err != nil {
		return nil, err
	}
	zoom, err := strconv.Atoi(sharedcfg.EnvOrDefault("MAP_ZOOM", "3"))
	if err != nil || zoom < 0 || zoom > 22 {
		return nil, errors.New("invalid MAP_ZOOM")
	}

	lookupID := DefaultLookupID
	if v, ok := os.LookupEnv("LOOKUP_ID"); ok {
		lookupID = v
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		EarthquakeFeedURL: sharedcfg.EnvOrDefault("EARTHQUAKE_FEED_URL", DefaultEarthquakeFeedURL),
		BoundaryFeedURL:   sharedcfg.EnvOrDefault("BOUNDARY_FEED_URL", DefaultBoundaryFeedURL),
		FeedTimeout:       feedTimeout,

		MinRadius:      minRadius,
		BoundaryColor:  sharedcfg.EnvOrDefault("BOUNDARY_COLOR", "yellow"),
		BoundaryWeight: boundaryWeight,

		MapCenterLat: centerLat,
		MapCenterLon: centerLon,
		MapZoom:      zoom,
		TileURL:      sharedcfg.EnvOrDefault("TILE_URL", DefaultTileURL),

		LookupID: lookupID,

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "earthquake-markers"),
	}

	if cfg.MapCenterLat < -90 || cfg.MapCenterLat > 90 {
		return nil, errors.New("MAP_CENTER_LAT out of range")
	}
	if cfg.MapCenterLon < -180 || cfg.MapCenterLon > 180 {
		return nil, errors.New("MAP_CENTER_LON out of range")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

// renderMargin is the headroom on top of two sequential feed fetches.
const renderMargin = 30 * time.Second

// RenderWriteTimeout bounds a response that waits on a full render pass:
// the earthquake and boundary fetches run one after the other.
func (c *Config) RenderWriteTimeout() time.Duration {
	return 2*c.FeedTimeout + renderMargin
}

func parseFloat(key, def string) (float64, error) {
	v, err := strconv.ParseFloat(sharedcfg.EnvOrDefault(key, def), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
