// Command lookup fetches the earthquake feed once and prints the record with
// the given event ID.
//
// Usage:
//
//	go run ./cmd/lookup -id nc73872510
//	go run ./cmd/lookup -id us7000kfnh -url https://example.test/all_week.geojson
//
// Exit status is 0 when the record is found, 2 when it is absent, and 1 when
// the feed cannot be fetched or the record is malformed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/adapter/feed"
	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

func main() {
	id := flag.String("id", config.DefaultLookupID, "USGS event ID to look up")
	url := flag.String("url", config.DefaultEarthquakeFeedURL, "earthquake GeoJSON feed URL")
	timeout := flag.Duration("timeout", 30*time.Second, "feed request timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Stdout, os.Stderr, *id, *url, *timeout))
}

func run(ctx context.Context, stdout, stderr io.Writer, id, url string, timeout time.Duration) int {
	logger := slog.New(slog.NewTextHandler(stderr, nil))
	// No /metrics here, so the counters stay unregistered.
	client := feed.NewClient(url, "", timeout, observability.NewMetricsForTesting(), logger)

	rc, err := client.Earthquakes(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: %v\n", err)
		return 1
	}

	features, rejected := domain.ParseEarthquakes(rc.Features)
	rejected = append(rc.Rejected, rejected...)
	for _, err := range rejected {
		logger.Warn("skipping feature", "error", err)
	}

	eq, err := domain.FindInBatch(features, rejected, id)
	var mf *domain.MalformedFeatureError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		fmt.Fprintf(stderr, "%s not found among %d earthquakes\n", id, len(features))
		return 2
	case errors.As(err, &mf):
		fmt.Fprintf(stderr, "%s is in the feed but malformed: %s\n", id, mf.Reason)
		return 1
	}

	cat := domain.ClassifyDepth(eq.Position.Depth)
	fmt.Fprintf(stdout, "id:         %s\n", eq.ID)
	fmt.Fprintf(stdout, "longitude:  %g\n", eq.Position.Lon)
	fmt.Fprintf(stdout, "latitude:   %g\n", eq.Position.Lat)
	fmt.Fprintf(stdout, "depth:      %g km (%s, %s)\n", eq.Position.Depth, cat, cat.Color())
	fmt.Fprintf(stdout, "magnitude:  %g\n", eq.Magnitude)
	if eq.Place != "" {
		fmt.Fprintf(stdout, "place:      %s\n", eq.Place)
	}
	if !eq.Time.IsZero() {
		fmt.Fprintf(stdout, "time:       %s\n", eq.Time.UTC().Format(time.RFC3339))
	}
	return 0
}
