package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// Source labels used in logs and metrics.
const (
	SourceEarthquakes = "earthquakes"
	SourcePlates      = "plates"
)

// maxBodyBytes caps a single feed download. The USGS all_month feed is
// roughly 10 MB; PB2002 boundaries are under 2 MB.
const maxBodyBytes = 64 << 20

// Client fetches the earthquake and plate-boundary GeoJSON feeds.
type Client struct {
	httpClient    *http.Client
	earthquakeURL string
	boundaryURL   string
	metrics       *observability.Metrics
	logger        *slog.Logger
}

// NewClient creates a feed client for the two fixed endpoints.
func NewClient(earthquakeURL, boundaryURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		earthquakeURL: earthquakeURL,
		boundaryURL:   boundaryURL,
		metrics:       metrics,
		logger:        logger,
	}
}

// Earthquakes fetches and decodes the earthquake feed.
func (c *Client) Earthquakes(ctx context.Context) (domain.RawCollection, error) {
	return c.fetch(ctx, c.earthquakeURL, SourceEarthquakes)
}

// Boundaries fetches and decodes the plate-boundary feed.
func (c *Client) Boundaries(ctx context.Context) (domain.RawCollection, error) {
	return c.fetch(ctx, c.boundaryURL, SourcePlates)
}

func (c *Client) fetch(ctx context.Context, url, source string) (domain.RawCollection, error) {
	start := time.Now()
	rc, err := c.doRequest(ctx, url, source)
	c.metrics.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchErrors.WithLabelValues(source).Inc()
		return domain.RawCollection{}, err
	}
	c.logger.Debug("feed fetched",
		"source", source,
		"features", len(rc.Features),
		"rejected", len(rc.Rejected),
		"duration", time.Since(start),
	)
	return rc, nil
}

func (c *Client) doRequest(ctx context.Context, url, source string) (domain.RawCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RawCollection{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RawCollection{}, fmt.Errorf("%s feed request: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.RawCollection{}, fmt.Errorf("%s feed error: status %d: %s", source, resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.RawCollection{}, fmt.Errorf("read %s feed: %w", source, err)
	}

	rc, err := domain.DecodeCollection(data)
	if err != nil {
		return domain.RawCollection{}, fmt.Errorf("%s feed: %w", source, err)
	}
	return rc, nil
}
