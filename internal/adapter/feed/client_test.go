package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headerContentType = "Content-Type"

func testClient(quakeURL, plateURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		earthquakeURL: quakeURL,
		boundaryURL:   plateURL,
		metrics:       observability.NewMetricsForTesting(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func serveFile(t *testing.T, path string) *httptest.Server {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set(headerContentType, "application/geo+json")
		_, _ = w.Write(data)
	}))
}

func TestClient_Earthquakes_Success(t *testing.T) {
	srv := serveFile(t, "../../domain/testdata/all_week_sample.geojson")
	defer srv.Close()

	c := testClient(srv.URL, "", 5*time.Second)
	rc, err := c.Earthquakes(context.Background())
	require.NoError(t, err)

	require.Len(t, rc.Features, 5)
	assert.Empty(t, rc.Rejected)
	assert.Equal(t, "nc73872510", rc.Features[2].ID)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.metrics.FetchErrors.WithLabelValues(SourceEarthquakes)))
}

func TestClient_Boundaries_Success(t *testing.T) {
	srv := serveFile(t, "../../domain/testdata/boundaries_sample.geojson")
	defer srv.Close()

	c := testClient("", srv.URL, 5*time.Second)
	rc, err := c.Boundaries(context.Background())
	require.NoError(t, err)
	assert.Len(t, rc.Features, 2)
}

func TestClient_Earthquakes_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`upstream busy`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "", 5*time.Second)
	_, err := c.Earthquakes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "earthquakes")
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.FetchErrors.WithLabelValues(SourceEarthquakes)))
}

func TestClient_Boundaries_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, "application/json")
		_, _ = w.Write([]byte(`{"type":"Topology"}`))
	}))
	defer srv.Close()

	c := testClient("", srv.URL, 5*time.Second)
	_, err := c.Boundaries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plates feed")
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.FetchErrors.WithLabelValues(SourcePlates)))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, "", 50*time.Millisecond)
	_, err := c.Earthquakes(context.Background())
	require.Error(t, err)
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := serveFile(t, "../../domain/testdata/all_week_sample.geojson")
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testClient(srv.URL, "", 5*time.Second)
	_, err := c.Earthquakes(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
