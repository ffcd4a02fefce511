//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/adapter/feed"
	"github.com/couchcryptid/quake-map-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/couchcryptid/quake-map-service/internal/overlay"
	"github.com/couchcryptid/quake-map-service/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testMarkerTopic = "test-markers"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("quakemap-test"))
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start kafka container")

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// serveFeeds serves the sample earthquake and boundary collections.
func serveFeeds(t *testing.T) (quakesURL, platesURL string) {
	t.Helper()
	quakes, err := os.ReadFile("../domain/testdata/all_week_sample.geojson")
	require.NoError(t, err)
	plates, err := os.ReadFile("../domain/testdata/boundaries_sample.geojson")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /quakes", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write(quakes) })
	mux.HandleFunc("GET /plates", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write(plates) })
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL + "/quakes", srv.URL + "/plates"
}

type publishedMarker struct {
	Marker  overlay.Marker
	Key     string
	Headers map[string]string
}

func readMarker(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMarker {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from marker topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var m overlay.Marker
	require.NoError(t, json.Unmarshal(msg.Value, &m), "unmarshal marker message")

	return publishedMarker{Marker: m, Key: string(msg.Key), Headers: headers}
}

// TestRenderPassPublishesMarkers runs a full render pass against local feeds
// and reads every styled marker back from Kafka.
func TestRenderPassPublishesMarkers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testMarkerTopic)

	cfg := &config.Config{
		KafkaEnabled: true,
		KafkaBrokers: []string{broker},
		KafkaTopic:   testMarkerTopic,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	quakesURL, platesURL := serveFeeds(t)
	metrics := observability.NewMetricsForTesting()
	source := feed.NewClient(quakesURL, platesURL, 10*time.Second, metrics, discardLogger())
	builder := overlay.NewBuilder(domain.StyleResolver{}, overlay.DefaultLineStyle)

	p := pipeline.New(source, builder, writer, overlay.BaseMap{Zoom: 3}, discardLogger(), metrics)

	m, err := p.Render(ctx)
	require.NoError(t, err)

	quakes, err := m.Layer(overlay.LayerEarthquakes)
	require.NoError(t, err)
	require.Len(t, quakes.Markers, 5)
	plates, err := m.Layer(overlay.LayerPlates)
	require.NoError(t, err)
	require.Len(t, plates.Lines, 1)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testMarkerTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	got := make(map[string]publishedMarker, len(quakes.Markers))
	for range quakes.Markers {
		pm := readMarker(ctx, t, consumer)
		got[pm.Key] = pm
	}

	for _, want := range quakes.Markers {
		pm, ok := got[want.ID]
		require.True(t, ok, "marker %s not published", want.ID)
		assert.Equal(t, want, pm.Marker)
		assert.Equal(t, want.Style.Color.String(), pm.Headers["category"])
		assert.Equal(t, want.Style.Color.Color(), pm.Headers["color"])
	}

	cobb := got["nc73872510"]
	assert.Equal(t, domain.Shallow, cobb.Marker.Style.Color)
	assert.Equal(t, "red", cobb.Headers["color"])
	assert.Equal(t, "2.71", cobb.Headers["magnitude"])
	assert.InDelta(t, 13.55, cobb.Marker.Style.Radius, 1e-9)
}
