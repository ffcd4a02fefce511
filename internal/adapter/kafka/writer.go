package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/overlay"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes styled earthquake markers to a Kafka topic.
// It implements pipeline.MarkerSink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured marker topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes one render pass worth of markers in a single
// WriteMessages call. Messages are keyed by event ID so repeated passes over
// the same event land on the same partition.
func (w *Writer) LoadBatch(ctx context.Context, markers []overlay.Marker) error {
	if len(markers) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(markers))
	for i := range markers {
		msg, err := serializeToMessage(markers[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write markers: %w", err)
	}
	w.logger.Debug("markers published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a marker into a Kafka message.
func serializeToMessage(m overlay.Marker) (kafkago.Message, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize marker: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(m.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(m.Style.Color.String())},
			{Key: "color", Value: []byte(m.Style.Color.Color())},
			{Key: "magnitude", Value: []byte(strconv.FormatFloat(m.Magnitude, 'f', -1, 64))},
		},
	}, nil
}
