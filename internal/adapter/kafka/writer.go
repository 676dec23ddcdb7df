package kafka

import (
	"context"
	"log/slog"

	"github.com/World-Meteorological-Organization/cap2geojson/internal/config"
	"github.com/World-Meteorological-Organization/cap2geojson/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces GeoJSON feature collections to the sink topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes multiple feature messages to the sink topic in a
// single WriteMessages call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, msgs []pipeline.FeatureMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]kafkago.Message, len(msgs))
	for i := range msgs {
		out[i] = serializeToMessage(msgs[i])
	}
	return w.writer.WriteMessages(ctx, out...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage maps a feature message onto a Kafka message, carrying
// the headers in a stable order.
func serializeToMessage(msg pipeline.FeatureMessage) kafkago.Message {
	headers := make([]kafkago.Header, 0, len(msg.Headers))
	for _, key := range []string{"cap_identifier", "converted_at"} {
		if value, ok := msg.Headers[key]; ok {
			headers = append(headers, kafkago.Header{Key: key, Value: []byte(value)})
		}
	}
	return kafkago.Message{
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	}
}
