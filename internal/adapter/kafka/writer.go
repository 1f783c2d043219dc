package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/uv-index-etl/internal/config"
	"github.com/couchcryptid/uv-index-etl/internal/domain"
)

// Writer produces hourly UV records to a Kafka topic.
// It implements pipeline.HourlyPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
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

// PublishHourly serializes and publishes the records in a single
// WriteMessages call. Records of one station share a partition.
func (w *Writer) PublishHourly(ctx context.Context, records []domain.HourlyUVRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d hourly records: %w", len(msgs), err)
	}
	w.logger.Debug("hourly records published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// messageKey identifies one station-hour, e.g. "260|2025-06-01T10:00:00Z".
func messageKey(rec domain.HourlyUVRecord) string {
	return rec.StationID + "|" + rec.Hour.UTC().Format(time.RFC3339)
}

// serializeToMessage marshals an HourlyUVRecord into a Kafka message.
func serializeToMessage(rec domain.HourlyUVRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize hourly record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(messageKey(rec)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station_id", Value: []byte(rec.StationID)},
			{Key: "hour", Value: []byte(rec.Hour.UTC().Format(time.RFC3339))},
		},
	}, nil
}
