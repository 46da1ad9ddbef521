package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/climate-forecast/internal/config"
	"github.com/couchcryptid/climate-forecast/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes forecast entries to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "kafka" }

// LoadRun publishes one message per forecast year in a single
// WriteMessages call. Entries share a key prefix so a run lands on
// predictable partitions.
func (w *Writer) LoadRun(ctx context.Context, run domain.ForecastRun) error {
	msgs, err := serializeRun(run)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish forecast run %s: %w", run.ID, err)
	}
	w.logger.Debug("forecast published", "run_id", run.ID, "messages", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// EntryMessage is the JSON value of a published forecast entry.
type EntryMessage struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	domain.ForecastEntry
}

// serializeRun marshals each entry of a run into a Kafka message.
func serializeRun(run domain.ForecastRun) ([]kafkago.Message, error) {
	generatedAt := []byte(run.GeneratedAt.UTC().Format(time.RFC3339))
	msgs := make([]kafkago.Message, len(run.Result))
	for i, entry := range run.Result {
		data, err := json.Marshal(EntryMessage{RunID: run.ID, GeneratedAt: run.GeneratedAt, ForecastEntry: entry})
		if err != nil {
			return nil, fmt.Errorf("serialize forecast entry %d: %w", entry.Year, err)
		}
		msgs[i] = kafkago.Message{
			Key:   []byte(run.ID + "/" + strconv.Itoa(entry.Year)),
			Value: data,
			Time:  run.GeneratedAt,
			Headers: []kafkago.Header{
				{Key: "run_id", Value: []byte(run.ID)},
				{Key: "tier", Value: []byte(entry.Tier)},
				{Key: "generated_at", Value: generatedAt},
			},
		}
	}
	return msgs, nil
}
