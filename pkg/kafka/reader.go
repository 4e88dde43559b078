// Package kafka reads a bounded run of messages from one topic partition
// using segmentio/kafka-go. The run ends at the partition's high-water mark as
// observed when reading starts, so a corpus loaded from Kafka is a fixed
// snapshot in offset order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/config"
	"github.com/segmentio/kafka-go"
)

// MessageHandler is a callback invoked for each Kafka message in offset order.
type MessageHandler func(ctx context.Context, key []byte, value []byte) error

// Reader reads one partition from its first offset.
type Reader struct {
	cfg    config.KafkaConfig
	logger *slog.Logger
}

// NewReader creates a Reader for the configured topic partition.
func NewReader(cfg config.KafkaConfig) *Reader {
	return &Reader{
		cfg:    cfg,
		logger: slog.Default().With("component", "kafka-reader", "topic", cfg.Topic, "partition", cfg.Partition),
	}
}

// ReadAll hands every message from the first offset up to the current
// high-water mark to handler, stopping early after cfg.Limit messages when
// Limit is positive. It returns the number of messages handled.
func (r *Reader) ReadAll(ctx context.Context, handler MessageHandler) (int, error) {
	if len(r.cfg.Brokers) == 0 {
		return 0, fmt.Errorf("no kafka brokers configured")
	}
	first, last, err := r.offsets(ctx)
	if err != nil {
		return 0, err
	}
	if last <= first {
		r.logger.Info("partition empty", "first_offset", first, "last_offset", last)
		return 0, nil
	}

	kr := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   r.cfg.Brokers,
		Topic:     r.cfg.Topic,
		Partition: r.cfg.Partition,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer kr.Close()
	if err := kr.SetOffset(first); err != nil {
		return 0, fmt.Errorf("seeking to offset %d: %w", first, err)
	}

	handled := 0
	for {
		if r.cfg.Limit > 0 && handled >= r.cfg.Limit {
			break
		}
		msg, err := kr.ReadMessage(ctx)
		if err != nil {
			return handled, fmt.Errorf("reading message after offset %d: %w", first+int64(handled)-1, err)
		}
		r.logger.Debug("message received",
			"offset", msg.Offset,
			"key", string(msg.Key),
			"value_size", len(msg.Value),
		)
		if err := handler(ctx, msg.Key, msg.Value); err != nil {
			return handled, fmt.Errorf("handling message at offset %d: %w", msg.Offset, err)
		}
		handled++
		if msg.Offset >= last-1 {
			break
		}
	}
	r.logger.Info("partition read", "messages", handled, "first_offset", first, "last_offset", last)
	return handled, nil
}

func (r *Reader) offsets(ctx context.Context) (first, last int64, err error) {
	conn, err := kafka.DialLeader(ctx, "tcp", r.cfg.Brokers[0], r.cfg.Topic, r.cfg.Partition)
	if err != nil {
		return 0, 0, fmt.Errorf("dialing partition leader: %w", err)
	}
	defer conn.Close()
	first, last, err = conn.ReadOffsets()
	if err != nil {
		return 0, 0, fmt.Errorf("reading partition offsets: %w", err)
	}
	return first, last, nil
}

// DecodeJSON is a generic helper that unmarshals a Kafka message value into T.
func DecodeJSON[T any](value []byte) (T, error) {
	var result T
	if err := json.Unmarshal(value, &result); err != nil {
		return result, fmt.Errorf("decoding kafka message: %w", err)
	}
	return result, nil
}
