package source

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/kafka"
)

// Kafka loads the documents stored in one topic partition, in offset order.
type Kafka struct {
	cfg config.KafkaConfig
}

func NewKafka(cfg config.KafkaConfig) *Kafka {
	return &Kafka{cfg: cfg}
}

func (k *Kafka) Load(ctx context.Context) ([]string, error) {
	var docs []string
	_, err := kafka.NewReader(k.cfg).ReadAll(ctx, func(_ context.Context, _ []byte, value []byte) error {
		doc, err := DecodeMessage(value)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

type documentMessage struct {
	Body string `json:"body"`
}

// DecodeMessage extracts document text from a message value. A JSON object
// contributes its "body" field; anything else is taken as raw text.
func DecodeMessage(value []byte) (string, error) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return string(value), nil
	}
	msg, err := kafka.DecodeJSON[documentMessage](trimmed)
	if err != nil {
		return "", err
	}
	return msg.Body, nil
}
