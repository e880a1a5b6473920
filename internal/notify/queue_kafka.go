package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaQueue publishes notification payloads to a Kafka topic. Records are
// keyed by alert ID so retries and re-evaluations land in the same partition
// and downstream consumers can compact safely.
type KafkaQueue struct {
	client *kgo.Client
	topic  string
}

// NewKafkaQueue connects to the brokers and ensures the topic exists.
func NewKafkaQueue(ctx context.Context, brokers []string, topic string) (*KafkaQueue, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopic(ctx, 1, -1, nil, topic)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("ensure topic %q: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("ensure topic %q: %w", topic, resp.Err)
	}

	return &KafkaQueue{client: client, topic: topic}, nil
}

func (q *KafkaQueue) Enqueue(ctx context.Context, payload Payload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	record := &kgo.Record{
		Topic: q.topic,
		Key:   []byte(payload.AlertID),
		Value: value,
	}
	if err := q.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce notification: %w", err)
	}
	return nil
}

// Close flushes buffered records and closes the client.
func (q *KafkaQueue) Close() {
	q.client.Close()
}
