// Package kafka forwards audit events to a Kafka topic using franz-go.
// The publisher is fire-and-forget from the domain's perspective: produce
// errors are reported to the caller but must never block the business flow,
// so services log and continue on Emit failure.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/edcalderon/hashpass.tech/pkg/platform/audit"
)

const defaultTopic = "matchmaking.audit"

// Publisher produces audit events to Kafka.
type Publisher struct {
	client *kgo.Client
	topic  string
}

type Option func(*Publisher)

func WithTopic(topic string) Option {
	return func(p *Publisher) {
		p.topic = topic
	}
}

// New connects to the given brokers and ensures the audit topic exists.
func New(ctx context.Context, brokers []string, opts ...Option) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchMaxBytes(1<<20),
		kgo.ProduceRequestTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	p := &Publisher{
		client: client,
		topic:  defaultTopic,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.ensureTopic(ctx); err != nil {
		client.Close()
		return nil, err
	}

	return p, nil
}

// ensureTopic creates the audit topic if missing. Existing topics are left
// untouched; partition/replication changes are an operational concern.
func (p *Publisher) ensureTopic(ctx context.Context) error {
	admin := kadm.NewClient(p.client)

	topics, err := admin.ListTopics(ctx)
	if err != nil {
		return fmt.Errorf("list topics: %w", err)
	}
	if topics.Has(p.topic) {
		return nil
	}

	if _, err := admin.CreateTopic(ctx, 1, -1, nil, p.topic); err != nil {
		return fmt.Errorf("create audit topic %q: %w", p.topic, err)
	}
	return nil
}

// Emit produces the event, keyed by user ID so a requester's trail stays
// ordered within a partition.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.UserID),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes pending records and releases the client.
func (p *Publisher) Close(ctx context.Context) error {
	if err := p.client.Flush(ctx); err != nil {
		p.client.Close()
		return fmt.Errorf("flush audit events: %w", err)
	}
	p.client.Close()
	return nil
}
