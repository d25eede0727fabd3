package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/pkg/events"
	pkgkafka "github.com/FluentFlier/aegis/pkg/kafka"
)

// Compile-time interface check.
var _ port.EventPublisher = (*Publisher)(nil)

// Publisher implements port.EventPublisher using Kafka. Events are keyed by
// aggregate id so consumers see each aggregate's events in order.
type Publisher struct {
	producer *pkgkafka.Producer
	logger   *slog.Logger
	topic    string
}

// NewPublisher creates a new Kafka-based event publisher.
func NewPublisher(producer *pkgkafka.Producer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// envelope is the wire shape for domain events.
type envelope struct {
	EventID       uuid.UUID       `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// Publish sends domain events to the configured topic.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		payload := evt.Payload()
		if len(payload) == 0 {
			payload = nil
		}

		value, err := json.Marshal(envelope{
			EventID:       evt.EventID(),
			EventType:     evt.EventType(),
			AggregateID:   evt.AggregateID(),
			AggregateType: evt.AggregateType(),
			OccurredAt:    evt.OccurredAt(),
			Payload:       payload,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			"topic", p.topic,
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"payload_size", len(value),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: value,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"aggregate_type": evt.AggregateType(),
				"event_id":       evt.EventID().String(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}
