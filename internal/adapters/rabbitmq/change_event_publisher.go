package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/port"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeName — обменник событий об изменениях витрины.
	ExchangeName = "storefront_exchange"
	ExchangeType = "direct"

	eventType    = "StorefrontChangeEvent"
	eventVersion = "1.0.0"
)

// amqpPublisher — часть rabbitmq_producer.Publisher, нужная адаптеру.
type amqpPublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

type changeEventDTO struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ChangeEventPublisher публикует события записи mock API в RabbitMQ.
type ChangeEventPublisher struct {
	producer amqpPublisher
}

func NewChangeEventPublisher(producer amqpPublisher) (*ChangeEventPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	return &ChangeEventPublisher{producer: producer}, nil
}

func (p *ChangeEventPublisher) Publish(ctx context.Context, event domain.ChangeEvent) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "ChangeEventPublisher",
		"routing_key": event.RoutingKey(),
		"entity_id":   event.ID,
	})

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(changeEventDTO{
		Entity:     string(event.Entity),
		Action:     string(event.Action),
		ID:         event.ID,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.New().String(),
		Timestamp:    event.OccurredAt,
		Headers: amqp.Table{
			"event-type":    eventType,
			"event-version": eventVersion,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	if err := p.producer.Publish(ctx, event.RoutingKey(), msg); err != nil {
		logger.Error("Failed to publish change event", err, nil)
		return err
	}
	logger.Debug("Change event published", nil)
	return nil
}

// NoopChangeEventPublisher используется, когда RabbitMQ выключен.
type NoopChangeEventPublisher struct{}

func (NoopChangeEventPublisher) Publish(context.Context, domain.ChangeEvent) error {
	return nil
}
