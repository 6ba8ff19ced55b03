package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"real-estate-system/internal/constants"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher - то, что нужно адаптеру от rabbitmq_producer.Publisher.
type AMQPPublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// SearchResolvedEvent - тело сообщения search.resolved.
type SearchResolvedEvent struct {
	EventID    string           `json:"event_id"`
	TraceID    string           `json:"trace_id,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
	Pathname   string           `json:"pathname"`
	Params     domain.URLParams `json:"params"`
}

// SearchEventPublisher публикует разобранные поиски для аналитики.
type SearchEventPublisher struct {
	producer   AMQPPublisher
	routingKey string
	now        func() time.Time
}

var _ port.SearchEventPublisherPort = (*SearchEventPublisher)(nil)

func NewSearchEventPublisher(producer AMQPPublisher, routingKey string) (*SearchEventPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("search event publisher: producer cannot be nil")
	}
	if routingKey == "" {
		routingKey = constants.RoutingKeySearchResolved
	}
	return &SearchEventPublisher{producer: producer, routingKey: routingKey, now: time.Now}, nil
}

func (a *SearchEventPublisher) PublishSearchResolved(ctx context.Context, pathname string, params domain.URLParams) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "SearchEventPublisher",
		"routing_key": a.routingKey,
	})

	event := SearchResolvedEvent{
		EventID:    uuid.NewString(),
		TraceID:    contextkeys.TraceIDFromContext(ctx),
		OccurredAt: a.now().UTC(),
		Pathname:   pathname,
		Params:     params,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("search event publisher: failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:   constants.SearchEventsContentType,
		DeliveryMode:  amqp.Persistent,
		MessageId:     event.EventID,
		CorrelationId: event.TraceID,
		Timestamp:     event.OccurredAt,
		Body:          body,
	}
	if err := a.producer.Publish(ctx, a.routingKey, msg); err != nil {
		return fmt.Errorf("search event publisher: %w", err)
	}

	logger.Debug("Search event published", port.Fields{"event_id": event.EventID})
	return nil
}
