package rabbitmq

import (
	"context"
	"fmt"

	"real-estate-system/internal/core/port"
	"real-estate-system/pkg/rabbitmq/rabbitmq_common"
	"real-estate-system/pkg/rabbitmq/rabbitmq_consumer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Invalidator сбрасывает закешированный справочник.
type Invalidator interface {
	Invalidate()
}

// DevelopersChangedListener сбрасывает кеш застройщиков при изменении справочника
// в storage-сервисе. Содержимое сообщения не важно.
type DevelopersChangedListener struct {
	consumer *rabbitmq_consumer.Consumer
	cache    Invalidator
	logger   port.LoggerPort
}

var _ port.BackgroundProcessPort = (*DevelopersChangedListener)(nil)

// NewDevelopersChangedListener создает слушателя. consumerCfg.Logger заполняется мостом, если пуст.
func NewDevelopersChangedListener(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	connManager *rabbitmq_common.ConnectionManager,
	cache Invalidator,
	logger port.LoggerPort,
) (*DevelopersChangedListener, error) {
	if cache == nil {
		return nil, fmt.Errorf("developers listener: cache cannot be nil")
	}
	l := &DevelopersChangedListener{
		cache:  cache,
		logger: logger.WithFields(port.Fields{"component": "DevelopersChangedListener"}),
	}
	if consumerCfg.Logger == nil {
		consumerCfg.Logger = NewPkgLoggerBridge(l.logger)
	}

	consumer, err := rabbitmq_consumer.NewConsumer(consumerCfg, l.Handle, connManager)
	if err != nil {
		return nil, fmt.Errorf("developers listener: %w", err)
	}
	l.consumer = consumer
	return l, nil
}

// Handle - MessageHandler для rabbitmq_consumer.
func (l *DevelopersChangedListener) Handle(_ context.Context, d amqp.Delivery) error {
	logger := l.logger
	if d.CorrelationId != "" {
		logger = logger.WithFields(port.Fields{"trace_id": d.CorrelationId})
	}

	l.cache.Invalidate()
	logger.Info("Developer directory invalidated", port.Fields{
		"routing_key": d.RoutingKey,
		"message_id":  d.MessageId,
	})
	return nil
}

func (l *DevelopersChangedListener) Start(ctx context.Context) error {
	l.logger.Info("Starting developers listener", nil)
	return l.consumer.Start(ctx)
}

func (l *DevelopersChangedListener) Close() error {
	return l.consumer.Close()
}
