package rabbitmq_consumer

import (
	"context"
	"fmt"
	"sync"

	"real-estate-system/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одно сообщение. Ошибка приводит к Nack без requeue.
type MessageHandler func(ctx context.Context, d amqp.Delivery) error

// ConsumerConfig конфигурация для потребителя
type ConsumerConfig struct {
	rabbitmq_common.Config

	QueueName       string // Пусто - имя сгенерирует сервер
	DurableQueue    bool
	AutoDeleteQueue bool
	ExclusiveQueue  bool

	ExchangeName string // Обменник для привязки, объявляется как durable
	ExchangeType string
	RoutingKeys  []string

	PrefetchCount int
	ConsumerTag   string

	Logger rabbitmq_common.Logger
}

// Consumer читает очередь и передает сообщения в MessageHandler.
type Consumer struct {
	config    ConsumerConfig
	channel   *amqp.Channel
	queueName string
	handler   MessageHandler
	wg        sync.WaitGroup

	Logger rabbitmq_common.Logger
}

// NewConsumer объявляет обменник, очередь и привязки.
func NewConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*Consumer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("consumer: invalid base config: %w", err)
	}
	if handler == nil {
		return nil, fmt.Errorf("consumer: handler is required")
	}
	if cfg.ExchangeName != "" && cfg.ExchangeType == "" {
		return nil, fmt.Errorf("consumer: exchange type is required when exchange name is set")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	_, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("consumer: failed to get channel from manager: %w", err)
	}
	c := &Consumer{config: cfg, channel: ch, handler: handler, Logger: logger}

	if err := c.setup(); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return c, nil
}

func (c *Consumer) setup() error {
	if c.config.PrefetchCount > 0 {
		if err := c.channel.Qos(c.config.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("consumer: failed to set QoS: %w", err)
		}
	}

	if c.config.ExchangeName != "" {
		c.Logger.Debug("Declaring exchange", "name", c.config.ExchangeName, "type", c.config.ExchangeType)
		err := c.channel.ExchangeDeclare(c.config.ExchangeName, c.config.ExchangeType, true, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consumer: failed to declare exchange '%s': %w", c.config.ExchangeName, err)
		}
	}

	q, err := c.channel.QueueDeclare(
		c.config.QueueName,
		c.config.DurableQueue,
		c.config.AutoDeleteQueue,
		c.config.ExclusiveQueue,
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consumer: failed to declare queue '%s': %w", c.config.QueueName, err)
	}
	c.queueName = q.Name

	for _, key := range c.config.RoutingKeys {
		c.Logger.Debug("Binding queue", "queue", c.queueName, "exchange", c.config.ExchangeName, "routing_key", key)
		if err := c.channel.QueueBind(c.queueName, key, c.config.ExchangeName, false, nil); err != nil {
			return fmt.Errorf("consumer: failed to bind queue '%s' with key '%s': %w", c.queueName, key, err)
		}
	}
	return nil
}

// Start блокируется до отмены ctx или закрытия канала доставки.
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.channel.Consume(c.queueName, c.config.ConsumerTag, false, c.config.ExclusiveQueue, false, false, nil)
	if err != nil {
		return fmt.Errorf("consumer: failed to start consuming '%s': %w", c.queueName, err)
	}
	c.Logger.Info("Consumer started", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("consumer: delivery channel closed for queue '%s'", c.queueName)
			}
			c.wg.Add(1)
			c.handle(ctx, d)
			c.wg.Done()
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	if err := c.handler(ctx, d); err != nil {
		c.Logger.Error(err, "Handler failed, message rejected", "routing_key", d.RoutingKey)
		if nackErr := d.Nack(false, false); nackErr != nil {
			c.Logger.Error(nackErr, "Failed to nack message")
		}
		return
	}
	if err := d.Ack(false); err != nil {
		c.Logger.Error(err, "Failed to ack message")
	}
}

// Close дожидается текущего обработчика и закрывает канал
func (c *Consumer) Close() error {
	c.wg.Wait()
	if c.channel == nil {
		return nil
	}
	err := c.channel.Close()
	c.channel = nil
	if err != nil {
		c.Logger.Error(err, "Error closing channel")
		return err
	}
	c.Logger.Info("Consumer closed")
	return nil
}
