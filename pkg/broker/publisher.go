package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends JSON messages to a single durable queue.
type Publisher interface {
	Publish(ctx context.Context, message any) error
	Close() error
}

// RabbitPublisher publishes through the default exchange with the queue name
// as routing key. It redials once when the connection has dropped.
type RabbitPublisher struct {
	url   string
	queue string
	log   *zap.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewRabbitPublisher(url, queue string, log *zap.Logger) (*RabbitPublisher, error) {
	p := &RabbitPublisher{
		url:   url,
		queue: queue,
		log:   log.With(zap.String("component", "broker"), zap.String("queue", queue)),
	}

	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

// connect must be called with mu held or before the publisher is shared.
func (p *RabbitPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	p.conn = conn
	p.channel = ch
	return nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() || p.channel == nil || p.channel.IsClosed() {
		p.log.Warn("RabbitMQ connection lost, reconnecting")
		if err := p.connect(); err != nil {
			return err
		}
	}

	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}

	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher drops every message. It is used when no broker is configured.
type NoopPublisher struct {
	log *zap.Logger
}

func NewNoopPublisher(log *zap.Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

func (p *NoopPublisher) Publish(ctx context.Context, message any) error {
	p.log.Debug("Broker disabled, message dropped", zap.Any("message", message))
	return nil
}

func (p *NoopPublisher) Close() error { return nil }

// New returns a RabbitMQ publisher for url, or a NoopPublisher when url is empty.
func New(url, queue string, log *zap.Logger) (Publisher, error) {
	if url == "" {
		return NewNoopPublisher(log), nil
	}
	return NewRabbitPublisher(url, queue, log)
}
