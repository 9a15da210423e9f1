// Package outreach hands accepted investor matches to RabbitMQ for the
// downstream email and SMS workers.
package outreach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/stwalsh4118/leadrank/internal/config"
)

const (
	// QueueName is the durable queue bound to the outreach exchange.
	QueueName = "q.outreach"
	// DLXName receives messages the outreach workers reject.
	DLXName = "leadrank.outreach.dlx"
	// DLQName holds dead-lettered messages.
	DLQName = "q.outreach.dlq"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("outreach publisher closed")

// Publisher delivers outreach messages.
type Publisher interface {
	Publish(ctx context.Context, msgs []Message) error
	Close() error
}

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes JSON messages to a direct exchange. It is safe
// for concurrent use; publishes are serialised on one channel.
type RabbitPublisher struct {
	mu         sync.Mutex
	conn       *amqp.Connection
	ch         channel
	exchange   string
	routingKey string
	closed     bool
}

// Dial connects to cfg.URL, declares the topology and returns a publisher.
func Dial(cfg config.OutreachConfig) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := setupTopology(ch, cfg.Exchange, cfg.RoutingKey); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare outreach topology: %w", err)
	}

	p := newPublisher(ch, cfg.Exchange, cfg.RoutingKey)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange, routingKey string) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, exchange: exchange, routingKey: routingKey}
}

func setupTopology(ch *amqp.Channel, exchange, routingKey string) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(DLQName, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(DLQName, routingKey, DLXName, false, nil); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": routingKey,
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, args); err != nil {
		return err
	}
	return ch.QueueBind(QueueName, routingKey, exchange, false, nil)
}

// Publish sends each message as a persistent JSON publishing. It stops at the
// first failure; messages before it have been handed to the broker.
func (p *RabbitPublisher) Publish(ctx context.Context, msgs []Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	for _, msg := range msgs {
		body, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to encode outreach message for investor %d: %w", msg.InvestorID, err)
		}

		headers := amqp.Table{"dispatch_id": msg.DispatchID}
		if msg.RequestID != "" {
			headers["request_id"] = msg.RequestID
		}

		err = p.ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     fmt.Sprintf("%s:%d", msg.DispatchID, msg.InvestorID),
			CorrelationId: msg.DispatchID,
			Timestamp:     msg.CreatedAt,
			Headers:       headers,
			Body:          body,
		})
		if err != nil {
			return fmt.Errorf("failed to publish outreach message for investor %d: %w", msg.InvestorID, err)
		}
	}
	return nil
}

// Close closes the channel and the connection.
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
