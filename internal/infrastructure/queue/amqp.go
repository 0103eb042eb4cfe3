package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/streadway/amqp"

	"skillsync/internal/config"
	"skillsync/internal/domain/event"
)

// Publisher forwards domain events to a topic exchange. The routing key is
// the event type, so consumers can bind on "application.*" and the like.
type Publisher struct {
	conn     *amqp.Connection
	exchange string
	logger   *log.Logger

	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher returns nil, nil when no broker URL is configured.
func NewPublisher(cfg config.AMQPConfig, logger *log.Logger) (*Publisher, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: cfg.Exchange, logger: logger}, nil
}

func (p *Publisher) Publish(_ context.Context, e event.Event) {
	msg, err := Publishing(e)
	if err != nil {
		p.logf("amqp=publish status=error type=%s err=%v", e.Type, err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Publish(p.exchange, e.Type, false, false, msg); err != nil {
		p.logf("amqp=publish status=error type=%s err=%v", e.Type, err)
	}
}

// Publishing builds the broker message for e.
func Publishing(e event.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    e.Timestamp,
		Type:         e.Type,
		Body:         body,
	}, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	return p.conn.Close()
}

func (p *Publisher) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}
