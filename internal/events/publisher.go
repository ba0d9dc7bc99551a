package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys for the booking.events topic exchange.
const (
	KeyBookingCreated   = "booking.created"
	KeyBookingConfirmed = "booking.confirmed"
	KeyBookingCancelled = "booking.cancelled"
	KeyBookingCompleted = "booking.completed"
	KeyInvoicePaid      = "invoice.paid"
	KeyInvoiceRefunded  = "invoice.refunded"
)

// Publisher emits post-commit domain events. Implementations must never block
// the caller; delivery is best effort and failures are only logged.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any)
}

type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string

	mu sync.Mutex // amqp channels are not safe for concurrent publish
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish hands the event to a goroutine and returns immediately. The write
// transaction has already committed by the time this runs, so a lost event
// never invalidates booking state.
func (p *AMQPPublisher) Publish(_ context.Context, key string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal event payload", "key", key, "error", err.Error())
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		p.mu.Lock()
		defer p.mu.Unlock()

		err := p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
		if err != nil {
			slog.Warn("failed to publish event", "key", key, "error", err.Error())
		}
	}()
}

func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher drops all events. Used when AMQP is disabled and in tests.
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

func (NopPublisher) Publish(context.Context, string, any) {}
