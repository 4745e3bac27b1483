package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "laundromat.orders"

// Routing keys for order events.
const (
	KeyOrderCreated  = "order.created"
	KeyStatusChanged = "order.status_changed"
	KeyFeedback      = "order.feedback"
	KeyOrderStale    = "order.stale"
)

// OrderEvent is the message body published on order changes. Publishing is
// best effort: a broker failure is logged and never fails the ledger
// operation that produced the event.
type OrderEvent struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	PriceNear  int64     `json:"price_near,omitempty"`
	Feedback   string    `json:"feedback,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits order events for downstream consumers (notifications, BI).
type Publisher interface {
	Publish(ctx context.Context, key string, event OrderEvent)
}

// AMQPPublisher publishes order events to a RabbitMQ topic exchange.
type AMQPPublisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
}

// Dial connects to the broker and declares the order events exchange.
func Dial(url string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPPublisher{conn: conn, ch: ch, logger: logger}, nil
}

// Publish sends one event; failures are logged, not returned.
func (p *AMQPPublisher) Publish(ctx context.Context, key string, event OrderEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal order event", slog.String("error", err.Error()))
		return
	}

	err = p.ch.PublishWithContext(ctx, exchangeName, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		p.logger.Error("publish order event",
			slog.String("key", key),
			slog.String("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
	}
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// NoopPublisher drops all events; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, OrderEvent) {}
