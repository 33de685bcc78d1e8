// Package event publishes domain events to RabbitMQ.
//
// Events go to a durable topic exchange and are routed by event type,
// e.g. "order.placed". A nil *Publisher accepts and drops every event so
// the application runs without a broker.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	// Exchange is the topic exchange all events are published to.
	Exchange = "shoppingcart.events"

	TypeOrderPlaced = "order.placed"

	publishTimeout = 5 * time.Second
)

// Envelope is the message body of every event.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// OrderPlaced is emitted once an order has been committed.
type OrderPlaced struct {
	OrderID  int64             `json:"orderId"`
	MemberID int64             `json:"memberId"`
	Items    []OrderPlacedItem `json:"items"`
}

type OrderPlacedItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type Publisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *zerolog.Logger
}

// Connect dials the broker and declares the events exchange.
func Connect(url string, logger *zerolog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", Exchange, err)
	}

	logger.Info().Str("exchange", Exchange).Msg("connected to rabbitmq")

	return &Publisher{conn: conn, ch: ch, logger: logger}, nil
}

// PublishOrderPlaced emits TypeOrderPlaced.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, e OrderPlaced) error {
	return p.publish(ctx, TypeOrderPlaced, e)
}

func (p *Publisher) publish(ctx context.Context, eventType string, data any) error {
	if p == nil {
		return nil
	}

	envelope, err := newEnvelope(eventType, data, time.Now().UTC())
	if err != nil {
		return err
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", eventType, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx,
		Exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    envelope.ID,
			Type:         eventType,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    envelope.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	p.logger.Debug().
		Str("event_id", envelope.ID).
		Str("event_type", eventType).
		Msg("event published")

	return nil
}

func newEnvelope(eventType string, data any, at time.Time) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s data: %w", eventType, err)
	}

	return Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: at,
		Data:       raw,
	}, nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	_ = p.ch.Close()
	return p.conn.Close()
}
