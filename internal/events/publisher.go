// Package events publishes domain events to RabbitMQ. Publishing is
// fire-and-forget from the caller's point of view: failures are logged
// and returned, but never interrupt the request that produced the event.
// Consumers (notification delivery, analytics) live outside this service.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	RouteSlotScheduled    = "slot.scheduled"
	RouteBookingCreated   = "booking.created"
	RouteBookingCancelled = "booking.cancelled"
)

type SlotScheduledEvent struct {
	SlotID    string    `json:"slot_id"`
	CinemaID  string    `json:"cinema_id"`
	MovieID   string    `json:"movie_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type BookingEvent struct {
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	SlotID    string    `json:"slot_id"`
	Status    string    `json:"status"`
	SeatCount int       `json:"seat_count,omitempty"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close()
}

type amqpPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *zap.Logger
}

// NewAMQPPublisher connects to the broker and declares a durable topic
// exchange. Messages are published persistent so they survive broker
// restarts.
func NewAMQPPublisher(url, exchange string, log *zap.Logger) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial %s: %w", url, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp declare exchange %s: %w", exchange, err)
	}

	return &amqpPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		log:      log.With(zap.String("component", "events")),
	}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to marshal event", zap.Error(err), zap.String("routing_key", routingKey))
		return fmt.Errorf("marshal event %s: %w", routingKey, err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.log.Error("Failed to publish event", zap.Error(err), zap.String("routing_key", routingKey))
		return fmt.Errorf("publish event %s: %w", routingKey, err)
	}

	return nil
}

func (p *amqpPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// noopPublisher is used when no broker is configured.
type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, any) error { return nil }
func (noopPublisher) Close()                                     {}
