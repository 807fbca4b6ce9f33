package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"evcharge-service/internal/domain/entity"
	"evcharge-service/internal/domain/repository"
	"evcharge-service/pkg/logger"
)

// Queue names declared at startup. Messages are persistent so they
// survive broker restarts.
const (
	QueueReservationCreated   = "reservation.created"
	QueueReservationCancelled = "reservation.cancelled"
	QueueSessionCompleted     = "session.completed"
)

// AmqpPublisher implements the EventPublisher interface over RabbitMQ.
type AmqpPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  logger.Logger
}

// NewAmqpPublisher dials the broker, opens a channel and declares the
// durable event queues.
func NewAmqpPublisher(url string, logger logger.Logger) (*AmqpPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	for _, name := range []string{QueueReservationCreated, QueueReservationCancelled, QueueSessionCompleted} {
		if _, err := channel.QueueDeclare(name, true, false, false, false, nil); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", name, err)
		}
	}

	return &AmqpPublisher{
		conn:    conn,
		channel: channel,
		logger:  logger,
	}, nil
}

// PublishReservationCreated publishes to the reservation.created queue
func (p *AmqpPublisher) PublishReservationCreated(ctx context.Context, event *entity.ReservationEvent) error {
	return p.publish(ctx, QueueReservationCreated, event)
}

// PublishReservationCancelled publishes to the reservation.cancelled queue
func (p *AmqpPublisher) PublishReservationCancelled(ctx context.Context, event *entity.ReservationEvent) error {
	return p.publish(ctx, QueueReservationCancelled, event)
}

// PublishSessionCompleted publishes to the session.completed queue
func (p *AmqpPublisher) PublishSessionCompleted(ctx context.Context, event *entity.SessionCompletedEvent) error {
	return p.publish(ctx, QueueSessionCompleted, event)
}

func (p *AmqpPublisher) publish(ctx context.Context, queue string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("failed to publish event", "queue", queue, "error", err)
		return err
	}
	return nil
}

// Close releases the channel and connection
func (p *AmqpPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

var _ repository.EventPublisher = (*AmqpPublisher)(nil)
