package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/venue-seatmap/internal/logger"
	q "github.com/iliyamo/venue-seatmap/internal/queue"
)

// Publisher announces venue changes to other instances.
type Publisher interface {
	PublishVenueUpdated(ctx context.Context, event q.VenueUpdatedEvent) error
}

// AMQPPublisher publishes to RabbitMQ.  A connection is opened per message;
// venue writes are rare enough that holding a channel open is not worth the
// reconnect handling.
type AMQPPublisher struct {
	URL string
}

// PublishVenueUpdated sends the event to the durable venue.updated queue as
// a persistent message.  Errors are logged and returned so the caller can
// choose to ignore them.
func (p AMQPPublisher) PublishVenueUpdated(ctx context.Context, event q.VenueUpdatedEvent) error {
	log := logger.FromContext(ctx)
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Warn("rabbitmq: dial failed", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("rabbitmq: channel open failed", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		q.VenueUpdatedQueue, // name
		true,                // durable
		false,               // autoDelete
		false,               // exclusive
		false,               // noWait
		nil,                 // args
	); err != nil {
		log.Warn("rabbitmq: queue declare failed", "error", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.VenueUpdatedQueue, false, false, pub); err != nil {
		log.Warn("rabbitmq: publish failed", "error", err)
		return err
	}
	return nil
}
