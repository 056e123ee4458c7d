package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/venue-seatmap/internal/logger"
)

// Invalidator drops cached state for a venue.
type Invalidator interface {
	Invalidate(ctx context.Context, venueID string)
}

// InvalidatorFunc adapts a function to the Invalidator interface.
type InvalidatorFunc func(ctx context.Context, venueID string)

func (f InvalidatorFunc) Invalidate(ctx context.Context, venueID string) { f(ctx, venueID) }

const (
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
	prefetch   = 50
)

// StartVenueConsumer connects to RabbitMQ, declares the venue.updated queue
// and invalidates every venue named by an incoming event.  It reconnects with
// exponential backoff until ctx is cancelled, then returns ctx.Err().
// Undecodable messages are rejected without requeue.
func StartVenueConsumer(ctx context.Context, url string, inv Invalidator) error {
	log := logger.FromContext(ctx).With("component", "venue-consumer")
	backoff := minBackoff
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("failed to dial broker", "error", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = nextBackoff(backoff)
			continue
		}
		backoff = minBackoff

		err = consumeLoop(ctx, conn, inv, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("consume loop ended, reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, inv Invalidator, log logger.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetch, 0, false); err != nil {
		log.Warn("set QoS failed", "error", err)
	}
	if _, err := ch.QueueDeclare(VenueUpdatedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(VenueUpdatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	log.Info("consuming", "queue", VenueUpdatedQueue)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			ev, err := HandleMessage(ctx, d.Body, inv)
			if err != nil {
				log.Error("handle message failed", "error", err)
				_ = d.Nack(false, false)
				continue
			}
			log.Info("venue invalidated", "venue_id", ev.VenueID, "seat_count", ev.SeatCount, "deleted", ev.Deleted)
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event body and invalidates its venue.
func HandleMessage(ctx context.Context, body []byte, inv Invalidator) (VenueUpdatedEvent, error) {
	var ev VenueUpdatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("unmarshal: %w", err)
	}
	if ev.VenueID == "" {
		return ev, errors.New("event without venue_id")
	}
	inv.Invalidate(ctx, ev.VenueID)
	return ev, nil
}

func nextBackoff(d time.Duration) time.Duration {
	if d *= 2; d > maxBackoff {
		return maxBackoff
	}
	return d
}

// sleep waits for d and reports false when ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
