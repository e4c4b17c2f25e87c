package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// RabbitPublisher publishes domain events to RabbitMQ.  Each publish dials
// its own connection, which keeps the publisher stateless at the cost of a
// handshake per message; booking volume in this platform is low enough for
// that.  Errors are logged and returned so the caller can choose to ignore
// them without interrupting the request flow.
type RabbitPublisher struct {
	url         string
	dialTimeout time.Duration
	log         zerolog.Logger
}

// NewRabbitPublisher returns a publisher for the broker at url.  The dial
// timeout bounds how long a request can stall on an unreachable broker.
func NewRabbitPublisher(url string, dialTimeout time.Duration, log zerolog.Logger) *RabbitPublisher {
	if dialTimeout <= 0 {
		dialTimeout = 2 * time.Second
	}
	return &RabbitPublisher{url: url, dialTimeout: dialTimeout, log: log}
}

// PublishReservationConfirmed publishes ev to the reservation.confirmed
// queue.  Messages are marked as persistent.
func (p *RabbitPublisher) PublishReservationConfirmed(ctx context.Context, ev ReservationConfirmedEvent) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.dialTimeout)})
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(ReservationConfirmedQueue, true, false, false, false, nil); err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    ev.ReservationID,
		Body:         body,
	}
	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", ReservationConfirmedQueue, false, false, pub); err != nil {
		p.log.Warn().Err(err).Str("reservation_id", ev.ReservationID).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
