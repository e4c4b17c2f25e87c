package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// NotificationConsumer listens on the reservation.confirmed queue and
// appends one line per event to a notification log file.  Run keeps a
// reconnect loop alive until its context is cancelled; malformed messages
// are rejected without requeue so they cannot spin the consumer.
type NotificationConsumer struct {
	url     string
	logPath string
	log     zerolog.Logger

	mu sync.Mutex // serialises writes to logPath
}

// NewNotificationConsumer returns a consumer for the broker at url writing
// to logPath (for example logs/notifications.log).
func NewNotificationConsumer(url, logPath string, log zerolog.Logger) *NotificationConsumer {
	return &NotificationConsumer{url: url, logPath: logPath, log: log}
}

// Run dials the broker and consumes until ctx is done.  It only returns
// ctx.Err().
func (c *NotificationConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("notification-consumer: failed to dial broker")
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Msg("notification-consumer: consume loop ended; reconnecting")
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *NotificationConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn().Err(err).Msg("notification-consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(ReservationConfirmedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(ReservationConfirmedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.HandleMessage(d.Body); err != nil {
				c.log.Error().Err(err).Msg("notification-consumer: handle message failed")
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event and appends it to the notification log.
func (c *NotificationConsumer) HandleMessage(body []byte) error {
	var ev ReservationConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.ReservationID == "" {
		return errors.New("event without reservation_id")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatNotification(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	c.log.Info().Str("reservation_id", ev.ReservationID).Str("user_id", ev.UserID).Msg("reservation confirmation recorded")
	return nil
}

// FormatNotification renders ev as a single log line ending in a newline.
func FormatNotification(ev ReservationConfirmedEvent) string {
	return fmt.Sprintf("[%s] Reservation confirmed | reservation_id=%s | room_id=%s | user_id=%s | status=%s | created_at=%s\n",
		ev.ConfirmedAt, ev.ReservationID, ev.RoomID, ev.UserID, ev.Status, ev.CreatedAt)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
