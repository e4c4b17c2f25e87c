// Package queue defines message payloads exchanged over the message broker
// together with the RabbitMQ publisher and consumer that move them.
package queue

import (
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

// ReservationConfirmedQueue is the durable queue (and routing key on the
// default exchange) carrying ReservationConfirmedEvent messages.
const ReservationConfirmedQueue = "reservation.confirmed"

// ReservationConfirmedEvent is published when a reservation reaches
// CONFIRMED.  It carries enough for the notification service to act
// without calling back into the booking service.
type ReservationConfirmedEvent struct {
	ReservationID string `json:"reservation_id"`
	RoomID        string `json:"room_id"`
	UserID        string `json:"user_id"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// NewReservationConfirmedEvent builds the event for res stamped at now.
func NewReservationConfirmedEvent(res model.Reservation, now time.Time) ReservationConfirmedEvent {
	return ReservationConfirmedEvent{
		ReservationID: res.ID(),
		RoomID:        res.RoomID(),
		UserID:        res.UserID(),
		Status:        string(res.Status()),
		CreatedAt:     res.CreatedAt().UTC().Format(time.RFC3339Nano),
		ConfirmedAt:   now.UTC().Format(time.RFC3339),
	}
}
