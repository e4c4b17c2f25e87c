package service

import (
	"context"

	"github.com/iliyamo/room-reservation/internal/payment"
	"github.com/iliyamo/room-reservation/internal/queue"
)

// PaymentGateway authorizes the charge for a reservation.
type PaymentGateway interface {
	Authorize(ctx context.Context, req payment.Request) (payment.Result, error)
}

// EventPublisher announces confirmed reservations to other services.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}
