// Package service orchestrates the reservation lifecycle on top of a
// store, a payment gateway and an event publisher.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/payment"
	"github.com/iliyamo/room-reservation/internal/queue"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// BookingService creates and looks up reservations.  It exposes no
// cancel, expire or check-in operation: those transitions exist
// on model.Reservation but nothing drives them yet.
type BookingService struct {
	store    repository.ReservationStore
	payments PaymentGateway
	events   EventPublisher // optional
	log      zerolog.Logger
	now      func() time.Time
}

// NewBookingService wires a BookingService.  events may be nil, in which
// case confirmations are not announced.
func NewBookingService(store repository.ReservationStore, payments PaymentGateway, events EventPublisher, log zerolog.Logger) *BookingService {
	if store == nil || payments == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{
		store:    store,
		payments: payments,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

// Create builds a reservation, moves it to PENDING_PAYMENT, asks the
// payment gateway to authorize it and confirms it on approval.  The
// reservation is stored in every case.  On a declined or failed payment the
// stored PENDING_PAYMENT reservation is returned together with
// ErrPaymentDeclined or ErrPaymentUnavailable.
func (s *BookingService) Create(ctx context.Context, roomID, userID string) (model.Reservation, error) {
	res := model.NewReservation(roomID, userID)
	res.MarkPendingPayment()

	result, payErr := s.payments.Authorize(ctx, payment.Request{
		ReservationID: res.ID(),
		RoomID:        roomID,
		UserID:        userID,
	})
	switch {
	case payErr != nil:
		payErr = fmt.Errorf("%w: %w", ErrPaymentUnavailable, payErr)
	case !result.Approved():
		payErr = ErrPaymentDeclined
	default:
		res.Confirm()
	}

	saved, err := s.store.Save(ctx, res)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("save reservation: %w", err)
	}
	if payErr != nil {
		s.log.Warn().Err(payErr).Str("reservation_id", saved.ID()).Msg("reservation left pending payment")
		return saved, payErr
	}

	s.log.Info().
		Str("reservation_id", saved.ID()).
		Str("room_id", saved.RoomID()).
		Str("user_id", saved.UserID()).
		Str("payment_ref", result.Reference).
		Msg("reservation confirmed")
	s.announce(ctx, saved)
	return saved, nil
}

// announce publishes the confirmation.  Failures are logged and swallowed;
// the reservation is already stored and the caller must still see success.
func (s *BookingService) announce(ctx context.Context, res model.Reservation) {
	if s.events == nil {
		return
	}
	ev := queue.NewReservationConfirmedEvent(res, s.now())
	if err := s.events.PublishReservationConfirmed(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("reservation_id", res.ID()).Msg("confirmation event not published")
	}
}

// Get looks a reservation up by id.  ok is false when it does not exist.
func (s *BookingService) Get(ctx context.Context, id string) (model.Reservation, bool, error) {
	return s.store.FindByID(ctx, id)
}

// List returns every stored reservation in no particular order.
func (s *BookingService) List(ctx context.Context) ([]model.Reservation, error) {
	return s.store.FindAll(ctx)
}
