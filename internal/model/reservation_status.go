package model

import "fmt"

// ReservationStatus is the lifecycle state of a Reservation.  The values
// are stored and serialised verbatim, so they must never be renamed.
type ReservationStatus string

const (
	StatusNew            ReservationStatus = "NEW"
	StatusPendingPayment ReservationStatus = "PENDING_PAYMENT"
	StatusConfirmed      ReservationStatus = "CONFIRMED"
	StatusCheckedIn      ReservationStatus = "CHECKED_IN" // no transition leads here yet
	StatusCompleted      ReservationStatus = "COMPLETED"  // no transition leads here yet
	StatusCancelled      ReservationStatus = "CANCELLED"
	StatusExpired        ReservationStatus = "EXPIRED"
)

// AllStatuses lists every status in declaration order.
var AllStatuses = []ReservationStatus{
	StatusNew,
	StatusPendingPayment,
	StatusConfirmed,
	StatusCheckedIn,
	StatusCompleted,
	StatusCancelled,
	StatusExpired,
}

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition can leave s.  EXPIRED is not
// terminal: an expired reservation can still be cancelled.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s ReservationStatus) String() string { return string(s) }

// ParseReservationStatus converts a stored or wire value into a status.
func ParseReservationStatus(v string) (ReservationStatus, error) {
	s := ReservationStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown reservation status %q", v)
	}
	return s, nil
}
