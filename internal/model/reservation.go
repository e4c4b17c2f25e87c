package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Reservation records a user's booking of a room and tracks it through
// the reservation lifecycle.  Identity fields are fixed at construction;
// only the transition methods below may change the status.
//
// Fields:
//
//	id        – UUID assigned once at construction.
//	roomID    – room being reserved (opaque).
//	userID    – user holding the reservation (opaque).
//	createdAt – construction timestamp (UTC).
//	status    – current lifecycle state.
type Reservation struct {
	id        string
	roomID    string
	userID    string
	createdAt time.Time
	status    ReservationStatus
}

// MaxRefLength is the longest room or user id, in characters, a
// reservation may carry.  It matches the width of the room_id and user_id
// columns.
const MaxRefLength = 255

// NewReservation creates a reservation in the NEW state with a fresh id.
func NewReservation(roomID, userID string) Reservation {
	return Reservation{
		id:     uuid.NewString(),
		roomID: roomID,
		userID: userID,
		// microsecond precision survives a DATETIME(6) round trip
		createdAt: time.Now().UTC().Truncate(time.Microsecond),
		status:    StatusNew,
	}
}

// RestoreReservation rebuilds a reservation from persisted state.  It does
// not validate the transition history; callers are expected to pass a
// status obtained from ParseReservationStatus.
func RestoreReservation(id, roomID, userID string, createdAt time.Time, status ReservationStatus) Reservation {
	return Reservation{
		id:        id,
		roomID:    roomID,
		userID:    userID,
		createdAt: createdAt.UTC(),
		status:    status,
	}
}

func (r Reservation) ID() string                { return r.id }
func (r Reservation) RoomID() string            { return r.roomID }
func (r Reservation) UserID() string            { return r.userID }
func (r Reservation) CreatedAt() time.Time      { return r.createdAt }
func (r Reservation) Status() ReservationStatus { return r.status }

// MarkPendingPayment moves NEW to PENDING_PAYMENT.  Any other state is left
// untouched.
func (r *Reservation) MarkPendingPayment() {
	if r.status == StatusNew {
		r.status = StatusPendingPayment
	}
}

// Confirm moves PENDING_PAYMENT to CONFIRMED.
func (r *Reservation) Confirm() {
	if r.status == StatusPendingPayment {
		r.status = StatusConfirmed
	}
}

// Cancel moves any state except COMPLETED or CANCELLED to CANCELLED.
// EXPIRED reservations can still be cancelled.
func (r *Reservation) Cancel() {
	if r.status != StatusCompleted && r.status != StatusCancelled {
		r.status = StatusCancelled
	}
}

// Expire moves NEW or PENDING_PAYMENT to EXPIRED.
func (r *Reservation) Expire() {
	if r.status == StatusNew || r.status == StatusPendingPayment {
		r.status = StatusExpired
	}
}

// reservationJSON is the wire shape shared by the HTTP API and the cache.
type reservationJSON struct {
	ID        string            `json:"id"`
	RoomID    string            `json:"roomId"`
	UserID    string            `json:"userId"`
	CreatedAt time.Time         `json:"createdAt"`
	Status    ReservationStatus `json:"status"`
}

func (r Reservation) MarshalJSON() ([]byte, error) {
	return json.Marshal(reservationJSON{
		ID:        r.id,
		RoomID:    r.roomID,
		UserID:    r.userID,
		CreatedAt: r.createdAt,
		Status:    r.status,
	})
}

func (r *Reservation) UnmarshalJSON(b []byte) error {
	var raw reservationJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	status, err := ParseReservationStatus(string(raw.Status))
	if err != nil {
		return err
	}
	*r = RestoreReservation(raw.ID, raw.RoomID, raw.UserID, raw.CreatedAt, status)
	return nil
}
