package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transition struct {
	name  string
	apply func(*Reservation)
}

var transitions = []transition{
	{"MarkPendingPayment", (*Reservation).MarkPendingPayment},
	{"Confirm", (*Reservation).Confirm},
	{"Cancel", (*Reservation).Cancel},
	{"Expire", (*Reservation).Expire},
}

// legal maps transition name -> from -> to.
var legal = map[string]map[ReservationStatus]ReservationStatus{
	"MarkPendingPayment": {StatusNew: StatusPendingPayment},
	"Confirm":            {StatusPendingPayment: StatusConfirmed},
	"Cancel": {
		StatusNew:            StatusCancelled,
		StatusPendingPayment: StatusCancelled,
		StatusConfirmed:      StatusCancelled,
		StatusCheckedIn:      StatusCancelled,
		StatusExpired:        StatusCancelled,
	},
	"Expire": {
		StatusNew:            StatusExpired,
		StatusPendingPayment: StatusExpired,
	},
}

func TestNewReservation(t *testing.T) {
	before := time.Now()
	r := NewReservation("room-1", "user-1")

	assert.NotEmpty(t, r.ID())
	assert.Equal(t, "room-1", r.RoomID())
	assert.Equal(t, "user-1", r.UserID())
	assert.Equal(t, StatusNew, r.Status())
	assert.False(t, r.CreatedAt().After(time.Now()))
	assert.WithinDuration(t, before, r.CreatedAt(), time.Second)
}

func TestNewReservation_DistinctIDs(t *testing.T) {
	a := NewReservation("room-1", "user-1")
	b := NewReservation("room-1", "user-1")
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestTransitions(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for _, tr := range transitions {
		for _, from := range AllStatuses {
			t.Run(tr.name+"/"+from.String(), func(t *testing.T) {
				r := RestoreReservation("res-1", "room-1", "user-1", created, from)
				tr.apply(&r)

				want := from
				if to, ok := legal[tr.name][from]; ok {
					want = to
				}
				assert.Equal(t, want, r.Status())
				assert.Equal(t, "res-1", r.ID())
				assert.Equal(t, "room-1", r.RoomID())
				assert.Equal(t, "user-1", r.UserID())
				assert.Equal(t, created, r.CreatedAt())
			})
		}
	}
}

func TestNoTransitionReachesCheckedInOrCompleted(t *testing.T) {
	for _, tr := range transitions {
		for _, from := range AllStatuses {
			if from == StatusCheckedIn || from == StatusCompleted {
				continue
			}
			r := RestoreReservation("res-1", "room-1", "user-1", time.Now(), from)
			tr.apply(&r)
			assert.NotEqual(t, StatusCheckedIn, r.Status(), "%s from %s", tr.name, from)
			assert.NotEqual(t, StatusCompleted, r.Status(), "%s from %s", tr.name, from)
		}
	}
}

func TestHappyPath(t *testing.T) {
	r := NewReservation("room-1", "user-1")
	r.MarkPendingPayment()
	r.Confirm()
	assert.Equal(t, StatusConfirmed, r.Status())

	// a second confirm is a no-op
	r.Confirm()
	assert.Equal(t, StatusConfirmed, r.Status())
}

func TestReservationJSON(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 123000, time.UTC)
	r := RestoreReservation("res-1", "room-2", "user-9", created, StatusConfirmed)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "res-1",
		"roomId": "room-2",
		"userId": "user-9",
		"createdAt": "2024-05-01T10:00:00.000123Z",
		"status": "CONFIRMED"
	}`, string(b))

	var back Reservation
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, r, back)
}

func TestReservationJSON_UnknownStatus(t *testing.T) {
	var r Reservation
	err := json.Unmarshal([]byte(`{"id":"x","status":"BOGUS"}`), &r)
	assert.Error(t, err)
}

func TestReservationStatus(t *testing.T) {
	for _, s := range AllStatuses {
		got, err := ParseReservationStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseReservationStatus("pending")
	assert.Error(t, err)

	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusExpired.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
}
