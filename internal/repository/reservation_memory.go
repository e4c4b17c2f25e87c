package repository

import (
	"context"
	"sync"

	"github.com/iliyamo/room-reservation/internal/model"
)

// MemoryReservationRepo keeps reservations in a map for the lifetime of the
// process.  Values are copied on the way in and on the way out, so a
// caller mutating its own Reservation after Save never affects what other
// readers observe.  There is no eviction and no size bound.
type MemoryReservationRepo struct {
	mu   sync.RWMutex
	byID map[string]model.Reservation
}

// NewMemoryReservationRepo returns an empty in-memory store.
func NewMemoryReservationRepo() *MemoryReservationRepo {
	return &MemoryReservationRepo{byID: make(map[string]model.Reservation)}
}

// Save inserts or overwrites the reservation keyed by its id.
func (r *MemoryReservationRepo) Save(_ context.Context, res model.Reservation) (model.Reservation, error) {
	r.mu.Lock()
	r.byID[res.ID()] = res
	r.mu.Unlock()
	return res, nil
}

// FindByID returns the stored reservation and true, or false when the id
// was never saved.
func (r *MemoryReservationRepo) FindByID(_ context.Context, id string) (model.Reservation, bool, error) {
	r.mu.RLock()
	res, ok := r.byID[id]
	r.mu.RUnlock()
	return res, ok, nil
}

// FindAll returns a snapshot of every stored reservation.
func (r *MemoryReservationRepo) FindAll(_ context.Context) ([]model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Reservation, 0, len(r.byID))
	for _, res := range r.byID {
		out = append(out, res)
	}
	return out, nil
}

// Len reports how many reservations are stored.
func (r *MemoryReservationRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
