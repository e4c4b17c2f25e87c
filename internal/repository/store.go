package repository

import (
	"context"

	"github.com/iliyamo/room-reservation/internal/model"
)

// ReservationStore is the storage contract shared by every backend.
type ReservationStore interface {
	Save(ctx context.Context, res model.Reservation) (model.Reservation, error)
	FindByID(ctx context.Context, id string) (model.Reservation, bool, error)
	FindAll(ctx context.Context) ([]model.Reservation, error)
}

var (
	_ ReservationStore = (*MemoryReservationRepo)(nil)
	_ ReservationStore = (*MySQLReservationRepo)(nil)
	_ ReservationStore = (*CachedReservationRepo)(nil)
)
