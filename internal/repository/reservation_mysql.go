package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

// MySQLReservationRepo persists reservations in the reservations table
// created by database.Migrate.  All timestamps are stored in UTC.
type MySQLReservationRepo struct {
	db *sql.DB
}

// NewMySQLReservationRepo returns a MySQLReservationRepo bound to the given database.
func NewMySQLReservationRepo(db *sql.DB) *MySQLReservationRepo { return &MySQLReservationRepo{db: db} }

const (
	upsertReservationSQL = `INSERT INTO reservations (id, room_id, user_id, status, created_at) VALUES (?, ?, ?, ?, ?) ON DUPLICATE KEY UPDATE status = VALUES(status)`
	selectReservationSQL = `SELECT id, room_id, user_id, status, created_at FROM reservations WHERE id = ?`
	listReservationsSQL  = `SELECT id, room_id, user_id, status, created_at FROM reservations ORDER BY created_at`
)

// Save inserts the reservation or, when the id already exists, overwrites
// its status.  Identity columns are immutable and never rewritten.
func (r *MySQLReservationRepo) Save(ctx context.Context, res model.Reservation) (model.Reservation, error) {
	_, err := r.db.ExecContext(ctx, upsertReservationSQL,
		res.ID(), res.RoomID(), res.UserID(), string(res.Status()), res.CreatedAt())
	if err != nil {
		return model.Reservation{}, fmt.Errorf("save reservation %s: %w", res.ID(), err)
	}
	return res, nil
}

// FindByID loads one reservation.  A missing row is reported as ok=false.
func (r *MySQLReservationRepo) FindByID(ctx context.Context, id string) (model.Reservation, bool, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx, selectReservationSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, false, nil
	}
	if err != nil {
		return model.Reservation{}, false, fmt.Errorf("find reservation %s: %w", id, err)
	}
	return res, true, nil
}

// FindAll loads every reservation ordered by creation time.
func (r *MySQLReservationRepo) FindAll(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, listReservationsSQL)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("list reservations: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (model.Reservation, error) {
	var (
		id, roomID, userID, status string
		createdAt                  time.Time
	)
	if err := row.Scan(&id, &roomID, &userID, &status, &createdAt); err != nil {
		return model.Reservation{}, err
	}
	st, err := model.ParseReservationStatus(status)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return model.RestoreReservation(id, roomID, userID, createdAt, st), nil
}
