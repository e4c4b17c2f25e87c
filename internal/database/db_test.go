package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/model"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"app@tcp(db:3306)/rooms?charset=utf8mb4&parseTime=true&loc=UTC",
		DSN("app", "", "db", "3306", "rooms"))
	assert.Equal(t,
		"app:s3cret@tcp(db:3306)/rooms?charset=utf8mb4&parseTime=true&loc=UTC",
		DSN("app", "s3cret", "db", "3306", "rooms"))
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS reservations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("access denied")
	mock.ExpectExec("CREATE TABLE").WillReturnError(boom)
	assert.ErrorIs(t, Migrate(context.Background(), db), boom)
}

func TestReservationsDDL_FitsMaxRefLength(t *testing.T) {
	for _, col := range []string{"room_id", "user_id"} {
		assert.Regexp(t, fmt.Sprintf(`%s\s+VARCHAR\(%d\)`, col, model.MaxRefLength), reservationsDDL)
	}
}
