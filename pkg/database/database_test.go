package database_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/loonies/api/pkg/database"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open gorm over the stub connection: %s", err)
	}

	return db, mock
}

func TestGetSignupPosition(t *testing.T) {
	id := uuid.MustParse("7e6f3a52-9a1b-4c55-8b1d-2f1f3f9b0c11")

	t.Run("RankWithinArea", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT position`).
			WithArgs("valby", id).
			WillReturnRows(sqlmock.NewRows([]string{"position"}).AddRow(int64(3)))

		pos, err := database.GetSignupPosition(db, "valby", id)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), pos)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT position`).
			WillReturnError(errors.New("relation does not exist"))

		pos, err := database.GetSignupPosition(db, "valby", id)
		assert.Error(t, err)
		assert.Equal(t, int64(0), pos)
	})
}

func TestCountSignups(t *testing.T) {
	t.Run("ScopedToArea", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "waitlist_signups"`).
			WithArgs("valby").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(17)))

		count, err := database.CountSignups(db, "valby")
		assert.NoError(t, err)
		assert.Equal(t, int64(17), count)
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT count`).
			WillReturnError(errors.New("connection refused"))

		count, err := database.CountSignups(db, "valby")
		assert.Error(t, err)
		assert.Equal(t, int64(0), count)
	})
}
