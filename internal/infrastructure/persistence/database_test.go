package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked SQL connection that records pings
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("successful ping", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing()

		assert.NoError(t, db.Ping(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed ping returns error", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		err := db.Ping(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDatabase_Stats(t *testing.T) {
	t.Run("returns pool statistics from underlying DB", func(t *testing.T) {
		db, _, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		stats, err := db.Stats()

		assert.NoError(t, err)
		assert.GreaterOrEqual(t, stats.OpenConnections, stats.InUse)
	})
}

func TestDatabase_Close(t *testing.T) {
	t.Run("closes the underlying connection", func(t *testing.T) {
		db, mock, _ := newMockDatabase(t)

		mock.ExpectClose()

		assert.NoError(t, db.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
