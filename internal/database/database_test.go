package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	dbPath := "./test_" + t.Name() + ".db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, config.DriverSQLite, db.Driver())
	assert.NoError(t, db.Ping(context.Background()))

	for _, table := range []string{"authors", "genres", "books", "book_genres", "book_instances", "audit_events"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestOpen(t *testing.T) {
	t.Run("defaults to sqlite", func(t *testing.T) {
		dbPath := "./test_" + t.Name()[len("TestOpen/"):] + ".db"
		defer os.Remove(dbPath)

		db, err := Open(config.Database{Path: dbPath})
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, config.DriverSQLite, db.Driver())
	})

	t.Run("postgres requires a DSN", func(t *testing.T) {
		_, err := Open(config.Database{Driver: config.DriverPostgres})
		assert.ErrorContains(t, err, "DATABASE_DSN")
	})

	t.Run("rejects unknown drivers", func(t *testing.T) {
		_, err := Open(config.Database{Driver: "mongo"})
		assert.ErrorContains(t, err, "unsupported database driver")
	})
}

func TestNewDatabase_SingleConnection(t *testing.T) {
	db, err := NewDatabase(":memory:")
	require.NoError(t, err)
	defer db.Close()

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	// Every query sees the same in-memory database.
	require.NoError(t, db.DB.Create(&entities.Genre{Name: "Poetry"}).Error)
	var count int64
	require.NoError(t, db.DB.Model(&entities.Genre{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestClose(t *testing.T) {
	dbPath := "./test_" + t.Name() + ".db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	require.NoError(t, db.DB.Create(&entities.Genre{Name: "Poetry"}).Error)
	require.NoError(t, db.Close())
	assert.Error(t, db.Ping(context.Background()))
}
