package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_Error(t *testing.T) {
	cfg := Config{
		Driver:             "invalid",
		ConnectionString:   "invalid",
		MaxOpenConnections: 10,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
	}

	db, err := Connect(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "sql: unknown driver")
}

func TestMigrationsSource(t *testing.T) {
	t.Run("Success_Postgres", func(t *testing.T) {
		source, err := MigrationsSource(DriverPostgres)
		require.NoError(t, err)
		assert.Equal(t, "file://migrations/postgresql", source)
	})

	t.Run("Success_MySQL", func(t *testing.T) {
		source, err := MigrationsSource(DriverMySQL)
		require.NoError(t, err)
		assert.Equal(t, "file://migrations/mysql", source)
	})

	t.Run("Error_Unsupported", func(t *testing.T) {
		_, err := MigrationsSource("sqlite3")
		assert.ErrorIs(t, err, ErrUnsupportedDriver)
	})
}
