package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharednotes/internal/sharing/config"
	"sharednotes/internal/sharing/db"
)

func TestMigrationsURL(t *testing.T) {
	t.Run("absolute dir", func(t *testing.T) {
		got, err := db.MigrationsURL("/srv/migrations")
		require.NoError(t, err)
		assert.Equal(t, "file:///srv/migrations", got)
	})

	t.Run("relative dir", func(t *testing.T) {
		got, err := db.MigrationsURL("migrations/sharing")
		require.NoError(t, err)
		abs, err := filepath.Abs("migrations/sharing")
		require.NoError(t, err)
		assert.Equal(t, "file://"+abs, got)
	})
}

func TestMigrate_MissingSource(t *testing.T) {
	cfg := &config.PostgresConfig{
		Host:          "127.0.0.1",
		Port:          1,
		User:          "u",
		Password:      "p",
		Database:      "d",
		MigrationsDir: filepath.Join(t.TempDir(), "missing"),
	}

	err := db.Migrate(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), db.ErrDBMigrations)
}
