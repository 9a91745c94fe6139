package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, name := range files {
		body, err := fs.ReadFile(migrationFS, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}

	users, err := fs.ReadFile(migrationFS, "migrations/00001_create_users.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(users), "login_id TEXT NOT NULL UNIQUE"))
	assert.True(t, strings.Contains(string(users), "refresh_token TEXT"))
}
