package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/typozero/internal/database/repository"
)

func setupDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, dbPath
}

func TestRunMigrationsIdempotent(t *testing.T) {
	t.Parallel()
	_, dbPath := setupDB(t)
	require.NoError(t, RunMigrations(dbPath))

	v, dirty, err := SchemaVersion(dbPath)
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), v)
}

func TestSchemaVersionBeforeMigrations(t *testing.T) {
	t.Parallel()
	v, dirty, err := SchemaVersion(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	require.False(t, dirty)
	require.Zero(t, v)
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db, _ := setupDB(t)

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		require.NoError(t, repository.NewSettingsRepo(tx).Put(ctx, "ui.theme", "dark", Now()))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repository.NewSettingsRepo(db).Get(ctx, "ui.theme")
	require.NoError(t, err)
	require.Nil(t, got)
}
