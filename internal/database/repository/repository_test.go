package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jask/typozero/internal/database"
	"github.com/jask/typozero/internal/database/repository"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSettingsRepo(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := repository.NewSettingsRepo(setupDB(t))

	got, err := repo.Get(ctx, "ui.theme")
	require.NoError(t, err)
	require.Nil(t, got)

	t0 := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Put(ctx, "ui.theme", "dark", t0))
	require.NoError(t, repo.Put(ctx, "ui.theme", "light", t0.Add(time.Minute)))

	got, err = repo.Get(ctx, "ui.theme")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "light", got.Value)
	require.True(t, got.UpdatedAt.Equal(t0.Add(time.Minute)))
}

func TestChangeRepoRecent(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := repository.NewChangeRepo(setupDB(t))

	t0 := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	for i, v := range []string{"dark", "light", "dark"} {
		require.NoError(t, repo.Add(ctx, repository.Change{
			ID:        uuid.NewString(),
			Key:       "ui.theme",
			NewValue:  v,
			ChangedAt: t0.Add(time.Duration(i) * time.Second),
		}))
	}
	// same timestamp falls back to insertion order
	require.NoError(t, repo.Add(ctx, repository.Change{
		ID: uuid.NewString(), Key: "shortcut.binding", NewValue: "Ctrl+K", ChangedAt: t0.Add(2 * time.Second),
	}))

	recent, err := repo.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, "shortcut.binding", recent[0].Key)
	require.Equal(t, "dark", recent[1].NewValue)
	require.Equal(t, "light", recent[2].NewValue)
	require.Empty(t, recent[2].OldValue)
}
