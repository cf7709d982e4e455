package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestRepo(t *testing.T) StateRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo, err := NewSQLiteStateRepository(db)
	require.NoError(t, err)
	return repo
}

func TestSQLiteStateRepository_SaveAndLoad(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.TODO()

	require.NoError(t, repo.Save(ctx, KeyStock, []byte(`{"p1":2}`)))

	value, err := repo.Load(ctx, KeyStock)
	require.NoError(t, err)
	assert.Equal(t, `{"p1":2}`, string(value))
}

func TestSQLiteStateRepository_LoadMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Load(context.TODO(), KeyCart)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestSQLiteStateRepository_SaveOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.TODO()

	require.NoError(t, repo.Save(ctx, KeyWish, []byte(`[]`)))
	require.NoError(t, repo.Save(ctx, KeyWish, []byte(`[{"id":"p1","name":"P1","price":100}]`)))

	value, err := repo.Load(ctx, KeyWish)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p1","name":"P1","price":100}]`, string(value))
}

func TestSQLiteStateRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.TODO()

	require.NoError(t, repo.Save(ctx, KeyStock, []byte(`{}`)))
	require.NoError(t, repo.Delete(ctx, KeyStock))

	_, err := repo.Load(ctx, KeyStock)
	assert.ErrorIs(t, err, ErrStateNotFound)

	// Deleting an absent key is a no-op.
	require.NoError(t, repo.Delete(ctx, KeyStock))
}

func TestNewStateRepository_PicksBackend(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo, err := NewStateRepository(db, "sqlite")
	require.NoError(t, err)
	assert.IsType(t, &sqliteStateRepository{}, repo)
}
