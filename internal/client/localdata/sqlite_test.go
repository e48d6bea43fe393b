package localdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := Open(context.Background(), "file:localdata?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Clear(context.Background()))
	return repo
}

func TestGetMissingSlot(t *testing.T) {
	repo := setupRepo(t)

	v, ok, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestSetGetRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "session_token", "abc.def.ghi"))

	v, ok, err := repo.Get(ctx, "session_token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc.def.ghi", v)

	// overwrite wins
	require.NoError(t, repo.Set(ctx, "session_token", "xyz"))
	v, ok, err = repo.Get(ctx, "session_token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "xyz", v)
}

func TestDeleteAndClear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", "1"))
	require.NoError(t, repo.Set(ctx, "b", "2"))

	require.NoError(t, repo.Delete(ctx, "a"))
	_, ok, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)

	// deleting an absent slot is not an error
	require.NoError(t, repo.Delete(ctx, "a"))

	require.NoError(t, repo.Clear(ctx))
	_, ok, err = repo.Get(ctx, "b")
	require.NoError(t, err)
	require.False(t, ok)
}
