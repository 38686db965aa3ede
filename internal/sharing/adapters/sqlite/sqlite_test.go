package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharednotes/internal/sharing/adapters/sqlite"
	"sharednotes/internal/sharing/domain/entities"
	"sharednotes/internal/sharing/ports/repositories"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "notes.db")

	store, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, store.Ping(context.Background()))
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.db")

	store, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Notes().Upsert(ctx, entities.NewNote("n1", "Plan", "Draft", time.Unix(10, 0))))
	require.NoError(t, store.Close())

	store, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Notes().GetByID(ctx, "n1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Draft", got.Content)
}

func TestNoteRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	notes := store.Notes()

	t.Run("absent note", func(t *testing.T) {
		got, err := notes.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("upsert overwrites", func(t *testing.T) {
		first := time.Unix(100, 500).UTC()
		require.NoError(t, notes.Upsert(ctx, entities.NewNote("n1", "Plan", "Draft v1", first)))

		second := entities.NewNote("n1", "Plan 2", "Draft v2", first.Add(time.Second))
		require.NoError(t, notes.Upsert(ctx, second))

		got, err := notes.GetByID(ctx, "n1")
		require.NoError(t, err)
		assert.Equal(t, "Plan 2", got.Title)
		assert.Equal(t, "Draft v2", got.Content)
		assert.True(t, got.UpdatedAt.Equal(first.Add(time.Second)))
	})

	t.Run("updated_at never moves back", func(t *testing.T) {
		later := time.Unix(1000, 0).UTC()
		require.NoError(t, notes.Upsert(ctx, entities.NewNote("n2", "t", "a", later)))

		stale := entities.NewNote("n2", "t", "b", later.Add(-time.Hour))
		require.NoError(t, notes.Upsert(ctx, stale))
		assert.True(t, stale.UpdatedAt.Equal(later), "stored timestamp is written back")

		got, err := notes.GetByID(ctx, "n2")
		require.NoError(t, err)
		assert.Equal(t, "b", got.Content)
		assert.True(t, got.UpdatedAt.Equal(later))
	})
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Unix(100, 0).UTC()
	require.NoError(t, store.Notes().Upsert(ctx, entities.NewNote("n1", "Plan", "Draft", base)))

	tokens := store.Tokens()

	t.Run("missing note", func(t *testing.T) {
		err := tokens.CreateWithinLimit(ctx, entities.NewToken("x", "nope", base), entities.MaxTokensPerNote)
		assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	})

	t.Run("limit and ordering", func(t *testing.T) {
		// Same created_at for every token, order falls back to insertion.
		for _, v := range []string{"ccc", "aaa", "bbb"} {
			require.NoError(t, tokens.CreateWithinLimit(ctx, entities.NewToken(v, "n1", base), entities.MaxTokensPerNote))
		}

		err := tokens.CreateWithinLimit(ctx, entities.NewToken("ddd", "n1", base), entities.MaxTokensPerNote)
		assert.ErrorIs(t, err, entities.ErrCapExceeded)

		list, err := tokens.ListByNoteID(ctx, "n1")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "ccc", list[0].Token)
		assert.Equal(t, "aaa", list[1].Token)
		assert.Equal(t, "bbb", list[2].Token)
		assert.True(t, list[0].CreatedAt.Equal(base))
	})

	t.Run("duplicate value", func(t *testing.T) {
		require.NoError(t, store.Notes().Upsert(ctx, entities.NewNote("n2", "", "", base)))
		err := tokens.CreateWithinLimit(ctx, entities.NewToken("aaa", "n2", base), entities.MaxTokensPerNote)
		assert.ErrorIs(t, err, repositories.ErrTokenConflict)

		list, err := tokens.ListByNoteID(ctx, "n2")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestTokenRepository_ConcurrentLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Notes().Upsert(ctx, entities.NewNote("n1", "Plan", "Draft", time.Now())))

	const workers = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Tokens().CreateWithinLimit(ctx,
				entities.NewToken(fmt.Sprintf("tok-%02d", i), "n1", time.Now()), entities.MaxTokensPerNote)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case assert.ErrorIs(t, err, entities.ErrCapExceeded):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, entities.MaxTokensPerNote, created)
	assert.Equal(t, workers-entities.MaxTokensPerNote, rejected)

	list, err := store.Tokens().ListByNoteID(ctx, "n1")
	require.NoError(t, err)
	assert.Len(t, list, entities.MaxTokensPerNote)
}
