package seed

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/store"
	"github.com/roach88/hearth/internal/testutil"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "hearth.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRun_SeedsEmptyCollections(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seeder := New(st, WithClock(testutil.NewDefaultClock().Now))

	require.NoError(t, seeder.Run(ctx))

	for _, collection := range []string{
		store.CollectionNotes,
		store.CollectionChores,
		store.CollectionExpenses,
		store.CollectionHouseRules,
	} {
		n, err := st.Count(ctx, collection)
		require.NoError(t, err)
		require.Positive(t, n, "collection %s not seeded", collection)
	}

	// Collections without starting data stay empty.
	n, err := st.Count(ctx, store.CollectionPhotos)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestRun_SkipsNonEmptyCollection(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	require.NoError(t, st.Add(ctx, store.CollectionNotes, store.Record{
		ID:   "note-1",
		Data: json.RawMessage(`{"id":"note-1","title":"Mine"}`),
	}))

	require.NoError(t, New(st).Run(ctx))

	// The occupied collection keeps only the existing record; the per
	// collection check still seeds the others.
	n, err := st.Count(ctx, store.CollectionNotes)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = st.Count(ctx, store.CollectionChores)
	require.NoError(t, err)
	require.Positive(t, n)
}

func TestRun_SingleFlight(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seeder := New(st)

	require.NoError(t, seeder.Run(ctx))
	before, err := st.Count(ctx, store.CollectionNotes)
	require.NoError(t, err)

	require.NoError(t, seeder.Run(ctx))
	after, err := st.Count(ctx, store.CollectionNotes)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestInsertRecords_DedupedByFixedIDs(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seeder := New(st)

	require.NoError(t, seeder.Run(ctx))
	before, err := st.Count(ctx, store.CollectionChores)
	require.NoError(t, err)

	// A racing seeder that saw the collection empty before the first one
	// committed lands on occupied ids; its inserts must be no-ops.
	clock := testutil.NewDefaultClock()
	require.NoError(t, seeder.insertRecords(ctx, store.CollectionChores, seedChores(clock.Now())))
	after, err := st.Count(ctx, store.CollectionChores)
	require.NoError(t, err)
	require.Equal(t, before, after)
}
