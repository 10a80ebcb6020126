package backup

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/store"
)

// stateJSON renders the full persisted state as canonical JSON so two
// states can be compared for exact equality.
func stateJSON(t *testing.T, svc *Service) string {
	t.Helper()
	snap, err := svc.ExportAll(context.Background())
	require.NoError(t, err)
	data, err := json.Marshal(snap.Data)
	require.NoError(t, err)
	return string(data)
}

func seedState(t *testing.T, st *store.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.PrefSet(ctx, "theme", "dark"))
	require.NoError(t, st.PrefSet(ctx, "household_name", "Elm Street"))
	require.NoError(t, st.Add(ctx, store.CollectionNotes, store.Record{
		ID:   "note-1",
		Data: json.RawMessage(`{"id":"note-1","title":"Buy milk"}`),
	}))
	require.NoError(t, st.Add(ctx, store.CollectionChores, store.Record{
		ID:   "chore-1",
		Data: json.RawMessage(`{"id":"chore-1","title":"Dishes","status":"pending"}`),
	}))
	require.NoError(t, st.Add(ctx, store.CollectionExpenses, store.Record{
		ID:   "exp-1",
		Data: json.RawMessage(`{"id":"exp-1","description":"Rent","amount_cents":120000}`),
	}))
}

func TestImport_RoundTripIdentity(t *testing.T) {
	ctx := context.Background()

	src := openTestStore(t)
	seedState(t, src)
	srcSvc := NewService(src, WithClock(fixedClock))
	want := stateJSON(t, srcSvc)

	exported, err := srcSvc.ExportAll(ctx)
	require.NoError(t, err)
	doc, err := Encode(exported)
	require.NoError(t, err)

	// The destination starts with unrelated content that must vanish.
	dst := openTestStore(t)
	require.NoError(t, dst.PrefSet(ctx, "stale", "value"))
	require.NoError(t, dst.Add(ctx, store.CollectionPhotos, store.Record{
		ID:   "photo-9",
		Data: json.RawMessage(`{"id":"photo-9","caption":"old"}`),
	}))
	dstSvc := NewService(dst, WithClock(fixedClock))

	require.NoError(t, dstSvc.Import(ctx, "backup.json", doc))
	require.Equal(t, PhaseCommitted, dstSvc.Phase())
	require.JSONEq(t, want, stateJSON(t, dstSvc))
}

func TestImport_ValidationFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedState(t, st)
	svc := NewService(st, WithClock(fixedClock))
	before := stateJSON(t, svc)

	doc := []byte(`{
		"version": "1.0",
		"exported_at": "2026-01-02T15:04:05Z",
		"metadata": {"app": "hearth", "platform": "go"}
	}`)
	err := svc.Import(ctx, "backup.json", doc)
	require.True(t, IsValidationError(err))
	require.Equal(t, PhaseIdle, svc.Phase())
	require.JSONEq(t, before, stateJSON(t, svc))
}

func TestImport_ApplyFailureThenRollbackRestoresState(t *testing.T) {
	ctx := context.Background()

	src := openTestStore(t)
	seedState(t, src)
	exported, err := NewService(src, WithClock(fixedClock)).ExportAll(ctx)
	require.NoError(t, err)
	doc, err := Encode(exported)
	require.NoError(t, err)

	dst := openTestStore(t)
	require.NoError(t, dst.PrefSet(ctx, "theme", "light"))
	require.NoError(t, dst.Add(ctx, store.CollectionNotes, store.Record{
		ID:   "note-old",
		Data: json.RawMessage(`{"id":"note-old","title":"Original"}`),
	}))
	healthy := NewService(dst, WithClock(fixedClock))
	before := stateJSON(t, healthy)

	// Notes and photos are replaced before chores fails, so the store is
	// mid-import when the error surfaces.
	flaky := &flakyStore{StateStore: dst, failOn: store.CollectionChores, remaining: 1}
	svc := NewService(flaky, WithClock(fixedClock))

	err = svc.Import(ctx, "backup.json", doc)
	require.True(t, IsImportFailed(err))
	require.Equal(t, PhaseApplying, svc.Phase())
	require.NotEqual(t, before, stateJSON(t, healthy))

	require.NoError(t, svc.Rollback(ctx))
	require.Equal(t, PhaseRolledBack, svc.Phase())
	require.JSONEq(t, before, stateJSON(t, healthy))
}

func TestImport_RemovesStalePreferences(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	require.NoError(t, st.PrefSet(ctx, "stale", "value"))
	svc := NewService(st, WithClock(fixedClock))

	doc := []byte(`{
		"version": "1.0",
		"exported_at": "2026-01-02T15:04:05Z",
		"data": {"preferences": {"theme": "dark"}},
		"metadata": {"app": "hearth", "platform": "go"}
	}`)
	require.NoError(t, svc.Import(ctx, "backup.json", doc))

	prefs, err := st.PrefAll(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"theme": "dark"}, prefs)
}

func TestImport_AbsentCollectionsAreCleared(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedState(t, st)
	svc := NewService(st, WithClock(fixedClock))

	doc := []byte(`{
		"version": "1.0",
		"exported_at": "2026-01-02T15:04:05Z",
		"data": {"preferences": {}},
		"metadata": {"app": "hearth", "platform": "go"}
	}`)
	require.NoError(t, svc.Import(ctx, "backup.json", doc))

	for _, name := range st.Collections() {
		n, err := st.Count(ctx, name)
		require.NoError(t, err)
		require.Zero(t, n, "collection %s not cleared", name)
	}
}

func TestRollback_WithoutCapture(t *testing.T) {
	st := openTestStore(t)
	svc := NewService(st, WithClock(fixedClock))
	require.Error(t, svc.Rollback(context.Background()))
}
