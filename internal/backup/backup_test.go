package backup

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

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

func fixedClock() time.Time {
	return testutil.Epoch
}

// flakyStore fails ReplaceAll for one collection a limited number of times,
// then behaves normally so rollback can go through.
type flakyStore struct {
	StateStore
	failOn    string
	remaining int
}

func (f *flakyStore) ReplaceAll(ctx context.Context, collection string, records []store.Record) error {
	if collection == f.failOn && f.remaining > 0 {
		f.remaining--
		return errors.New("disk full")
	}
	return f.StateStore.ReplaceAll(ctx, collection, records)
}
