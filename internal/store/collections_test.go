package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "hearth.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAdd_ThenGetAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := Record{ID: NewRecordID(), Data: json.RawMessage(`{"title":"buy soap"}`)}
	if err := s.Add(ctx, CollectionNotes, rec); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	records, err := s.GetAll(ctx, CollectionNotes)
	if err != nil {
		t.Fatalf("GetAll() failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("GetAll() returned %d records, want 1", len(records))
	}
	if records[0].ID != rec.ID {
		t.Errorf("id = %q, want %q", records[0].ID, rec.ID)
	}
	if string(records[0].Data) != string(rec.Data) {
		t.Errorf("data = %s, want %s", records[0].Data, rec.Data)
	}
}

func TestAdd_DuplicateKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := Record{ID: "fixed-id", Data: json.RawMessage(`{"v":1}`)}
	if err := s.Add(ctx, CollectionNotes, rec); err != nil {
		t.Fatalf("first Add() failed: %v", err)
	}

	err := s.Add(ctx, CollectionNotes, Record{ID: "fixed-id", Data: json.RawMessage(`{"v":2}`)})
	if !IsDuplicateKey(err) {
		t.Fatalf("expected DUPLICATE_KEY, got %v", err)
	}

	// The original record must be untouched.
	got, err := s.Get(ctx, CollectionNotes, "fixed-id")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got.Data) != `{"v":1}` {
		t.Errorf("duplicate Add overwrote record: %s", got.Data)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), CollectionChores, "missing")
	if !IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestPut_UpsertSemantics(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Put on absent id creates.
	if err := s.Put(ctx, CollectionChores, Record{ID: "c1", Data: json.RawMessage(`{"status":"pending"}`)}); err != nil {
		t.Fatalf("Put() create failed: %v", err)
	}

	// Put on existing id overwrites.
	if err := s.Put(ctx, CollectionChores, Record{ID: "c1", Data: json.RawMessage(`{"status":"completed"}`)}); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}

	got, err := s.Get(ctx, CollectionChores, "c1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got.Data) != `{"status":"completed"}` {
		t.Errorf("data = %s, want overwrite to win", got.Data)
	}

	count, err := s.Count(ctx, CollectionChores)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, CollectionExpenses, Record{ID: "e1", Data: json.RawMessage(`{}`)}); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	// Delete twice; both calls must be no-error.
	if err := s.Delete(ctx, CollectionExpenses, "e1"); err != nil {
		t.Fatalf("first Delete() failed: %v", err)
	}
	if err := s.Delete(ctx, CollectionExpenses, "e1"); err != nil {
		t.Fatalf("second Delete() failed: %v", err)
	}

	// Deleting an id that never existed is also a no-op.
	if err := s.Delete(ctx, CollectionExpenses, "never-existed"); err != nil {
		t.Fatalf("Delete() of absent id failed: %v", err)
	}
}

func TestGetAll_EmptyCollection(t *testing.T) {
	s := openTestStore(t)

	records, err := s.GetAll(context.Background(), CollectionPhotos)
	if err != nil {
		t.Fatalf("GetAll() failed: %v", err)
	}
	if records == nil {
		t.Error("GetAll() returned nil, want empty slice")
	}
	if len(records) != 0 {
		t.Errorf("GetAll() returned %d records, want 0", len(records))
	}
}

func TestUnknownCollection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.GetAll(ctx, "sqlite_master"); err == nil {
		t.Error("GetAll() accepted undeclared collection")
	}
	if err := s.Add(ctx, "preferences; DROP TABLE notes", Record{ID: "x"}); err == nil {
		t.Error("Add() accepted undeclared collection")
	}
	err := s.Put(ctx, "bogus", Record{ID: "x"})
	var se *StoreError
	if !errors.As(err, &se) || se.Code != ErrCodeUnknownCollection {
		t.Errorf("expected UNKNOWN_COLLECTION, got %v", err)
	}
}

func TestReplaceAll_SwapsContents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"old-1", "old-2"} {
		if err := s.Add(ctx, CollectionNotes, Record{ID: id, Data: json.RawMessage(`{}`)}); err != nil {
			t.Fatalf("Add(%s) failed: %v", id, err)
		}
	}

	replacement := []Record{
		{ID: "new-1", Data: json.RawMessage(`{"n":1}`)},
		{ID: "new-2", Data: json.RawMessage(`{"n":2}`)},
		{ID: "new-3", Data: json.RawMessage(`{"n":3}`)},
	}
	if err := s.ReplaceAll(ctx, CollectionNotes, replacement); err != nil {
		t.Fatalf("ReplaceAll() failed: %v", err)
	}

	records, err := s.GetAll(ctx, CollectionNotes)
	if err != nil {
		t.Fatalf("GetAll() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records after replace, want 3", len(records))
	}
	for _, rec := range records {
		if !strings.HasPrefix(rec.ID, "new-") {
			t.Errorf("stale record %q survived ReplaceAll", rec.ID)
		}
	}
}

func TestReplaceAll_FailureLeavesCollectionIntact(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, CollectionNotes, Record{ID: "keep", Data: json.RawMessage(`{}`)}); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	// Duplicate ids inside the replacement set violate the primary key,
	// forcing the transaction to roll back partway through.
	bad := []Record{
		{ID: "a", Data: json.RawMessage(`{}`)},
		{ID: "a", Data: json.RawMessage(`{}`)},
	}
	if err := s.ReplaceAll(ctx, CollectionNotes, bad); err == nil {
		t.Fatal("ReplaceAll() with duplicate ids should fail")
	}

	records, err := s.GetAll(ctx, CollectionNotes)
	if err != nil {
		t.Fatalf("GetAll() failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "keep" {
		t.Errorf("collection changed by failed ReplaceAll: %+v", records)
	}
}

func TestClear_EmptiesCollection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Add(ctx, CollectionCheckins, Record{ID: NewRecordID(), Data: json.RawMessage(`{}`)}); err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
	}

	if err := s.Clear(ctx, CollectionCheckins); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	count, err := s.Count(ctx, CollectionCheckins)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d after Clear, want 0", count)
	}
}

func TestNewRecordID_UniqueAndOrdered(t *testing.T) {
	const n = 1000
	seen := make(map[string]bool, n)
	var prev string
	for i := 0; i < n; i++ {
		id := NewRecordID()
		if seen[id] {
			t.Fatalf("NewRecordID() produced duplicate %q", id)
		}
		seen[id] = true
		// UUIDv7 ids are time-prefixed; within one process they never
		// sort before an earlier id.
		if prev != "" && id < prev {
			t.Fatalf("NewRecordID() not time-ordered: %q < %q", id, prev)
		}
		prev = id
	}
}
