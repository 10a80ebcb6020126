// Package seed populates illustrative starting data the first time each
// collection is observed empty, so a fresh install opens onto a dashboard
// that demonstrates every feature instead of a blank page.
//
// Seeding is doubly guarded against duplication. A sync.Once makes it
// single-flight within a process, and every seed record carries a fixed,
// well-known id so a concurrent second seeder is naturally deduplicated by
// the add-fails-on-duplicate contract.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/roach88/hearth/internal/model"
	"github.com/roach88/hearth/internal/store"
)

// Seeder inserts the starting records into empty collections.
type Seeder struct {
	store *store.Store
	now   func() time.Time
	once  sync.Once
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithClock replaces the wall clock used to stamp seed records.
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

// New returns a Seeder over the given store.
func New(st *store.Store, opts ...Option) *Seeder {
	s := &Seeder{store: st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run seeds every empty collection that has starting data. It executes at
// most once per Seeder; later calls return the first result.
func (s *Seeder) Run(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		err = s.seedAll(ctx)
	})
	return err
}

func (s *Seeder) seedAll(ctx context.Context) error {
	now := s.now().UTC()
	sets := []struct {
		collection string
		records    []any
	}{
		{store.CollectionNotes, seedNotes(now)},
		{store.CollectionChores, seedChores(now)},
		{store.CollectionExpenses, seedExpenses(now)},
		{store.CollectionHouseRules, seedHouseRules(now)},
	}

	for _, set := range sets {
		if err := s.seedCollection(ctx, set.collection, set.records); err != nil {
			return err
		}
	}
	return nil
}

// seedCollection inserts the given records if the collection is empty. The
// check-then-insert is not atomic; a racing seeder is harmless because the
// fixed ids make the duplicate inserts no-ops.
func (s *Seeder) seedCollection(ctx context.Context, collection string, records []any) error {
	n, err := s.store.Count(ctx, collection)
	if err != nil {
		return fmt.Errorf("seed %s: %w", collection, err)
	}
	if n > 0 {
		return nil
	}
	return s.insertRecords(ctx, collection, records)
}

// insertRecords adds seed records, treating duplicate ids as already-seeded.
// A racing seeder that lost the empty check lands here and its inserts are
// no-ops.
func (s *Seeder) insertRecords(ctx context.Context, collection string, records []any) error {
	for _, rec := range records {
		id, data, err := encodeSeed(rec)
		if err != nil {
			return fmt.Errorf("seed %s: %w", collection, err)
		}
		err = s.store.Add(ctx, collection, store.Record{ID: id, Data: data})
		if err != nil && !store.IsDuplicateKey(err) {
			return fmt.Errorf("seed %s: %w", collection, err)
		}
	}
	return nil
}

func encodeSeed(rec any) (string, json.RawMessage, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", nil, fmt.Errorf("encode record: %w", err)
	}
	var keyed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &keyed); err != nil || keyed.ID == "" {
		return "", nil, fmt.Errorf("seed record has no id")
	}
	return keyed.ID, data, nil
}

func seedNotes(now time.Time) []any {
	return []any{
		model.Note{
			ID:        "seed-note-welcome",
			Title:     "Welcome to Hearth",
			Content:   "This board is shared by the whole household. Pin the important stuff.",
			Author:    "Hearth",
			Timestamp: now,
			Type:      "general",
			Pinned:    true,
		},
		model.Note{
			ID:        "seed-note-grocery",
			Title:     "Grocery run",
			Content:   "Add anything you need to this note before Saturday.",
			Author:    "Hearth",
			Timestamp: now,
			Type:      "shopping",
		},
	}
}

func seedChores(now time.Time) []any {
	return []any{
		model.Chore{
			ID:        "seed-chore-dishes",
			Title:     "Do the dishes",
			Status:    model.ChoreStatusPending,
			CreatedBy: "Hearth",
			CreatedAt: now,
			Recurring: true, RecurringInterval: "daily",
		},
		model.Chore{
			ID:        "seed-chore-trash",
			Title:     "Take out the trash",
			Status:    model.ChoreStatusPending,
			CreatedBy: "Hearth",
			CreatedAt: now,
			Recurring: true, RecurringInterval: "weekly",
		},
	}
}

func seedExpenses(now time.Time) []any {
	return []any{
		model.Expense{
			ID:          "seed-expense-supplies",
			Title:       "Cleaning supplies",
			AmountCents: 2450,
			Category:    "household",
			PaidBy:      "Hearth",
			Date:        now.Format("2006-01-02"),
			Settled:     true,
		},
	}
}

func seedHouseRules(now time.Time) []any {
	return []any{
		model.HouseRule{
			ID:          "seed-rule-quiet-hours",
			Category:    "noise",
			Title:       "Quiet hours",
			Description: "Keep it down between 22:00 and 07:00 on weeknights.",
			CreatedBy:   "Hearth",
			CreatedAt:   now,
			Active:      true,
		},
		model.HouseRule{
			ID:          "seed-rule-guests",
			Category:    "guests",
			Title:       "Overnight guests",
			Description: "Give the house a day's notice before overnight guests.",
			CreatedBy:   "Hearth",
			CreatedAt:   now,
			Active:      true,
		},
	}
}
