package repo

import (
	"context"
	"time"

	"github.com/roach88/hearth/internal/model"
	"github.com/roach88/hearth/internal/store"
)

// CheckIns is the repository for weekly mood check-ins. The collection is
// append-only through this contract: entries are created and listed, never
// updated or deleted. The feature layer edits a draft in place before
// committing it here.
type CheckIns struct {
	store *store.Store
	now   func() time.Time
}

// NewCheckIns creates a check-ins repository.
func NewCheckIns(st *store.Store) *CheckIns {
	return &CheckIns{store: st, now: time.Now}
}

// NewCheckIn holds the caller-supplied fields for Create.
type NewCheckIn struct {
	WeekOf       string
	Author       string
	Mood         int
	StressLevel  int
	Satisfaction int
	Highlights   string
	Concerns     string
	Suggestions  string
}

// List returns all check-ins.
func (r *CheckIns) List(ctx context.Context) ([]model.CheckIn, error) {
	return listAll[model.CheckIn](ctx, r.store, store.CollectionCheckins)
}

// Create stamps an id and timestamp and appends the check-in.
func (r *CheckIns) Create(ctx context.Context, c NewCheckIn) (model.CheckIn, error) {
	checkin := model.CheckIn{
		ID:           store.NewRecordID(),
		WeekOf:       c.WeekOf,
		Author:       c.Author,
		Mood:         c.Mood,
		StressLevel:  c.StressLevel,
		Satisfaction: c.Satisfaction,
		Highlights:   c.Highlights,
		Concerns:     c.Concerns,
		Suggestions:  c.Suggestions,
		Timestamp:    r.now(),
	}
	if err := addOne(ctx, r.store, store.CollectionCheckins, checkin.ID, checkin); err != nil {
		return model.CheckIn{}, err
	}
	return checkin, nil
}
