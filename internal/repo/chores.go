package repo

import (
	"context"
	"time"

	"github.com/roach88/hearth/internal/model"
	"github.com/roach88/hearth/internal/store"
)

// Chores is the repository for household tasks.
type Chores struct {
	store *store.Store
	now   func() time.Time
}

// NewChores creates a chores repository.
func NewChores(st *store.Store) *Chores {
	return &Chores{store: st, now: time.Now}
}

// NewChore holds the caller-supplied fields for Create.
type NewChore struct {
	Title             string
	Description       string
	AssignedTo        string
	DueDate           string
	Status            string // defaults to pending
	CreatedBy         string
	Recurring         bool
	RecurringInterval string
}

// ChorePatch is a partial update; nil fields are left unchanged.
type ChorePatch struct {
	Title             *string
	Description       *string
	AssignedTo        *string
	DueDate           *string
	Status            *string
	Recurring         *bool
	RecurringInterval *string
}

// List returns all chores.
func (r *Chores) List(ctx context.Context) ([]model.Chore, error) {
	return listAll[model.Chore](ctx, r.store, store.CollectionChores)
}

// Get returns one chore by id.
func (r *Chores) Get(ctx context.Context, id string) (model.Chore, error) {
	return getOne[model.Chore](ctx, r.store, store.CollectionChores, id)
}

// Create stamps an id and creation timestamp and persists the chore.
func (r *Chores) Create(ctx context.Context, c NewChore) (model.Chore, error) {
	status := c.Status
	if status == "" {
		status = model.ChoreStatusPending
	}

	chore := model.Chore{
		ID:                store.NewRecordID(),
		Title:             c.Title,
		Description:       c.Description,
		AssignedTo:        c.AssignedTo,
		DueDate:           c.DueDate,
		Status:            status,
		CreatedBy:         c.CreatedBy,
		CreatedAt:         r.now(),
		Recurring:         c.Recurring,
		RecurringInterval: c.RecurringInterval,
	}
	if err := addOne(ctx, r.store, store.CollectionChores, chore.ID, chore); err != nil {
		return model.Chore{}, err
	}
	return chore, nil
}

// Update merges a patch onto the existing chore. Fails with NOT_FOUND if
// the id does not exist.
//
// CompletedAt is derived state: it is stamped exactly once, on the first
// transition into the completed status, survives later non-status edits,
// and is cleared only when status leaves completed.
func (r *Chores) Update(ctx context.Context, id string, patch ChorePatch) (model.Chore, error) {
	chore, err := r.Get(ctx, id)
	if err != nil {
		return model.Chore{}, err
	}

	if patch.Title != nil {
		chore.Title = *patch.Title
	}
	if patch.Description != nil {
		chore.Description = *patch.Description
	}
	if patch.AssignedTo != nil {
		chore.AssignedTo = *patch.AssignedTo
	}
	if patch.DueDate != nil {
		chore.DueDate = *patch.DueDate
	}
	if patch.Recurring != nil {
		chore.Recurring = *patch.Recurring
	}
	if patch.RecurringInterval != nil {
		chore.RecurringInterval = *patch.RecurringInterval
	}
	if patch.Status != nil {
		switch {
		case *patch.Status == model.ChoreStatusCompleted && chore.Status != model.ChoreStatusCompleted:
			completed := r.now()
			chore.CompletedAt = &completed
		case *patch.Status != model.ChoreStatusCompleted && chore.Status == model.ChoreStatusCompleted:
			chore.CompletedAt = nil
		}
		chore.Status = *patch.Status
	}

	if err := putOne(ctx, r.store, store.CollectionChores, id, chore); err != nil {
		return model.Chore{}, err
	}
	return chore, nil
}

// Delete removes a chore. Idempotent.
func (r *Chores) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, store.CollectionChores, id)
}
