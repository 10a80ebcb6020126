package repo

import (
	"context"
	"time"

	"github.com/roach88/hearth/internal/model"
	"github.com/roach88/hearth/internal/store"
)

// HouseRules is the repository for agreed household rules.
type HouseRules struct {
	store *store.Store
	now   func() time.Time
}

// NewHouseRules creates a house rules repository.
func NewHouseRules(st *store.Store) *HouseRules {
	return &HouseRules{store: st, now: time.Now}
}

// NewHouseRule holds the caller-supplied fields for Create.
type NewHouseRule struct {
	Category    string
	Title       string
	Description string
	CreatedBy   string
}

// HouseRulePatch is a partial update; nil fields are left unchanged.
type HouseRulePatch struct {
	Category    *string
	Title       *string
	Description *string
	Active      *bool
}

// List returns all house rules, active and retired.
func (r *HouseRules) List(ctx context.Context) ([]model.HouseRule, error) {
	return listAll[model.HouseRule](ctx, r.store, store.CollectionHouseRules)
}

// Get returns one rule by id.
func (r *HouseRules) Get(ctx context.Context, id string) (model.HouseRule, error) {
	return getOne[model.HouseRule](ctx, r.store, store.CollectionHouseRules, id)
}

// Create stamps an id and creation timestamp; new rules start active.
func (r *HouseRules) Create(ctx context.Context, h NewHouseRule) (model.HouseRule, error) {
	rule := model.HouseRule{
		ID:          store.NewRecordID(),
		Category:    h.Category,
		Title:       h.Title,
		Description: h.Description,
		CreatedBy:   h.CreatedBy,
		CreatedAt:   r.now(),
		Active:      true,
	}
	if err := addOne(ctx, r.store, store.CollectionHouseRules, rule.ID, rule); err != nil {
		return model.HouseRule{}, err
	}
	return rule, nil
}

// Update merges a patch onto the existing rule. Fails with NOT_FOUND if the
// id does not exist.
func (r *HouseRules) Update(ctx context.Context, id string, patch HouseRulePatch) (model.HouseRule, error) {
	rule, err := r.Get(ctx, id)
	if err != nil {
		return model.HouseRule{}, err
	}

	if patch.Category != nil {
		rule.Category = *patch.Category
	}
	if patch.Title != nil {
		rule.Title = *patch.Title
	}
	if patch.Description != nil {
		rule.Description = *patch.Description
	}
	if patch.Active != nil {
		rule.Active = *patch.Active
	}

	if err := putOne(ctx, r.store, store.CollectionHouseRules, id, rule); err != nil {
		return model.HouseRule{}, err
	}
	return rule, nil
}

// Delete removes a rule. Idempotent.
func (r *HouseRules) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, store.CollectionHouseRules, id)
}
