package repo

import (
	"context"

	"github.com/roach88/hearth/internal/model"
	"github.com/roach88/hearth/internal/store"
)

// Expenses is the repository for shared costs.
type Expenses struct {
	store *store.Store
}

// NewExpenses creates an expenses repository.
func NewExpenses(st *store.Store) *Expenses {
	return &Expenses{store: st}
}

// NewExpense holds the caller-supplied fields for Create.
type NewExpense struct {
	Title        string
	AmountCents  int64
	Category     string
	PaidBy       string
	SplitBetween []string
	Date         string
	Description  string
}

// ExpensePatch is a partial update; nil fields are left unchanged.
type ExpensePatch struct {
	Title        *string
	AmountCents  *int64
	Category     *string
	PaidBy       *string
	SplitBetween *[]string
	Date         *string
	Description  *string
	Settled      *bool
}

// List returns all expenses.
func (r *Expenses) List(ctx context.Context) ([]model.Expense, error) {
	return listAll[model.Expense](ctx, r.store, store.CollectionExpenses)
}

// Get returns one expense by id.
func (r *Expenses) Get(ctx context.Context, id string) (model.Expense, error) {
	return getOne[model.Expense](ctx, r.store, store.CollectionExpenses, id)
}

// Create stamps an id and persists the expense.
func (r *Expenses) Create(ctx context.Context, e NewExpense) (model.Expense, error) {
	expense := model.Expense{
		ID:           store.NewRecordID(),
		Title:        e.Title,
		AmountCents:  e.AmountCents,
		Category:     e.Category,
		PaidBy:       e.PaidBy,
		SplitBetween: e.SplitBetween,
		Date:         e.Date,
		Description:  e.Description,
	}
	if err := addOne(ctx, r.store, store.CollectionExpenses, expense.ID, expense); err != nil {
		return model.Expense{}, err
	}
	return expense, nil
}

// Update merges a patch onto the existing expense. Fails with NOT_FOUND if
// the id does not exist.
func (r *Expenses) Update(ctx context.Context, id string, patch ExpensePatch) (model.Expense, error) {
	expense, err := r.Get(ctx, id)
	if err != nil {
		return model.Expense{}, err
	}

	if patch.Title != nil {
		expense.Title = *patch.Title
	}
	if patch.AmountCents != nil {
		expense.AmountCents = *patch.AmountCents
	}
	if patch.Category != nil {
		expense.Category = *patch.Category
	}
	if patch.PaidBy != nil {
		expense.PaidBy = *patch.PaidBy
	}
	if patch.SplitBetween != nil {
		expense.SplitBetween = *patch.SplitBetween
	}
	if patch.Date != nil {
		expense.Date = *patch.Date
	}
	if patch.Description != nil {
		expense.Description = *patch.Description
	}
	if patch.Settled != nil {
		expense.Settled = *patch.Settled
	}

	if err := putOne(ctx, r.store, store.CollectionExpenses, id, expense); err != nil {
		return model.Expense{}, err
	}
	return expense, nil
}

// Delete removes an expense. Idempotent.
func (r *Expenses) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, store.CollectionExpenses, id)
}
