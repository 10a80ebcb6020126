package repo

import (
	"context"
	"time"

	"github.com/roach88/hearth/internal/model"
	"github.com/roach88/hearth/internal/store"
)

// AuthStatus is the repository for the calendar-integration authorization
// flag: a singleton record overwritten in place, never multiplied.
type AuthStatus struct {
	store *store.Store
	now   func() time.Time
}

// NewAuthStatus creates the auth status repository.
func NewAuthStatus(st *store.Store) *AuthStatus {
	return &AuthStatus{store: st, now: time.Now}
}

// Get returns the current authorization state. A store that has never seen
// a Set reports unauthorized rather than an error.
func (r *AuthStatus) Get(ctx context.Context) (model.AuthStatus, error) {
	status, err := getOne[model.AuthStatus](ctx, r.store, store.CollectionAuthStatus, model.AuthStatusID)
	if store.IsNotFound(err) {
		return model.AuthStatus{ID: model.AuthStatusID, Authorized: false}, nil
	}
	if err != nil {
		return model.AuthStatus{}, err
	}
	return status, nil
}

// Set overwrites the singleton in place.
func (r *AuthStatus) Set(ctx context.Context, provider string, authorized bool) (model.AuthStatus, error) {
	status := model.AuthStatus{
		ID:         model.AuthStatusID,
		Provider:   provider,
		Authorized: authorized,
		UpdatedAt:  r.now(),
	}
	if err := putOne(ctx, r.store, store.CollectionAuthStatus, status.ID, status); err != nil {
		return model.AuthStatus{}, err
	}
	return status, nil
}
