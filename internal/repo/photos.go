package repo

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/roach88/hearth/internal/model"
	"github.com/roach88/hearth/internal/store"
)

// Photos is the repository for the shared photo wall. Payloads are stored
// inline as base64 so the collection - and any snapshot of it - is
// self-contained.
type Photos struct {
	store *store.Store
	now   func() time.Time
}

// NewPhotos creates a photos repository.
func NewPhotos(st *store.Store) *Photos {
	return &Photos{store: st, now: time.Now}
}

// NewPhoto holds the caller-supplied fields for Create.
type NewPhoto struct {
	Filename   string
	Bytes      []byte // raw image bytes; encoded to base64 on store
	Caption    string
	UploadedBy string
	Category   string // defaults to "memories"
	Tags       []string
}

// List returns all photos.
func (r *Photos) List(ctx context.Context) ([]model.Photo, error) {
	return listAll[model.Photo](ctx, r.store, store.CollectionPhotos)
}

// Get returns one photo by id.
func (r *Photos) Get(ctx context.Context, id string) (model.Photo, error) {
	return getOne[model.Photo](ctx, r.store, store.CollectionPhotos, id)
}

// Create stamps an id and timestamp, inlines the payload, and persists.
func (r *Photos) Create(ctx context.Context, p NewPhoto) (model.Photo, error) {
	category := p.Category
	if category == "" {
		category = "memories"
	}

	photo := model.Photo{
		ID:         store.NewRecordID(),
		Filename:   p.Filename,
		Payload:    base64.StdEncoding.EncodeToString(p.Bytes),
		Caption:    p.Caption,
		UploadedBy: p.UploadedBy,
		Timestamp:  r.now(),
		Category:   category,
		Tags:       p.Tags,
	}
	if err := addOne(ctx, r.store, store.CollectionPhotos, photo.ID, photo); err != nil {
		return model.Photo{}, err
	}
	return photo, nil
}

// Bytes decodes a photo's inline payload back to raw image bytes.
func (r *Photos) Bytes(photo model.Photo) ([]byte, error) {
	return base64.StdEncoding.DecodeString(photo.Payload)
}

// Delete removes a photo. Idempotent.
func (r *Photos) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, store.CollectionPhotos, id)
}

// ToggleLike adds the author to the like set if absent, removes them if
// present. An author appears at most once; toggling twice returns the set
// to its original membership.
func (r *Photos) ToggleLike(ctx context.Context, id, author string) (model.Photo, error) {
	photo, err := r.Get(ctx, id)
	if err != nil {
		return model.Photo{}, err
	}

	author = normKey(author)

	found := false
	for i, like := range photo.Likes {
		if like == author {
			photo.Likes = append(photo.Likes[:i], photo.Likes[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		photo.Likes = append(photo.Likes, author)
	}

	if err := putOne(ctx, r.store, store.CollectionPhotos, id, photo); err != nil {
		return model.Photo{}, err
	}
	return photo, nil
}
