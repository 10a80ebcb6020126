package repo

import (
	"context"
	"encoding/json"

	"github.com/roach88/hearth/internal/model"
	"github.com/roach88/hearth/internal/store"
)

// Documents is the generic keyed store: arbitrary named JSON blobs for
// features that want document-style persistence without a dedicated
// repository. Keys are caller-chosen; Put has upsert semantics.
type Documents struct {
	store *store.Store
}

// NewDocuments creates the generic keyed store repository.
func NewDocuments(st *store.Store) *Documents {
	return &Documents{store: st}
}

// Get returns the blob stored under key. Fails with NOT_FOUND if absent.
func (r *Documents) Get(ctx context.Context, key string) (json.RawMessage, error) {
	doc, err := getOne[model.Document](ctx, r.store, store.CollectionDocuments, key)
	if err != nil {
		return nil, err
	}
	return doc.Value, nil
}

// Put stores a blob under key, overwriting any existing value.
func (r *Documents) Put(ctx context.Context, key string, value json.RawMessage) error {
	doc := model.Document{ID: key, Value: value}
	return putOne(ctx, r.store, store.CollectionDocuments, key, doc)
}

// Delete removes the blob under key. Idempotent.
func (r *Documents) Delete(ctx context.Context, key string) error {
	return r.store.Delete(ctx, store.CollectionDocuments, key)
}

// Keys lists every stored document key.
func (r *Documents) Keys(ctx context.Context) ([]string, error) {
	docs, err := listAll[model.Document](ctx, r.store, store.CollectionDocuments)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(docs))
	for _, doc := range docs {
		keys = append(keys, doc.ID)
	}
	return keys, nil
}
