package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/hearth/internal/store"
)

// listAll decodes every record in a collection into its domain type.
func listAll[T any](ctx context.Context, st *store.Store, collection string) ([]T, error) {
	records, err := st.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := json.Unmarshal(rec.Data, &v); err != nil {
			return nil, fmt.Errorf("decode %s record %s: %w", collection, rec.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// getOne decodes a single record by id.
func getOne[T any](ctx context.Context, st *store.Store, collection, id string) (T, error) {
	var v T
	rec, err := st.Get(ctx, collection, id)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(rec.Data, &v); err != nil {
		return v, fmt.Errorf("decode %s record %s: %w", collection, id, err)
	}
	return v, nil
}

// addOne encodes and inserts a new record under the given id.
func addOne[T any](ctx context.Context, st *store.Store, collection, id string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s record %s: %w", collection, id, err)
	}
	return st.Add(ctx, collection, store.Record{ID: id, Data: data})
}

// putOne encodes and upserts a record under the given id.
func putOne[T any](ctx context.Context, st *store.Store, collection, id string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s record %s: %w", collection, id, err)
	}
	return st.Put(ctx, collection, store.Record{ID: id, Data: data})
}

// normKey NFC-normalizes author and emoji strings before they are compared
// for set membership, so visually identical Unicode spellings land on the
// same entry.
func normKey(s string) string {
	return norm.NFC.String(s)
}
