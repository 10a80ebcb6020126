package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Record is an opaque JSON document stored in one collection, keyed by an
// immutable identifier. The store never interprets Data beyond persisting it.
type Record struct {
	ID   string
	Data json.RawMessage
}

// NewRecordID produces an identifier unique within the process lifetime.
// UUIDv7 combines a monotonically increasing time prefix with a random
// suffix, so ids sort by creation time and are never reused after delete.
func NewRecordID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// GetAll returns every record in the collection. Order is unspecified
// unless the caller sorts; in practice rows come back in id order, which
// for UUIDv7 ids approximates creation order.
//
// Returns an empty slice (not nil) if the collection is empty.
func (s *Store) GetAll(ctx context.Context, collection string) ([]Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, data FROM %s ORDER BY id COLLATE BINARY ASC`, collection))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var data string
		if err := rows.Scan(&rec.ID, &data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		rec.Data = json.RawMessage(data)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}

	// Return empty slice instead of nil
	if records == nil {
		records = []Record{}
	}

	return records, nil
}

// Get retrieves a single record by id.
// Returns a NOT_FOUND error if the id does not exist.
func (s *Store) Get(ctx context.Context, collection, id string) (Record, error) {
	if err := checkCollection(collection); err != nil {
		return Record{}, err
	}

	var data string
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT data FROM %s WHERE id = ?`, collection), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, NewNotFoundError(collection, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get %s: %w", collection, err)
	}

	return Record{ID: id, Data: json.RawMessage(data)}, nil
}

// Add inserts a new record. Fails with a DUPLICATE_KEY error if the id
// already exists; the existing record is left untouched.
func (s *Store) Add(ctx context.Context, collection string, rec Record) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	// ON CONFLICT DO NOTHING + RowsAffected distinguishes a duplicate id
	// from other constraint violations without sniffing driver error codes.
	result, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, data) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`, collection),
		rec.ID, string(rec.Data))
	if err != nil {
		return fmt.Errorf("add to %s: %w", collection, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("add to %s: rows affected: %w", collection, err)
	}
	if affected == 0 {
		return NewDuplicateKeyError(collection, rec.ID)
	}

	s.notifier.publish(Event{Collection: collection, Op: OpAdd, ID: rec.ID})
	return nil
}

// Put persists a record with upsert semantics: creates if absent,
// overwrites if present, keyed by id.
func (s *Store) Put(ctx context.Context, collection string, rec Record) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, data) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`, collection),
		rec.ID, string(rec.Data))
	if err != nil {
		return fmt.Errorf("put to %s: %w", collection, err)
	}

	s.notifier.publish(Event{Collection: collection, Op: OpPut, ID: rec.ID})
	return nil
}

// Delete removes a record by id. Deleting an absent id is a no-op, not an
// error - delete is idempotent.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE id = ?`, collection), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", collection, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: rows affected: %w", collection, err)
	}
	if affected > 0 {
		s.notifier.publish(Event{Collection: collection, Op: OpDelete, ID: id})
	}
	return nil
}

// Count returns the number of records in the collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT COUNT(*) FROM %s`, collection)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return count, nil
}

// Clear removes every record in the collection.
func (s *Store) Clear(ctx context.Context, collection string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, collection)); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}

	s.notifier.publish(Event{Collection: collection, Op: OpReplace})
	return nil
}

// ReplaceAll atomically replaces the collection's entire contents with the
// given records: clear, then re-insert, in one collection-scoped
// transaction. Either every record lands or none do - a failure partway
// through leaves the collection as it was.
//
// This is the destructive half of the import protocol; callers must hold a
// safety capture before invoking it.
func (s *Store) ReplaceAll(ctx context.Context, collection string, records []Record) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace %s: begin tx: %w", collection, err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, collection)); err != nil {
		return fmt.Errorf("replace %s: clear: %w", collection, err)
	}

	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(
			`INSERT INTO %s (id, data) VALUES (?, ?)`, collection),
			rec.ID, string(rec.Data)); err != nil {
			return fmt.Errorf("replace %s: insert %s: %w", collection, rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace %s: commit: %w", collection, err)
	}

	s.notifier.publish(Event{Collection: collection, Op: OpReplace})
	return nil
}
