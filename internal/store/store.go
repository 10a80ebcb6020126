package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema (seven domain collections + documents + preferences)
// 2 - Added house_rules collection
const currentSchemaVersion = 2

// Collection names fixed at schema-definition time. No runtime collection
// creation exists beyond the one-time upgrade step in runMigrations.
const (
	CollectionNotes          = "notes"
	CollectionPhotos         = "photos"
	CollectionChores         = "chores"
	CollectionExpenses       = "expenses"
	CollectionCheckins       = "checkins"
	CollectionCalendarEvents = "calendar_events"
	CollectionAuthStatus     = "auth_status"
	CollectionDocuments      = "documents"
	CollectionHouseRules     = "house_rules"
)

// collectionOrder is the stable enumeration order used by Collections and
// by the backup service when assembling snapshots.
var collectionOrder = []string{
	CollectionNotes,
	CollectionPhotos,
	CollectionChores,
	CollectionExpenses,
	CollectionCheckins,
	CollectionCalendarEvents,
	CollectionAuthStatus,
	CollectionDocuments,
	CollectionHouseRules,
}

var knownCollections = func() map[string]bool {
	m := make(map[string]bool, len(collectionOrder))
	for _, c := range collectionOrder {
		m[c] = true
	}
	return m
}()

// Store provides durable storage for Hearth collections and preferences.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db       *sql.DB
	notifier *notifier
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times, including
// concurrently from multiple call sites. If the platform denies access
// (bad path, disk error), the error satisfies IsStorageUnavailable and
// the caller should treat the session as fatal-but-recoverable.
func Open(path string) (*Store, error) {
	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, NewStorageUnavailableError("failed to open database", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStorageUnavailableError("failed to connect to database", err)
	}

	// Configure connection pool for SQLite
	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	// Apply required pragmas
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, NewStorageUnavailableError("failed to apply pragmas", err)
	}

	// Apply schema migrations
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, NewStorageUnavailableError("failed to apply schema", err)
	}

	return &Store{db: db, notifier: newNotifier()}, nil
}

// Close closes the database connection.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.notifier != nil {
		s.notifier.close()
	}
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Collections returns the declared collection names in stable order.
func (s *Store) Collections() []string {
	out := make([]string, len(collectionOrder))
	copy(out, collectionOrder)
	return out
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// SchemaVersion reports the database's PRAGMA user_version. After a
// successful Open it always equals the current schema version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, NewStorageUnavailableError("get user_version", err)
	}
	return version, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates collection tables if they don't exist and runs
// migrations. This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
// Migrations are additive-only: they create missing collections without
// touching the contents of collections that already exist.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	// Apply migrations sequentially
	if version < 2 {
		if err := migrateToV2(db); err != nil {
			return err
		}
		version = 2
	}

	// Set version after all migrations
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV2 adds the house_rules collection for existing databases.
// New databases get this from schema.sql, but databases created before v2
// need the table added explicitly.
func migrateToV2(db *sql.DB) error {
	// CREATE TABLE IF NOT EXISTS is safe - no-op if the collection exists
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS house_rules (
			id   TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v2: %w", err)
	}
	return nil
}

// checkCollection rejects collection names outside the declared schema.
// Collection names are interpolated into SQL, so this is also the guard
// that keeps table names closed over the fixed set.
func checkCollection(collection string) error {
	if !knownCollections[collection] {
		return NewUnknownCollectionError(collection)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
