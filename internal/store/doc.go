// Package store provides SQLite-backed durable storage for the Hearth
// household dashboard.
//
// The store holds a fixed set of named collections plus a flat scalar
// preference table:
//   - Collections: homogeneous sets of JSON records keyed by an opaque id
//     (notes, photos, chores, expenses, checkins, calendar_events,
//     auth_status, documents, house_rules)
//   - Preferences: string key/value pairs with last-write-wins semantics
//
// # Contract
//
// Every collection operation is a single all-or-nothing unit against one
// collection. There is no multi-collection transaction primitive; callers
// that must touch two collections issue two independent operations and
// tolerate the partial states a crash between them can leave behind.
//
//   - Add fails with DUPLICATE_KEY if the id already exists
//   - Put has upsert semantics keyed by id
//   - Delete is an idempotent no-op when the id is absent
//   - ReplaceAll (clear + re-insert) is atomic within its one collection
//
// Record ids are UUIDv7: a time-ordered prefix plus random suffix, unique
// for the lifetime of a store instance and never reused after delete.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Schema evolution is additive-only, driven by PRAGMA user_version; opening
// an older database creates missing collections without disturbing existing
// ones.
package store
