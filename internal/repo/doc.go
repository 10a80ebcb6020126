// Package repo provides the typed, feature-facing repositories over the
// generic collection store.
//
// Every repository follows the same shape:
//   - Create stamps a fresh id and timestamp, then Adds
//   - Update loads the existing record, merges a patch of optional fields,
//     and Puts the result; updating a missing id fails with NOT_FOUND,
//     never a silent create
//   - Delete passes through the store's idempotent delete
//
// Domain invariants live here, not in the store: the chore completion
// timestamp, the photo like toggle, the note reaction upsert, and the
// append-only check-in contract are all repository rules layered on the
// same CRUD primitive.
//
// Repositories do not coordinate across collections. A domain action that
// touches two collections is two independent operations, and callers are
// expected to tolerate the partial state a crash between them can leave.
package repo
