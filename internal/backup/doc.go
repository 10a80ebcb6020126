// Package backup implements the snapshot protocol over the Hearth store:
// export of the entire persisted state into one versioned, timestamped
// document, and validated, rollback-capable restore from such a document.
//
// # Import state machine
//
//	Idle -> Validating -> SafetyCapture -> Applying -> Committed
//	                                               \-> (ImportFailed) -> RolledBack
//
// Validation is purely structural and mutates nothing. Before the first
// destructive write, the service unconditionally exports the current state
// and retains it as the safety capture - the only rollback mechanism, since
// the store offers no multi-collection transaction. A failure while
// applying surfaces IMPORT_FAILED; the caller invokes Rollback to re-import
// the capture.
//
// Export is read-only and safe to run concurrently with writes, but it is
// not a point-in-time snapshot across collections: each collection is read
// independently.
//
// The store pushes no change notifications for bulk replacement beyond the
// coarse replace events, so after a committed import consumers must re-fetch
// any state they cache.
package backup
