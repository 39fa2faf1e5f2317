// Package ledger provides the monotonic counter state and its optional
// SQLite backing store.
//
// The ledger is an append-only event log: one row per recorded command
// execution. The Counter exposes the two operations the executors need -
// current value and "record one event" - and degrades to an in-memory
// default when no ledger is available. Ledger failures never surface to
// command execution; the counter is a side collaborator, not a dependency.
package ledger
