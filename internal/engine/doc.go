// Package engine executes parsed commands against the entity registry and
// counter state.
//
// Execution is single-threaded and synchronous: a script is processed one
// line at a time, and each executor runs to completion (including all
// persistence writes) before the next line is parsed. There is no rollback
// across lines - a script is an atomic sequence of independent,
// already-committed steps. The registry and counter are process-wide
// mutable state with no external writer assumed; multi-process access to
// the same backing stores is unsupported.
package engine
