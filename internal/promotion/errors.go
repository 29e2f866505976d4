package promotion

import "fmt"

// StateIOError wraps a failure to persist the promotion state document or
// append to the promotions log — spec.md §7's state-io category:
// recoverable by bypass, so callers log it and continue in-memory rather
// than failing the attempt that triggered the write. Modeled on
// script-weaver's InvalidWorkspaceError/Unwrap pattern.
type StateIOError struct {
	Op  string // "save", "load", "append-log"
	Err error
}

func (e *StateIOError) Error() string {
	if e == nil || e.Err == nil {
		return "promotion: state i/o error"
	}
	return fmt.Sprintf("promotion: state i/o error during %s: %v", e.Op, e.Err)
}

func (e *StateIOError) Unwrap() error { return e.Err }
