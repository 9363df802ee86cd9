// Package result defines the in-memory hierarchical execution record and the
// visitor framework used by every report generator. Trees are constructed
// once per input by an external parser, transformed in place by the merge,
// filter and reduce engines, and are then read-only for emission.
package result

// Result is a whole execution record: one root suite plus the tree-level
// execution errors collected while it was captured.
type Result struct {
	Suite  *Suite
	Errors []Message

	// RPA selects the tests-vs-tasks terminology carried by the source
	// capture. When results are combined the last input wins unless the
	// configuration overrides it.
	RPA bool
}

// NewResult wraps a root suite into a Result.
func NewResult(root *Suite) *Result {
	return &Result{Suite: root}
}

// Statistics derives live counts from the tests currently in the tree.
func (r *Result) Statistics() Statistics {
	if r.Suite == nil {
		return Statistics{}
	}
	return r.Suite.Statistics()
}
