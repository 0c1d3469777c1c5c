// Package satwrap wraps github.com/irifrance/gini behind a small DIMACS-
// style interface, with two interchangeable backends: Incremental keeps
// one solver instance alive across calls (reusing learned clauses),
// Bulk replays every clause into a fresh instance on each Solve, for
// callers that need a from-scratch resolve instead of incremental
// assumption-based search.
package satwrap

// Lit is a DIMACS-style literal: a positive value names a variable's
// true polarity, its negation the false polarity. Variable numbering
// starts at 1; 0 is not a valid literal.
type Lit int32

// Solver is the interface exact synthesis and any other SAT-backed
// component programs against, so the backend is swappable.
type Solver interface {
	NewVar() Lit
	AddClause(lits ...Lit)
	Assume(lits ...Lit)
	Solve() bool
	Value(l Lit) bool
}
