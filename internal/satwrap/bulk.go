package satwrap

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

// Bulk records every variable/clause/assumption and only builds a
// gini.Gini instance when Solve is called, replaying the whole problem
// from scratch each time. It never reuses learned clauses across
// Solve calls — the "single bulk solve" counterpart to Incremental,
// useful for one-shot encodings (like exact synthesis at a fixed gate
// budget) where there is nothing to incrementally refine.
type Bulk struct {
	nextVar int32
	clauses [][]Lit
	assumes []Lit
	last    *gini.Gini
}

func NewBulk() *Bulk {
	return &Bulk{nextVar: 1}
}

func (s *Bulk) NewVar() Lit {
	v := s.nextVar
	s.nextVar++
	return Lit(v)
}

func (s *Bulk) AddClause(lits ...Lit) {
	s.clauses = append(s.clauses, append([]Lit(nil), lits...))
}

func (s *Bulk) Assume(lits ...Lit) {
	s.assumes = append([]Lit(nil), lits...)
}

func (s *Bulk) Solve() bool {
	g := gini.New()
	for _, c := range s.clauses {
		for _, l := range c {
			g.Add(toZ(l))
		}
		g.Add(0)
	}
	if len(s.assumes) > 0 {
		zs := make([]z.Lit, len(s.assumes))
		for i, l := range s.assumes {
			zs[i] = toZ(l)
		}
		g.Assume(zs...)
	}
	s.assumes = nil
	s.last = g
	return g.Solve() == 1
}

func (s *Bulk) Value(l Lit) bool {
	return s.last.Value(toZ(l))
}
