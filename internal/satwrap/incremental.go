package satwrap

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

func toZ(l Lit) z.Lit {
	v := l
	neg := false
	if v < 0 {
		neg = true
		v = -v
	}
	lit := z.Var(int(v)).Pos()
	if neg {
		lit = lit.Not()
	}
	return lit
}

// Incremental keeps one gini.Gini instance alive across Solve calls, so
// Assume-guarded search (CEGAR-style refinement) reuses learned clauses
// between rounds instead of paying a fresh solve every time.
type Incremental struct {
	g       *gini.Gini
	nextVar int32
}

func NewIncremental() *Incremental {
	return &Incremental{g: gini.New(), nextVar: 1}
}

func (s *Incremental) NewVar() Lit {
	v := s.nextVar
	s.nextVar++
	return Lit(v)
}

func (s *Incremental) AddClause(lits ...Lit) {
	for _, l := range lits {
		s.g.Add(toZ(l))
	}
	s.g.Add(0)
}

func (s *Incremental) Assume(lits ...Lit) {
	zs := make([]z.Lit, len(lits))
	for i, l := range lits {
		zs[i] = toZ(l)
	}
	s.g.Assume(zs...)
}

func (s *Incremental) Solve() bool {
	return s.g.Solve() == 1
}

func (s *Incremental) Value(l Lit) bool {
	return s.g.Value(toZ(l))
}
