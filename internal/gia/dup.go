package gia

// Dup duplicates g into a new GIA, in topological order, with
// structural hashing on in the target so any redundancy exposed by the
// copy (e.g. from dangling removal) collapses automatically. If
// removeDangling is true only objects reachable from a PO survive;
// unreached PIs are dropped too. If false every PI is copied regardless
// of reachability, and unreached ANDs are simply never visited (they
// cannot be, since only PO-reachable cones are walked) — callers that
// need literal object-for-object preservation should not rely on Dup
// for that; Dup always performs cleanup-shaped duplication.
func (g *GIA) Dup(removeDangling bool) *GIA {
	out := New()
	out.SetNumRegs(g.NumRegs())
	copyMap := make([]Lit, len(g.Objs))

	reached, order := g.dfsMark(nil)

	for i, srcPi := range g.pis {
		if removeDangling && !reached[srcPi] {
			continue
		}
		copyMap[srcPi] = out.AppendPi(g.Objs[srcPi].Name)
		_ = i
	}

	for _, id := range order {
		o := &g.Objs[id]
		l0 := translate(copyMap, o.Fanin0)
		l1 := translate(copyMap, o.Fanin1)
		copyMap[id] = out.AppendAnd(l0, l1)
	}

	for _, po := range g.pos {
		drv := g.Objs[po].Fanin0
		out.AppendPo(translate(copyMap, drv), g.Objs[po].Name)
	}
	return out
}

func translate(copyMap []Lit, lit Lit) Lit {
	if lit.Var() == 0 {
		return lit // constant, var 0 maps to itself in every GIA
	}
	return copyMap[lit.Var()].NotCond(lit.IsCompl())
}

// Cleanup is Dup(true) performed in place: g is replaced by its own
// dangling-free duplicate, reusing the duplication walk rather than a
// separate in-place compaction pass.
func (g *GIA) Cleanup() {
	clean := g.Dup(true)
	*g = *clean
}
