package gia

import "abccore/internal/truth"

// TruthTables returns, for every primary output, the truth table of its
// driven function over a window where PI i is elementary variable i.
// NumPis() must not exceed truth.MaxVars. This gives tests a simulation
// oracle independent of the MiniAIG/structural-hash machinery being
// verified.
func (g *GIA) TruthTables() []*truth.Table {
	n := g.NumPis()
	cache := make([]*truth.Table, len(g.Objs))
	cache[0] = truth.Const(n, false)
	for i, id := range g.pis {
		cache[id] = truth.Elementary(n, i)
	}
	_, order := g.dfsMark(nil)
	for _, id := range order {
		o := &g.Objs[id]
		t0 := literalTable(cache, o.Fanin0)
		t1 := literalTable(cache, o.Fanin1)
		cache[id] = truth.And(t0, t1)
	}
	out := make([]*truth.Table, g.NumPos())
	for i, po := range g.pos {
		out[i] = literalTable(cache, g.Objs[po].Fanin0)
	}
	return out
}

func literalTable(cache []*truth.Table, lit Lit) *truth.Table {
	t := cache[lit.Var()]
	if lit.IsCompl() {
		return truth.Not(t)
	}
	return t
}
