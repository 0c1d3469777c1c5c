// Package adapt implements bidirectional converters between the core
// representations: GIA <-> Ntk <-> MiniAIG <-> MIAIG. Each function
// takes one representation and a fresh target, translating
// literals/fanins through an explicit copy map — an integer array
// indexed by source id, the same idiom Ntk duplication uses, reused
// here so every converter reads the same way.
package adapt

import (
	"abccore/internal/gia"
	"abccore/internal/miniaig"
)

// GIAToMiniAIG converts g to a MiniAIG, preserving PI/PO order and the
// register count.
func GIAToMiniAIG(g *gia.GIA) *miniaig.MiniAIG {
	m := miniaig.New()
	m.NumRegs = g.NumRegs()
	copyID := make([]int, g.NumObjs())

	for i := 0; i < g.NumPis(); i++ {
		srcID := g.PiObjID(i)
		copyID[srcID] = m.AppendPi()
	}
	for _, id := range g.DfsOrder() {
		o := &g.Objs[id]
		l0 := translateLit(copyID, o.Fanin0)
		l1 := translateLit(copyID, o.Fanin1)
		copyID[id] = m.AppendAnd(l0, l1)
	}
	for i := 0; i < g.NumPos(); i++ {
		drv := g.PoDriver(i)
		m.AppendPo(translateLit(copyID, drv))
	}
	return m
}

func translateLit(copyID []int, lit gia.Lit) gia.Lit {
	if lit.Var() == 0 {
		return lit
	}
	return gia.MakeLit(copyID[lit.Var()], lit.IsCompl())
}

// MiniAIGToGIA converts m to a GIA with structural hashing enabled, so
// any redundancy already resolved in m collapses further if exposed by
// re-appending in table order.
func MiniAIGToGIA(m *miniaig.MiniAIG) *gia.GIA {
	g := gia.New()
	g.SetNumRegs(m.NumRegs)
	copyLit := make([]gia.Lit, len(m.Entries))

	for i := range m.Entries {
		switch m.Classify(i) {
		case miniaig.KindPI:
			copyLit[i] = g.AppendPi("")
		case miniaig.KindAnd:
			l0, l1 := m.AndFanins(i)
			copyLit[i] = g.AppendAnd(translateMiniLit(copyLit, l0), translateMiniLit(copyLit, l1))
		}
	}
	for _, id := range m.Pos() {
		drv := m.PoDriver(id)
		g.AppendPo(translateMiniLit(copyLit, drv), "")
	}
	return g
}

func translateMiniLit(copyLit []gia.Lit, lit gia.Lit) gia.Lit {
	if lit.Var() == 0 {
		return lit
	}
	return copyLit[lit.Var()].NotCond(lit.IsCompl())
}
