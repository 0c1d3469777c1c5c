package adapt

import (
	"fmt"

	"abccore/internal/gia"
	"abccore/internal/ntk"
)

// GIAToNtk converts g to a FuncAIG Ntk: every GIA AND becomes an Ntk
// node with two fanins (compl bit carried per edge), every non-register
// PI/PO stays a PI/PO, and the trailing NumRegs() PI/PO pairs (the
// AIGER-style register convention GIA and MiniAIG both use) become
// explicit Ntk latches. GIA's constant-false object (index 0) has no
// Ntk counterpart object kind, so it is represented by a dedicated
// zero-fanin node created first; a complemented edge to that node
// means constant-true. This is a convention of this converter only —
// Ntk itself attaches no meaning to a zero-fanin node.
func GIAToNtk(g *gia.GIA) *ntk.Ntk {
	regCount := g.NumRegs()
	dstType := ntk.TypeStrashed
	if regCount > 0 {
		dstType = ntk.TypeSequential
	}
	n := ntk.New(dstType, ntk.FuncAIG)

	constObj := n.NewNode()
	copyID := make([]int, g.NumObjs())
	copyID[0] = constObj.ID

	regPiStart := g.NumPis() - regCount
	latchObjs := make([]*ntk.Obj, 0, regCount)
	for i := 0; i < g.NumPis(); i++ {
		srcID := g.PiObjID(i)
		if i >= regPiStart {
			lo := n.NewLatchUnwired(fmt.Sprintf("latch%d", i-regPiStart), ntk.InitZero)
			copyID[srcID] = lo.ID
			latchObjs = append(latchObjs, lo)
			continue
		}
		copyID[srcID] = n.NewPi(g.Objs[srcID].Name).ID
	}

	for _, id := range g.DfsOrder() {
		o := &g.Objs[id]
		dst := n.NewNode()
		copyID[id] = dst.ID
		v0, c0 := splitGiaLit(copyID, o.Fanin0)
		v1, c1 := splitGiaLit(copyID, o.Fanin1)
		n.AddFanin(dst.ID, v0, c0)
		n.AddFanin(dst.ID, v1, c1)
	}

	regPoStart := g.NumPos() - regCount
	for i := 0; i < g.NumPos(); i++ {
		v, c := splitGiaLit(copyID, g.PoDriver(i))
		if i >= regPoStart {
			n.AddFanin(latchObjs[i-regPoStart].ID, v, c)
			continue
		}
		n.NewPoCompl(g.PoName(i), v, c)
	}
	return n
}

func splitGiaLit(copyID []int, lit gia.Lit) (int, bool) {
	return copyID[lit.Var()], lit.IsCompl()
}

// NtkToGIA converts a FuncAIG Ntk to a GIA with structural hashing
// enabled. Latches become trailing register PI/PO pairs (NumRegs set
// accordingly), in latch-roster order. A node with no fanins is read as
// constant false (complemented edges to it as constant true), the same
// convention GIAToNtk uses for GIA's constant object; every other node
// is read as the AND of its first two fanins.
func NtkToGIA(n *ntk.Ntk) *gia.GIA {
	if n.Func != ntk.FuncAIG {
		panic("adapt: NtkToGIA requires a FuncAIG network")
	}
	g := gia.New()
	g.SetNumRegs(len(n.Latches))
	copyLit := make([]gia.Lit, len(n.Objs))

	for _, id := range n.Pis {
		copyLit[id] = g.AppendPi(n.Obj(id).Name)
	}
	for i, id := range n.Latches {
		copyLit[id] = g.AppendPi(fmt.Sprintf("latch%d_out", i))
	}

	for _, id := range n.TopoOrder() {
		o := n.Obj(id)
		if len(o.Fanins) == 0 {
			copyLit[id] = gia.LitFalse
			continue
		}
		l0 := ntkFaninLit(copyLit, o, 0)
		l1 := ntkFaninLit(copyLit, o, 1)
		copyLit[id] = g.AppendAnd(l0, l1)
	}

	for _, id := range n.Pos {
		o := n.Obj(id)
		g.AppendPo(ntkFaninLit(copyLit, o, 0), o.Name)
	}
	for _, id := range n.Latches {
		o := n.Obj(id)
		g.AppendPo(ntkFaninLit(copyLit, o, 0), o.Name+"_in")
	}
	return g
}

func ntkFaninLit(copyLit []gia.Lit, o *ntk.Obj, slot int) gia.Lit {
	fi := o.Fanins[slot]
	return copyLit[fi].NotCond(o.Compls[slot])
}
