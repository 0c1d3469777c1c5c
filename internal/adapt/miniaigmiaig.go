package adapt

import (
	"abccore/internal/gia"
	"abccore/internal/miaig"
	"abccore/internal/miniaig"
)

// MiniAIGToMIAIG converts a serialized two-input AIG into the rewiring
// engine's multi-input form. Every MiniAIG AND becomes one MIAIG node
// with exactly two fanins; nothing is shared or factored at conversion
// time — that is what Share does once the network is loaded. The
// register count is dropped: MIAIG has no sequential concept, so a
// caller converting a sequential MiniAIG is responsible for treating
// the trailing NumRegs PI/PO pairs as combinational feedback (or for
// not rewiring across that boundary).
func MiniAIGToMIAIG(src *miniaig.MiniAIG) *miaig.MIAIG {
	pis := src.Pis()
	pos := src.Pos()
	m := miaig.New(len(pis), len(pos))

	copyVar := make([]int, len(src.Entries))
	for i, id := range pis {
		copyVar[id] = i + 1
	}
	for i := 1; i < len(src.Entries); i++ {
		if src.Classify(i) != miniaig.KindAnd {
			continue
		}
		l0, l1 := src.AndFanins(i)
		nl0 := translateMiniToMIAIG(copyVar, l0)
		nl1 := translateMiniToMIAIG(copyVar, l1)
		copyVar[i] = m.AppendNode([]miaig.Lit{nl0, nl1}).Var()
	}
	for i, id := range pos {
		drv := src.PoDriver(id)
		m.SetOutput(i, translateMiniToMIAIG(copyVar, drv))
	}
	return m
}

func translateMiniToMIAIG(copyVar []int, lit gia.Lit) miaig.Lit {
	if lit.Var() == 0 {
		return gia.MakeLit(0, lit.IsCompl())
	}
	return gia.MakeLit(copyVar[lit.Var()], lit.IsCompl())
}

// MIAIGToMiniAIG flattens a (possibly multi-input) MIAIG back into
// MiniAIG's two-input form, expanding every node with more than two
// fanins into a left-associative chain of binary ANDs: fanins sorted
// ascending so the chain's intermediate nodes reuse the same low-to-
// high ordering ExpandOne/ReduceOne already canonicalize on.
func MIAIGToMiniAIG(src *miaig.MIAIG) *miniaig.MiniAIG {
	m := miniaig.New()
	m.NumRegs = 0

	copyLit := make([]gia.Lit, src.NumObjs())
	for i := 1; i <= src.NumInputs(); i++ {
		copyLit[i] = gia.MakeLit(m.AppendPi(), false)
	}
	for id := src.NumInputs() + 1; id < src.NumObjs(); id++ {
		fanins := src.Fanins(id)
		acc := translateMIAIGLit(copyLit, fanins[0])
		for _, f := range fanins[1:] {
			acc = gia.MakeLit(m.AppendAnd(acc, translateMIAIGLit(copyLit, f)), false)
		}
		copyLit[id] = acc
	}
	for i := 0; i < src.NumOutputs(); i++ {
		m.AppendPo(translateMIAIGLit(copyLit, src.Output(i)))
	}
	return m
}

func translateMIAIGLit(copyLit []gia.Lit, lit miaig.Lit) gia.Lit {
	if lit.Var() == 0 {
		return lit
	}
	return copyLit[lit.Var()].NotCond(lit.IsCompl())
}
