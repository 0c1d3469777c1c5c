package gia

import "fmt"

// Kind tags what an object record represents.
type Kind byte

const (
	KindConst Kind = iota
	KindPI
	KindPO
	KindAnd
)

// Obj is one append-only record. Fanin0/Fanin1 are literals strictly
// less than the object's own index for AND nodes; PO stores its single driver in Fanin0; PI and the
// constant carry no fanins.
type Obj struct {
	Kind   Kind
	Fanin0 Lit
	Fanin1 Lit
	Name   string // optional, PI/PO only
}

// GIA is the compact AND-INVERTER graph container. Index 0 is always the constant-false record.
type GIA struct {
	Objs     []Obj
	pis      []int // object indices of primary inputs, in append order
	pos      []int // object indices of primary outputs, in append order
	nRegs    int
	hash     *strashTable
	strashOn bool
	dfsOrder []int // optional, set by Reorder
	Name     string
	Spec     string
}

// New returns an empty GIA with structural hashing enabled and the
// constant-zero object already appended at index 0.
func New() *GIA {
	g := &GIA{
		Objs:     []Obj{{Kind: KindConst}},
		strashOn: true,
		hash:     newStrashTable(301),
	}
	return g
}

// SetStrash toggles structural hashing for subsequent AND construction.
func (g *GIA) SetStrash(on bool) { g.strashOn = on }

// NumObjs, NumPis, NumPos, NumAnds report object counts.
func (g *GIA) NumObjs() int { return len(g.Objs) }
func (g *GIA) NumPis() int { return len(g.pis) }
func (g *GIA) NumPos() int { return len(g.pos) }
func (g *GIA) NumAnds() int {
	n := 0
	for _, o := range g.Objs {
		if o.Kind == KindAnd {
			n++
		}
	}
	return n
}

// NumRegs returns the register (latch) count carried for sequential
// semantics.
func (g *GIA) NumRegs() int { return g.nRegs }
func (g *GIA) SetNumRegs(n int) { g.nRegs = n }

// PiLit / PoDriver access PI/PO objects by their append order.
func (g *GIA) PiLit(i int) Lit { return MakeLit(g.pis[i], false) }
func (g *GIA) PiObjID(i int) int { return g.pis[i] }
func (g *GIA) PoDriver(i int) Lit { return g.Objs[g.pos[i]].Fanin0 }
func (g *GIA) PoObjID(i int) int { return g.pos[i] }
func (g *GIA) PoName(i int) string { return g.Objs[g.pos[i]].Name }

// AppendPi appends a new primary input and returns its literal.
func (g *GIA) AppendPi(name string) Lit {
	id := len(g.Objs)
	g.Objs = append(g.Objs, Obj{Kind: KindPI, Name: name})
	g.pis = append(g.pis, id)
	return MakeLit(id, false)
}

// AppendPo appends a new primary output driven by lit.
func (g *GIA) AppendPo(lit Lit, name string) int {
	id := len(g.Objs)
	g.Objs = append(g.Objs, Obj{Kind: KindPO, Fanin0: lit, Name: name})
	g.pos = append(g.pos, id)
	return len(g.pos) - 1
}

// constantPropagate implements total constant rules:
// lit & 0 = 0, lit & 1 = lit, lit & lit = lit, lit & ¬lit = 0.
func constantPropagate(lit0, lit1 Lit) (Lit, bool) {
	if lit0 == LitFalse || lit1 == LitFalse {
		return LitFalse, true
	}
	if lit0 == LitTrue {
		return lit1, true
	}
	if lit1 == LitTrue {
		return lit0, true
	}
	if lit0 == lit1 {
		return lit0, true
	}
	if lit0 == lit1.Not() {
		return LitFalse, true
	}
	return 0, false
}

// AppendAnd returns the literal of the AND of lit0 and lit1, creating a
// new object only if structural hashing does not already have one for
// this (ordered) pair. Constant propagation is applied first. Fanins
// are canonically ordered (smaller regular literal first, ties by
// polarity) so hashing is insensitive to argument order.
func (g *GIA) AppendAnd(lit0, lit1 Lit) Lit {
	if out, ok := constantPropagate(lit0, lit1); ok {
		return out
	}
	if lit1 < lit0 {
		lit0, lit1 = lit1, lit0
	}
	if g.strashOn {
		if id, ok := g.hash.lookup(g, lit0, lit1); ok {
			return MakeLit(id, false)
		}
	}
	id := len(g.Objs)
	if int(lit0.Var()) >= id || int(lit1.Var()) >= id {
		panic(fmt.Sprintf("gia: fanin var %d/%d >= new object index %d", lit0.Var(), lit1.Var(), id))
	}
	g.Objs = append(g.Objs, Obj{Kind: KindAnd, Fanin0: lit0, Fanin1: lit1})
	if g.strashOn {
		g.hash.insert(g, id, lit0, lit1)
	}
	return MakeLit(id, false)
}

// AppendAndNoStrash bypasses hashing: after constant propagation and
// fanin ordering it always appends a new AND object, even when one with
// the same fanins exists, and does not record it in the hash table.
// Dup does not use it; Dup rebuilds through AppendAnd.
func (g *GIA) AppendAndNoStrash(lit0, lit1 Lit) Lit {
	if out, ok := constantPropagate(lit0, lit1); ok {
		return out
	}
	if lit1 < lit0 {
		lit0, lit1 = lit1, lit0
	}
	id := len(g.Objs)
	g.Objs = append(g.Objs, Obj{Kind: KindAnd, Fanin0: lit0, Fanin1: lit1})
	return MakeLit(id, false)
}

// Lookup reports whether an AND realizing (lit0, lit1) already exists,
// without creating one. Used to confirm hashing idempotence and by
// callers probing before a conditional append.
func (g *GIA) Lookup(lit0, lit1 Lit) (Lit, bool) {
	if lit1 < lit0 {
		lit0, lit1 = lit1, lit0
	}
	if id, ok := g.hash.lookup(g, lit0, lit1); ok {
		return MakeLit(id, false), true
	}
	return 0, false
}
