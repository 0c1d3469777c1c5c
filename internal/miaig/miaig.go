// Package miaig implements the rewiring engine's multi-input AIG: each
// internal object carries a sorted list of fanin literals interpreted
// as their AND, with a reference-counted handle over shared data so
// clone/drop model value-with-shared-data semantics instead of
// hand-rolled refcounting sprinkled through call sites.
package miaig

import (
	"sort"

	"abccore/internal/gia"
	"abccore/internal/truth"
)

// Lit is reused from the GIA literal encoding.
type Lit = gia.Lit

// node is one internal object: a sorted-by-variable fanin literal list,
// interpreted as their AND.
type node struct {
	isInput bool
	fanins  []Lit // sorted ascending by Var(); canonical under permutation
	fanouts []int // object ids referencing this object as a fanin
}

// data is the shared, reference-counted block backing every handle
// cloned from a common ancestor.
type data struct {
	nInputs int
	objs    []node // index 0 = constant false
	outputs []Lit
	refs    int

	// Optional per-object slots: truth tables are computed
	// on demand by Simulate rather than kept permanently dirty/clean,
	// since every rewiring primitive re-derives them from a fresh
	// simulation of the (small) window anyway.
	level []int

	exclusion []*truth.Table // per-output care-set; nil entry = fully cared

	// choices holds the candidate snapshots a Rewire call with
	// Params.KeepAllChoices collected; nil unless that option was set.
	choices []*MIAIG
}

// MIAIG is a reference-counted handle onto a shared data block.
// Equality of two handles is identity of the underlying data block.
type MIAIG struct {
	d *data
}

// New returns a fresh MIAIG with nInputs inputs and nOutputs outputs,
// all outputs initialized to constant-false, with one reference held by
// the caller.
func New(nInputs, nOutputs int) *MIAIG {
	d := &data{
		nInputs: nInputs,
		objs:    make([]node, nInputs+1),
		outputs: make([]Lit, nOutputs),
		refs:    1,
	}
	for i := 1; i <= nInputs; i++ {
		d.objs[i] = node{isInput: true}
	}
	return &MIAIG{d: d}
}

// Clone increments the shared reference count and returns a handle
// pointing at the same data. It does NOT copy the underlying objects;
// use Dup for that.
func (m *MIAIG) Clone() *MIAIG {
	m.d.refs++
	return &MIAIG{d: m.d}
}

// Drop decrements the reference count. Releasing below zero is a
// programmer error.
func (m *MIAIG) Drop() {
	if m.d.refs <= 0 {
		panic("miaig: Drop of handle with zero references")
	}
	m.d.refs--
}

// Refs reports the current reference count of the shared data block.
func (m *MIAIG) Refs() int { return m.d.refs }

// Equal reports whether a and b share the same underlying data block.
func Equal(a, b *MIAIG) bool { return a.d == b.d }

func (m *MIAIG) NumInputs() int  { return m.d.nInputs }
func (m *MIAIG) NumObjs() int    { return len(m.d.objs) }
func (m *MIAIG) NumOutputs() int { return len(m.d.outputs) }

func (m *MIAIG) IsInput(id int) bool { return id > 0 && m.d.objs[id].isInput }

// Fanins returns the sorted fanin literal list of object id (empty for
// inputs and the constant).
func (m *MIAIG) Fanins(id int) []Lit { return m.d.objs[id].fanins }

// Fanouts returns the object ids that reference id as a fanin.
func (m *MIAIG) Fanouts(id int) []int { return m.d.objs[id].fanouts }

func (m *MIAIG) Output(i int) Lit       { return m.d.outputs[i] }
func (m *MIAIG) SetOutput(i int, l Lit) { m.d.outputs[i] = l }

// Choices returns the alternative networks a Rewire call with
// Params.KeepAllChoices collected, oldest first, or nil if that option
// was never set.
func (m *MIAIG) Choices() []*MIAIG { return m.d.choices }

// Exclusion returns the care-set restricting output i, or nil if the
// output is fully cared about everywhere.
func (m *MIAIG) Exclusion(i int) *truth.Table {
	if m.d.exclusion == nil {
		return nil
	}
	return m.d.exclusion[i]
}

// SetExclusion installs a care-set table for output i.
func (m *MIAIG) SetExclusion(i int, t *truth.Table) {
	if m.d.exclusion == nil {
		m.d.exclusion = make([]*truth.Table, len(m.d.outputs))
	}
	m.d.exclusion[i] = t
}

func sortLits(lits []Lit) {
	sort.Slice(lits, func(i, j int) bool { return lits[i].Var() < lits[j].Var() })
}

// AppendNode appends a new AND-of-fanins object; fanins is canonicalized
// (sorted by variable) before storage so the representation is
// insensitive to caller order. It is a programmer error to reference a
// fanin whose variable is >= the new object's own index.
func (m *MIAIG) AppendNode(fanins []Lit) Lit {
	cp := append([]Lit(nil), fanins...)
	sortLits(cp)
	id := len(m.d.objs)
	for _, l := range cp {
		if l.Var() >= id {
			panic("miaig: fanin variable >= new object index")
		}
	}
	m.d.objs = append(m.d.objs, node{fanins: cp})
	for _, l := range cp {
		v := l.Var()
		m.d.objs[v].fanouts = append(m.d.objs[v].fanouts, id)
	}
	return gia.MakeLit(id, false)
}

// replaceFanins overwrites object id's fanin list (used by reduce/
// expand/share to rewrite a node in place) and maintains reciprocal
// fanout bookkeeping.
func (m *MIAIG) replaceFanins(id int, newFanins []Lit) {
	old := m.d.objs[id].fanins
	for _, l := range old {
		removeFanout(&m.d.objs[l.Var()].fanouts, id)
	}
	cp := append([]Lit(nil), newFanins...)
	sortLits(cp)
	m.d.objs[id].fanins = cp
	for _, l := range cp {
		m.d.objs[l.Var()].fanouts = append(m.d.objs[l.Var()].fanouts, id)
	}
}

func removeFanout(s *[]int, id int) {
	for i, v := range *s {
		if v == id {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return
		}
	}
}

// RewriteConsumers replaces every occurrence of variable oldVar (either
// polarity) in any node's fanin list and in the outputs with
// newLitForPositive (complemented to preserve the polarity the consumer
// originally wanted). Share does not call it; Share rewrites its
// consumers through replaceFanins directly.
func (m *MIAIG) RewriteConsumers(oldVar int, newLitForPositive Lit) {
	consumers := append([]int(nil), m.d.objs[oldVar].fanouts...)
	for _, c := range consumers {
		fanins := m.d.objs[c].fanins
		replaced := make([]Lit, len(fanins))
		changed := false
		for i, l := range fanins {
			if l.Var() == oldVar {
				replaced[i] = newLitForPositive.NotCond(l.IsCompl())
				changed = true
			} else {
				replaced[i] = l
			}
		}
		if changed {
			m.replaceFanins(c, replaced)
		}
	}
	for i, o := range m.d.outputs {
		if o.Var() == oldVar {
			m.d.outputs[i] = newLitForPositive.NotCond(o.IsCompl())
		}
	}
}

// Dup performs a deep structural copy into a fresh handle (a new
// reference count of 1), translating nothing (ids are preserved 1:1)
// — the starting point every transform pass in rewire.go calls before
// mutating in place, so the caller's original handle is left untouched.
func (m *MIAIG) Dup() *MIAIG {
	out := New(m.d.nInputs, len(m.d.outputs))
	out.d.objs = make([]node, len(m.d.objs))
	for i, o := range m.d.objs {
		out.d.objs[i] = node{
			isInput: o.isInput,
			fanins:  append([]Lit(nil), o.fanins...),
			fanouts: append([]int(nil), o.fanouts...),
		}
	}
	copy(out.d.outputs, m.d.outputs)
	if m.d.exclusion != nil {
		out.d.exclusion = append([]*truth.Table(nil), m.d.exclusion...)
	}
	return out
}
