// Package miniaig implements a minimal serializable AIG representation:
// an object table where entry i holds the two fanin literals of object
// i, with the sentinel 0x7FFFFFFF marking an absent fanin.
package miniaig

import "abccore/internal/gia"

// Sentinel marks an absent fanin in an entry.
const Sentinel uint32 = 0x7FFFFFFF

// Entry is one object's two fanin literals.
type Entry struct {
	Fanin0 uint32
	Fanin1 uint32
}

// Kind classifies an Entry.
type Kind byte

const (
	KindConst Kind = iota
	KindPI
	KindPO
	KindAnd
)

// MiniAIG is the append-only entry table plus the separately-stored
// register count.
type MiniAIG struct {
	Entries []Entry
	NumRegs int
}

// New returns a MiniAIG with only the constant-zero entry at index 0.
func New() *MiniAIG {
	return &MiniAIG{Entries: []Entry{{Fanin0: Sentinel, Fanin1: Sentinel}}}
}

// Classify reports the kind of entry i from the shape of its fanins:
// both sentinel is a PI, one sentinel is a PO, neither is an AND.
func (m *MiniAIG) Classify(i int) Kind {
	if i == 0 {
		return KindConst
	}
	e := m.Entries[i]
	switch {
	case e.Fanin0 == Sentinel && e.Fanin1 == Sentinel:
		return KindPI
	case e.Fanin0 != Sentinel && e.Fanin1 == Sentinel:
		return KindPO
	default:
		return KindAnd
	}
}

// AppendPi appends a primary input and returns its object index.
func (m *MiniAIG) AppendPi() int {
	id := len(m.Entries)
	m.Entries = append(m.Entries, Entry{Fanin0: Sentinel, Fanin1: Sentinel})
	return id
}

// AppendPo appends a primary output driven by the literal drv.
func (m *MiniAIG) AppendPo(drv gia.Lit) int {
	id := len(m.Entries)
	m.Entries = append(m.Entries, Entry{Fanin0: uint32(drv), Fanin1: Sentinel})
	return id
}

// AppendAnd appends an AND of the two literals lit0, lit1.
func (m *MiniAIG) AppendAnd(lit0, lit1 gia.Lit) int {
	id := len(m.Entries)
	m.Entries = append(m.Entries, Entry{Fanin0: uint32(lit0), Fanin1: uint32(lit1)})
	return id
}

// Pis returns the object indices of every PI entry, in table order.
func (m *MiniAIG) Pis() []int {
	var out []int
	for i := range m.Entries {
		if m.Classify(i) == KindPI {
			out = append(out, i)
		}
	}
	return out
}

// Pos returns the object indices of every PO entry, in table order.
func (m *MiniAIG) Pos() []int {
	var out []int
	for i := range m.Entries {
		if m.Classify(i) == KindPO {
			out = append(out, i)
		}
	}
	return out
}

// PoDriver returns the driving literal of PO entry id.
func (m *MiniAIG) PoDriver(id int) gia.Lit {
	return gia.Lit(m.Entries[id].Fanin0)
}

// AndFanins returns the two fanin literals of AND entry id.
func (m *MiniAIG) AndFanins(id int) (gia.Lit, gia.Lit) {
	e := m.Entries[id]
	return gia.Lit(e.Fanin0), gia.Lit(e.Fanin1)
}
