// Package names implements an interned-string name manager: a string
// arena with a stable string→id map, reference
// counted so several Ntks can share one name domain and release it
// together.
package names

import "fmt"

// Manager interns strings into dense, stable, positive ids. Ids are
// invariant across additions: once assigned, an id never changes or is
// reused for a different string within the lifetime of the table.
type Manager struct {
	byString map[string]int
	byID []string // index 0 unused, ids start at 1
	refs int
}

// NewManager returns a fresh, empty table with one reference held by
// the caller.
func NewManager() *Manager {
	return &Manager{
		byString: make(map[string]int),
		byID: []string{""},
		refs: 1,
	}
}

// Ref increments the table's reference count, returning the same
// manager so a second Ntk can share it: `ntk2.Names = names.Ref(ntk1.Names)`.
func Ref(m *Manager) *Manager {
	m.refs++
	return m
}

// Deref decrements the reference count. It is a programmer error to
// Deref a manager more times than it has been created or Ref'd; the
// core treats this the way treats over-release of a MIAIG
// handle — a bug, not a reported error.
func (m *Manager) Deref() {
	if m.refs <= 0 {
		panic("names: Deref of manager with zero references")
	}
	m.refs--
}

// Refs reports the current reference count.
func (m *Manager) Refs() int { return m.refs }

// Intern returns the id for s, creating one if s has not been seen
// before. Collisions of the Go map itself are handled by the runtime;
// this layer only guarantees id stability, not a custom hash — the
// teacher's name tables use the same trick of letting the underlying
// map absorb hash collisions rather than hand-rolling open addressing
// (open addressing is reserved for the GIA structural-hash table, which
// has a very different key shape — see internal/gia).
func (m *Manager) Intern(s string) int {
	if id, ok := m.byString[s]; ok {
		return id
	}
	id := len(m.byID)
	m.byID = append(m.byID, s)
	m.byString[s] = id
	return id
}

// Lookup returns the id for s and whether it is already interned,
// without creating a new entry.
func (m *Manager) Lookup(s string) (int, bool) {
	id, ok := m.byString[s]
	return id, ok
}

// String returns the interned string for id. It panics on an id outside
// [1, Size()] — an out-of-range id is always a caller bug, never data
// the core needs to report gracefully.
func (m *Manager) String(id int) string {
	if id <= 0 || id >= len(m.byID) {
		panic(fmt.Sprintf("names: id %d out of range [1,%d)", id, len(m.byID)))
	}
	return m.byID[id]
}

// Size returns the number of interned strings (not counting id 0).
func (m *Manager) Size() int { return len(m.byID) - 1 }
