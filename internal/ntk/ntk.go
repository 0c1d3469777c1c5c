package ntk

import "abccore/internal/names"

// Ntk is the multi-level network container.
type Ntk struct {
	Type Type0
	Func FuncTag

	Objs    []*Obj
	Pis     []int
	Pos     []int
	Latches []int

	Names      *names.Manager
	netByName  map[int]int // interned name id -> net object id (netlist only)
	Library    *Library
	EXDC       *Ntk
	nextTravID int
}

// Type0 is an alias of TypeTag, the type of Ntk.Type.
type Type0 = TypeTag

// New creates an empty Ntk of the given type/function tag, owning a
// fresh name manager.
func New(t TypeTag, f FuncTag) *Ntk {
	n := &Ntk{
		Type: t,
		Func: f,
		Names: names.NewManager(),
		netByName: make(map[int]int),
	}
	return n
}

func (n *Ntk) alloc(kind Kind) *Obj {
	o := &Obj{ID: len(n.Objs), Kind: kind}
	n.Objs = append(n.Objs, o)
	return o
}

// NewPi appends a primary input. Per invariants, a PI has no
// fanins and no local function.
func (n *Ntk) NewPi(name string) *Obj {
	o := n.alloc(KindPI)
	o.Name = name
	n.Pis = append(n.Pis, o.ID)
	return o
}

// NewPo appends a primary output driven by fanin (a PO has exactly one
// fanin and no fanouts). The driving edge is non-complemented; for a
// FuncAIG network whose driver is complemented, use NewPoCompl.
func (n *Ntk) NewPo(name string, fanin int) *Obj {
	return n.NewPoCompl(name, fanin, false)
}

// NewPoCompl is NewPo with an explicit complement bit on the driving
// edge, meaningful only when the owning Ntk's Func tag is FuncAIG.
func (n *Ntk) NewPoCompl(name string, fanin int, compl bool) *Obj {
	o := n.alloc(KindPO)
	o.Name = name
	n.Pos = append(n.Pos, o.ID)
	n.AddFanin(o.ID, fanin, compl)
	return o
}

// NewNode appends an internal logic node with no fanins yet; callers
// add fanins via AddFanin and then set the local-function payload
// matching n.Func.
func (n *Ntk) NewNode() *Obj {
	return n.alloc(KindNode)
}

// NewLatch appends a latch with the given reset value and single
// combinational fanin.
func (n *Ntk) NewLatch(name string, fanin int, init LatchInit) *Obj {
	o := n.alloc(KindLatch)
	o.Name = name
	o.Init = init
	n.Latches = append(n.Latches, o.ID)
	n.AddFanin(o.ID, fanin, false)
	return o
}

// NewLatchUnwired appends a latch with no fanin yet, for callers (such
// as the GIA/MiniAIG/MIAIG adapters) that must allocate the latch's
// object id before its driver exists — a node defined later in a
// topological pass may need to reference this latch as a fanin before
// the latch's own driver is known. Callers must wire the fanin with
// AddFanin before running Check.
func (n *Ntk) NewLatchUnwired(name string, init LatchInit) *Obj {
	o := n.alloc(KindLatch)
	o.Name = name
	o.Init = init
	n.Latches = append(n.Latches, o.ID)
	return o
}

// NewNet appends a netlist wire object (netlist type only) and registers
// it in the name->net table; requires no two nets share a
// name.
func (n *Ntk) NewNet(name string) *Obj {
	o := n.alloc(KindNet)
	o.Name = name
	id := n.Names.Intern(name)
	n.netByName[id] = o.ID
	return o
}

// LookupNet finds a net by name (netlist only).
func (n *Ntk) LookupNet(name string) (*Obj, bool) {
	id, ok := n.Names.Lookup(name)
	if !ok {
		return nil, false
	}
	objID, ok := n.netByName[id]
	if !ok {
		return nil, false
	}
	return n.Objs[objID], true
}

// NewBox appends a hierarchy-instance object carrying only its
// instantiated model name. No flattening is implemented here; box
// objects are opaque instances, not expanded into their model's logic.
func (n *Ntk) NewBox(boxName string) *Obj {
	o := n.alloc(KindBox)
	o.BoxName = boxName
	return o
}

// Obj returns the object with id.
func (n *Ntk) Obj(id int) *Obj { return n.Objs[id] }

// NumCIs returns the combinational-input count: PIs plus latches.
func (n *Ntk) NumCIs() int { return len(n.Pis) + len(n.Latches) }

// NewTravID returns a fresh traversal id; objects are "visited" by
// setting their travID field to this value, giving O(1) amortized
// membership tests without clearing any array.
func (n *Ntk) NewTravID() int {
	n.nextTravID++
	return n.nextTravID
}

func (o *Obj) Visit(trav int) { o.travID = trav }
func (o *Obj) IsVisited(trav int) bool { return o.travID == trav }
