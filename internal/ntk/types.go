// Package ntk implements a multi-level network substrate: a typed
// object graph with PI/PO/node/latch/net/box objects, arena-style id
// addressing, integrity checking, duplication and single-output cone
// extraction.
package ntk

// TypeTag classifies the network's overall representation.
type TypeTag byte

const (
	TypeNetlist TypeTag = iota
	TypeStrashed
	TypeLogic
	TypeSequential
)

func (t TypeTag) String() string {
	switch t {
	case TypeNetlist:
		return "netlist"
	case TypeStrashed:
		return "strashed"
	case TypeLogic:
		return "logic"
	case TypeSequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// FuncTag classifies how an internal node's local function is encoded.
type FuncTag byte

const (
	FuncNone FuncTag = iota
	FuncSOP
	FuncBDD
	FuncAIG
	FuncMapped
)

func (f FuncTag) String() string {
	switch f {
	case FuncNone:
		return "none"
	case FuncSOP:
		return "sop"
	case FuncBDD:
		return "bdd"
	case FuncAIG:
		return "aig"
	case FuncMapped:
		return "mapped"
	default:
		return "unknown"
	}
}

// Kind classifies an object within the graph.
type Kind byte

const (
	KindPI Kind = iota
	KindPO
	KindNode
	KindLatch
	KindNet
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindPI:
		return "pi"
	case KindPO:
		return "po"
	case KindNode:
		return "node"
	case KindLatch:
		return "latch"
	case KindNet:
		return "net"
	case KindBox:
		return "box"
	default:
		return "unknown"
	}
}

// LatchInit is a latch's initial value, using the {0, 1, don't-care}
// interpretation regardless of which legacy numeric aliasing a given
// source format used.
type LatchInit byte

const (
	InitZero LatchInit = iota
	InitOne
	InitDontCare
)

// Obj is one network object, arena-addressed by Ntk-local integer id.
type Obj struct {
	ID      int
	Kind    Kind
	Fanins  []int
	Compls  []bool // parallel to Fanins; only meaningful when Func==FuncAIG
	Fanouts []int
	Level   int
	MarkA   bool
	MarkB   bool
	MarkC   bool
	Name    string // PI/PO/latch/net

	// Local function payload; interpretation depends on the owning
	// Ntk's Func tag.
	SOP      string // FuncSOP: cube string
	BDDNode  int    // FuncBDD: index into the owning Ntk's BDD manager
	GateName string // FuncMapped: gate name in the active library

	Init    LatchInit // KindLatch only
	BoxName string    // KindBox only: instantiated model name

	travID int // last traversal id this object was visited at
}

// Library is the minimal gate-library bookkeeping a "mapped" Ntk
// checks itself against. Loading a genlib file is an external
// collaborator concern; this is only the in-core lookup
// surface a mapped Ntk's integrity check and timing model consult.
type Library struct {
	Name string
	Gates map[string]int // gate name -> input arity
}

// NewLibrary returns an empty named library.
func NewLibrary(name string) *Library {
	return &Library{Name: name, Gates: make(map[string]int)}
}

// AddGate registers a gate name with its input arity.
func (l *Library) AddGate(name string, arity int) { l.Gates[name] = arity }

// Has reports whether the library contains gate name with the given
// fanin count.
func (l *Library) Has(name string, arity int) bool {
	a, ok := l.Gates[name]
	return ok && a == arity
}
