package ntk

import "fmt"

// Report is the result of Check: a diagnostic list and overall verdict.
// Checks return failed-with-diagnostic, not exceptions.
type Report struct {
	Diagnostics []string
	OK          bool
}

func (r *Report) fail(format string, args ...interface{}) {
	r.Diagnostics = append(r.Diagnostics, fmt.Sprintf(format, args...))
	r.OK = false
}

// Check runs the full integrity-check sequence, in order.
func (n *Ntk) Check() *Report {
	r := &Report{OK: true}

	n.checkLibrary(r)
	n.checkNameTable(r)
	n.checkRosters(r)
	n.checkObjIdentity(r)
	n.checkReciprocity(r)
	n.checkNetUniqueness(r)
	n.checkFunctionPayloads(r)
	n.checkLatchInit(r)
	n.checkAcyclic(r)

	return r
}

func (n *Ntk) checkLibrary(r *Report) {
	if n.Func != FuncMapped {
		return
	}
	if n.Library == nil {
		r.fail("mapped network has no active gate library")
		return
	}
	for _, o := range n.Objs {
		if o.Kind != KindNode {
			continue
		}
		if !n.Library.Has(o.GateName, len(o.Fanins)) {
			r.fail("object %d: gate %q not found in active library at arity %d", o.ID, o.GateName, len(o.Fanins))
		}
	}
}

func (n *Ntk) checkNameTable(r *Report) {
	for _, o := range n.Objs {
		if o.Kind != KindNet {
			continue
		}
		id, ok := n.Names.Lookup(o.Name)
		if !ok {
			r.fail("net object %d (%q) missing from name table", o.ID, o.Name)
			continue
		}
		if n.netByName[id] != o.ID {
			r.fail("net object %d (%q) not reachable via name table", o.ID, o.Name)
		}
	}
	for _, id := range append(append([]int{}, n.Pis...), append(n.Pos, n.Latches...)...) {
		o := n.Objs[id]
		if o.Name == "" {
			r.fail("object %d (%s) carries no name", o.ID, o.Kind)
		}
	}
}

func (n *Ntk) checkRosters(r *Report) {
	if n.NumCIs() != len(n.Pis)+len(n.Latches) {
		r.fail("CI count %d does not equal PI+latch count %d", n.NumCIs(), len(n.Pis)+len(n.Latches))
	}
	for _, id := range n.Pis {
		o := n.Objs[id]
		if o.Kind != KindPI {
			r.fail("object %d in PI roster has kind %s", id, o.Kind)
		}
		if len(o.Fanins) != 0 {
			r.fail("PI %d has fanins", id)
		}
	}
	for _, id := range n.Pos {
		o := n.Objs[id]
		if o.Kind != KindPO {
			r.fail("object %d in PO roster has kind %s", id, o.Kind)
		}
		if len(o.Fanins) != 1 {
			r.fail("PO %d does not have exactly one fanin", id)
		}
		if len(o.Fanouts) != 0 {
			r.fail("PO %d has fanouts", id)
		}
	}
	for _, id := range n.Latches {
		o := n.Objs[id]
		if o.Kind != KindLatch {
			r.fail("object %d in latch roster has kind %s", id, o.Kind)
		}
		if len(o.Fanins) != 1 {
			r.fail("latch %d does not have exactly one combinational fanin", id)
		}
	}
	if n.Type == TypeNetlist {
		hasNet := false
		for _, o := range n.Objs {
			if o.Kind == KindNet {
				hasNet = true
				break
			}
		}
		if !hasNet {
			r.fail("netlist must have at least one net")
		}
	} else {
		for _, o := range n.Objs {
			if o.Kind == KindNet {
				r.fail("non-netlist network contains net object %d", o.ID)
			}
		}
	}
}

func (n *Ntk) checkObjIdentity(r *Report) {
	for i, o := range n.Objs {
		if o.ID != i {
			r.fail("object at slot %d carries id %d", i, o.ID)
		}
	}
}

func (n *Ntk) checkReciprocity(r *Report) {
	for _, o := range n.Objs {
		for _, fi := range o.Fanins {
			if !containsInt(n.Objs[fi].Fanouts, o.ID) {
				r.fail("object %d has fanin %d but %d has no reciprocal fanout", o.ID, fi, fi)
			}
		}
		for _, fo := range o.Fanouts {
			if !containsInt(n.Objs[fo].Fanins, o.ID) {
				r.fail("object %d has fanout %d but %d has no reciprocal fanin", o.ID, fo, fo)
			}
		}
	}
}

func containsInt(s []int, x int) bool {
	for _, v := range s {
		if v == x {
			return true
		}
	}
	return false
}

func (n *Ntk) checkNetUniqueness(r *Report) {
	seen := make(map[string]int)
	for _, o := range n.Objs {
		if o.Kind != KindNet {
			continue
		}
		if prev, ok := seen[o.Name]; ok {
			r.fail("duplicate net name %q on objects %d and %d", o.Name, prev, o.ID)
			continue
		}
		seen[o.Name] = o.ID
	}
}

func (n *Ntk) checkFunctionPayloads(r *Report) {
	for _, o := range n.Objs {
		if o.Kind != KindNode {
			continue
		}
		switch n.Func {
		case FuncSOP:
			lits := sopLiteralCount(o.SOP)
			if lits != len(o.Fanins) {
				r.fail("node %d: SOP literal count %d != fanin count %d", o.ID, lits, len(o.Fanins))
			}
		case FuncBDD:
			// Support size must not exceed fanin count; the BDD payload
			// here is a manager index, so this check is delegated to
			// whatever BDD manager the caller attaches (out of the core's
			// in-memory scope beyond the index itself).
		case FuncMapped:
			if o.GateName == "" {
				r.fail("node %d: mapped network node has no gate assigned", o.ID)
			}
		}
	}
}

// sopLiteralCount counts the number of input-variable positions implied
// by an SOP cube string of the classic "10-1 1-0" cube-per-line form:
// each cube's width (ignoring the trailing output-polarity column)
// determines the literal count, taken from the first cube.
func sopLiteralCount(sop string) int {
	width := 0
	for _, ch := range sop {
		if ch == ' ' || ch == '\n' {
			break
		}
		width++
	}
	return width
}

func (n *Ntk) checkLatchInit(r *Report) {
	for _, id := range n.Latches {
		o := n.Objs[id]
		if o.Init != InitZero && o.Init != InitOne && o.Init != InitDontCare {
			r.fail("latch %d has invalid init value %d", id, o.Init)
		}
	}
}

func (n *Ntk) checkAcyclic(r *Report) {
	if n.Type == TypeSequential {
		return
	}
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]byte, len(n.Objs))
	var cyclic bool
	var visit func(id int)
	visit = func(id int) {
		if cyclic || color[id] == black {
			return
		}
		if color[id] == gray {
			cyclic = true
			return
		}
		color[id] = gray
		for _, fi := range n.Objs[id].Fanins {
			visit(fi)
			if cyclic {
				return
			}
		}
		color[id] = black
	}
	for _, id := range n.Pos {
		visit(id)
		if cyclic {
			break
		}
	}
	if cyclic {
		r.fail("network is not acyclic but is not declared sequential")
	}
}
