package ntk

import "testing"

func buildSimpleAIG() *Ntk {
	n := New(TypeLogic, FuncAIG)
	a := n.NewPi("a")
	b := n.NewPi("b")
	c := n.NewPi("c")
	and1 := n.NewNode()
	n.AddFanin(and1.ID, a.ID, false)
	n.AddFanin(and1.ID, b.ID, false)
	and2 := n.NewNode()
	n.AddFanin(and2.ID, and1.ID, false)
	n.AddFanin(and2.ID, c.ID, true)
	n.NewPo("f", and2.ID)
	return n
}

func TestCheckPasses(t *testing.T) {
	n := buildSimpleAIG()
	r := n.Check()
	if !r.OK {
		t.Fatalf("expected integrity check to pass, got diagnostics: %v", r.Diagnostics)
	}
}

func TestReciprocityAfterAddRemove(t *testing.T) {
	n := buildSimpleAIG()
	node := n.NewNode()
	n.AddFanin(node.ID, n.Pis[0], false)
	if !containsInt(n.Objs[n.Pis[0]].Fanouts, node.ID) {
		t.Fatalf("expected reciprocal fanout after AddFanin")
	}
	n.RemoveFanin(node.ID, n.Pis[0])
	if containsInt(n.Objs[n.Pis[0]].Fanouts, node.ID) {
		t.Fatalf("expected fanout removed after RemoveFanin")
	}
	if containsInt(node.Fanins, n.Pis[0]) {
		t.Fatalf("expected fanin removed after RemoveFanin")
	}
}

func TestCheckCatchesMissingPOFanin(t *testing.T) {
	n := New(TypeLogic, FuncAIG)
	a := n.NewPi("a")
	po := n.alloc(KindPO)
	po.Name = "bad"
	n.Pos = append(n.Pos, po.ID)
	_ = a
	r := n.Check()
	if r.OK {
		t.Fatalf("expected check to fail for PO with no fanin")
	}
}

func TestDupPreservesStructure(t *testing.T) {
	n := buildSimpleAIG()
	d := n.Dup(TypeLogic, FuncAIG)
	if len(d.Pis) != len(n.Pis) || len(d.Pos) != len(n.Pos) {
		t.Fatalf("PI/PO counts mismatch after dup")
	}
	r := d.Check()
	if !r.OK {
		t.Fatalf("expected duplicate to pass integrity check, got %v", r.Diagnostics)
	}
	// Duplicate's PO fanin must be a node, with two fanins translated
	// through the copy map (same shape as source).
	dPo := d.Objs[d.Pos[0]]
	dDriver := d.Objs[dPo.Fanins[0]]
	if len(dDriver.Fanins) != 2 {
		t.Fatalf("expected driver with 2 fanins, got %d", len(dDriver.Fanins))
	}
}

func TestExtractConeKeepsOnlyReachedPIs(t *testing.T) {
	n := New(TypeLogic, FuncAIG)
	a := n.NewPi("a")
	b := n.NewPi("b")
	_ = n.NewPi("unused")
	and1 := n.NewNode()
	n.AddFanin(and1.ID, a.ID, false)
	n.AddFanin(and1.ID, b.ID, false)
	n.NewPo("f", and1.ID)

	cone := n.ExtractCone(0, false)
	if len(cone.Pis) != 2 {
		t.Fatalf("expected 2 reached PIs, got %d", len(cone.Pis))
	}
	r := cone.Check()
	if !r.OK {
		t.Fatalf("expected cone to pass integrity check: %v", r.Diagnostics)
	}
}

func TestAcyclicityCheckCatchesCycle(t *testing.T) {
	n := New(TypeLogic, FuncAIG)
	n1 := n.NewNode()
	n2 := n.NewNode()
	n.AddFanin(n1.ID, n2.ID, false)
	n.AddFanin(n2.ID, n1.ID, false)
	n.NewPo("f", n1.ID)
	r := n.Check()
	if r.OK {
		t.Fatalf("expected cyclic combinational network to fail check")
	}
}

func TestMixedFuncTagDupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on mismatched function-tag dup")
		}
	}()
	n := buildSimpleAIG()
	n.Dup(TypeLogic, FuncSOP)
}
