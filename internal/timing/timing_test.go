package timing

import (
	"testing"

	"abccore/internal/ntk"
)

// buildChain builds PI1 -> N1 -> N2 -> N3 -> PO1 plus a second, slack-2
// branch PI2 -> M1 -> PO2.
func buildChain(t *testing.T) (*ntk.Ntk, *Model) {
	t.Helper()
	n := ntk.New(ntk.TypeLogic, ntk.FuncMapped)
	pi1 := n.NewPi("pi1")
	pi2 := n.NewPi("pi2")

	n1 := n.NewNode()
	n.AddFanin(n1.ID, pi1.ID, false)
	n2 := n.NewNode()
	n.AddFanin(n2.ID, n1.ID, false)
	n3 := n.NewNode()
	n.AddFanin(n3.ID, n2.ID, false)
	n.NewPo("po1", n3.ID)

	m1 := n.NewNode()
	n.AddFanin(m1.ID, pi2.ID, false)
	n.NewPo("po2", m1.ID)

	model := New(n)
	unitPin := []PinTiming{{Delay: RiseFall{Rise: 1, Fall: 1}, Phase: NonInverting}}
	model.SetPinTiming(n1.ID, unitPin)
	model.SetPinTiming(n2.ID, unitPin)
	model.SetPinTiming(n3.ID, unitPin)
	// m1 has slack: only one unit of delay, so its arrival (1) is well
	// below the critical path's arrival (3).
	model.SetPinTiming(m1.ID, unitPin)

	model.Propagate(Constraints{})
	return n, model
}

func TestArrivalMonotonicity(t *testing.T) {
	n, m := buildChain(t)
	for _, id := range n.TopoOrder() {
		o := n.Obj(id)
		for i, fi := range o.Fanins {
			pin := m.PinDelay[id][i]
			want := m.Arrival[fi].Rise + pin.Delay.Rise
			if m.Arrival[id].Rise < want-1e-9 {
				t.Fatalf("arrival monotonicity violated at %d", id)
			}
		}
	}
}

func TestCriticalPathWindowZeroKeepsOnlyZeroSlackChain(t *testing.T) {
	n, m := buildChain(t)
	path := m.CriticalPath(0)
	want := map[int]bool{
		n.Pis[0]: true,
		n.Pos[0]: true,
	}
	// n1,n2,n3 are the three internal nodes added before m1/po2.
	for _, id := range n.TopoOrder()[:3] {
		want[id] = true
	}
	if len(path) != len(want) {
		t.Fatalf("expected %d objects on critical path, got %d (%v)", len(want), len(path), path)
	}
	for _, id := range path {
		if !want[id] {
			t.Fatalf("unexpected object %d on critical path", id)
		}
	}
	// Reverse topological order: PO first, PI last.
	if path[0] != n.Pos[0] {
		t.Fatalf("expected PO first in reverse-topological report, got %d", path[0])
	}
	if path[len(path)-1] != n.Pis[0] {
		t.Fatalf("expected PI last in reverse-topological report, got %d", path[len(path)-1])
	}
}

func TestWorstOutputs(t *testing.T) {
	n, m := buildChain(t)
	worst := m.WorstOutputs(1)
	if worst[0] != n.Pos[0] {
		t.Fatalf("expected po1 (deepest chain) to be the single worst output, got %d", worst[0])
	}
}
