package miaig

import (
	"testing"

	"abccore/internal/gia"
	"abccore/internal/truth"
)

func lit(v int, compl bool) Lit { return gia.MakeLit(v, compl) }

func TestReduceOneCollapsesRedundantFaninToBuffer(t *testing.T) {
	m := New(2, 1)
	x1 := lit(1, false)

	// A = buffer(x1); B = AND(x1, A) == x1, so B should reduce to a
	// single fanin.
	a := m.AppendNode([]Lit{x1})
	b := m.AppendNode([]Lit{x1, a})
	m.SetOutput(0, b)

	if changed := m.ReduceOne(b.Var()); !changed {
		t.Fatalf("expected ReduceOne to collapse the redundant fanin")
	}
	fanins := m.Fanins(b.Var())
	if len(fanins) != 1 {
		t.Fatalf("expected single fanin after reduction, got %v", fanins)
	}

	cache := m.Simulate()
	want := truth.Elementary(2, 0)
	if !truth.Equal(cache[b.Var()], want) {
		t.Fatalf("function changed across reduction")
	}
}

func TestReduceOneDropsFaninNotNeededInCombination(t *testing.T) {
	m := New(3, 1)
	x1 := lit(1, false)
	x2 := lit(2, false)
	x3 := lit(3, false)

	// innerA = AND(x1, x3); e = AND(x1, x2, innerA) == AND(x1, x2, x3),
	// and x1 is redundant once x2 and innerA are both present.
	innerA := m.AppendNode([]Lit{x1, x3})
	e := m.AppendNode([]Lit{x1, x2, innerA})
	m.SetOutput(0, e)

	before := m.Simulate()[e.Var()]

	if changed := m.ReduceOne(e.Var()); !changed {
		t.Fatalf("expected a redundant fanin to be dropped")
	}
	if got := len(m.Fanins(e.Var())); got != 2 {
		t.Fatalf("expected 2 remaining fanins, got %d: %v", got, m.Fanins(e.Var()))
	}

	after := m.Simulate()[e.Var()]
	if !truth.Equal(before, after) {
		t.Fatalf("function changed by dropping a redundant fanin")
	}
}

func TestReduceOneUnderExclusionDropsFaninOutsideCareSet(t *testing.T) {
	m := New(2, 1)
	x1 := lit(1, false)
	x2 := lit(2, false)

	c := m.AppendNode([]Lit{x1, x2}) // AND(x1, x2)
	m.SetOutput(0, c)
	// Only x1=1 rows are cared about; on that restriction AND(x1,x2)
	// reduces to x2 alone, making x1 redundant.
	m.SetExclusion(0, truth.Elementary(2, 0))

	if changed := m.ReduceOne(c.Var()); !changed {
		t.Fatalf("expected reduction under the exclusion care set")
	}
	fanins := m.Fanins(c.Var())
	if len(fanins) != 1 || fanins[0].Var() != x2.Var() {
		t.Fatalf("expected collapse to the x2 fanin alone, got %v", fanins)
	}
}

func TestReduceOneWithoutExclusionCannotDropEitherFanin(t *testing.T) {
	m := New(2, 1)
	x1 := lit(1, false)
	x2 := lit(2, false)
	c := m.AppendNode([]Lit{x1, x2})
	m.SetOutput(0, c)

	if changed := m.ReduceOne(c.Var()); changed {
		t.Fatalf("AND(x1,x2) has no redundant fanin without a care-set restriction")
	}
}

func TestExpandOneInsertsOnlyBehaviorPreservingFanin(t *testing.T) {
	m := New(2, 1)
	x1 := lit(1, false)
	x2 := lit(2, false)
	n := m.AppendNode([]Lit{x1}) // buffer(x1)
	m.SetOutput(0, n)

	before := m.Simulate()[n.Var()]
	m.ExpandOne(n.Var(), 0)
	after := m.Simulate()[n.Var()]
	if !truth.Equal(before, after) {
		t.Fatalf("expand-one must not change the pivot's observable function")
	}
	_ = x2
}

func TestShareFactorsRecurringPairIntoOneNode(t *testing.T) {
	m := New(3, 2)
	x1 := lit(1, false)
	x2 := lit(2, false)
	x3 := lit(3, false)

	n1 := m.AppendNode([]Lit{x1, x2, x3}) // contains (x1,x2) adjacent pair
	n2 := m.AppendNode([]Lit{x1, x2})     // exact recurrence of (x1,x2)
	m.SetOutput(0, n1)
	m.SetOutput(1, n2)

	before0 := m.Simulate()[n1.Var()]
	before1 := m.Simulate()[n2.Var()]

	shared := m.Share(0)
	if shared == 0 {
		t.Fatalf("expected at least one shared pair to be factored")
	}

	after0 := m.Simulate()[m.Output(0).Var()]
	after1 := m.Simulate()[m.Output(1).Var()]
	if !truth.Equal(before0, after0) || !truth.Equal(before1, after1) {
		t.Fatalf("sharing changed output functions")
	}
}

func TestRewirePreservesFunctionOnCareSet(t *testing.T) {
	m := New(3, 1)
	x1 := lit(1, false)
	x2 := lit(2, false)
	x3 := lit(3, false)

	a := m.AppendNode([]Lit{x1, x3})
	e := m.AppendNode([]Lit{x1, x2, a})
	m.SetOutput(0, e)

	before := m.Simulate()[m.Output(0).Var()]
	m.Rewire(Params{MaxIterations: 3})
	after := m.Simulate()[m.Output(0).Var()]

	if !truth.Equal(before, after) {
		t.Fatalf("rewiring changed the network's function")
	}
}

func TestDupIsIndependentCopy(t *testing.T) {
	m := New(1, 1)
	x1 := lit(1, false)
	n := m.AppendNode([]Lit{x1})
	m.SetOutput(0, n)

	d := m.Dup()
	d.ReduceOne(n.Var()) // no-op here, but must not touch m's storage
	if len(m.Fanins(n.Var())) != 1 {
		t.Fatalf("duplicate mutation leaked into original")
	}
	if Equal(m, d) {
		t.Fatalf("Dup must produce a distinct data block from Clone")
	}
}

func TestCloneSharesDataBlock(t *testing.T) {
	m := New(1, 1)
	c := m.Clone()
	if !Equal(m, c) {
		t.Fatalf("Clone must share the same data block")
	}
	if m.Refs() != 2 {
		t.Fatalf("expected refs == 2 after Clone, got %d", m.Refs())
	}
	c.Drop()
	if m.Refs() != 1 {
		t.Fatalf("expected refs == 1 after Drop, got %d", m.Refs())
	}
}

func buildRewireCandidate() *MIAIG {
	m := New(4, 1)
	x1 := lit(1, false)
	x2 := lit(2, false)
	x3 := lit(3, false)
	x4 := lit(4, false)

	a := m.AppendNode([]Lit{x1, x2})
	b := m.AppendNode([]Lit{x3, x4})
	c := m.AppendNode([]Lit{a, b, x1})
	m.SetOutput(0, c)
	return m
}

func TestRewireWithPoolsPreservesFunction(t *testing.T) {
	m := buildRewireCandidate()
	before := m.Simulate()[m.Output(0).Var()]

	m.Rewire(Params{
		MaxIterations: 25,
		Seed:          1,
		RootPoolSize:  4,
		BestPoolSize:  4,
		RestartStreak: 6,
		FaninGrowth:   4,
	})

	after := m.Simulate()[m.Output(0).Var()]
	if !truth.Equal(before, after) {
		t.Fatalf("stochastic rewiring changed the network's function")
	}
}

func TestRewireIsDeterministicGivenSameSeed(t *testing.T) {
	p := Params{MaxIterations: 20, Seed: 42, RootPoolSize: 3, BestPoolSize: 3, RestartStreak: 5}

	m1 := buildRewireCandidate()
	m1.Rewire(p)
	cost1 := m1.And2Count()

	m2 := buildRewireCandidate()
	m2.Rewire(p)
	cost2 := m2.And2Count()

	if cost1 != cost2 {
		t.Fatalf("same seed produced different costs: %d vs %d", cost1, cost2)
	}
}

func TestRewireKeepAllChoicesSurfacesPool(t *testing.T) {
	m := buildRewireCandidate()
	m.Rewire(Params{
		MaxIterations:  15,
		Seed:           7,
		RootPoolSize:   3,
		BestPoolSize:   3,
		RestartStreak:  4,
		KeepAllChoices: true,
	})
	if len(m.Choices()) == 0 {
		t.Fatalf("expected KeepAllChoices to surface at least the initial snapshot")
	}
}

func TestRunIDProducesDistinctValues(t *testing.T) {
	a := RunID()
	b := RunID()
	if a == b {
		t.Fatalf("expected distinct RunIDs, got %q twice", a)
	}
}
