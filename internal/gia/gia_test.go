package gia

import "testing"

func TestHashIdempotence(t *testing.T) {
	g := New()
	a := g.AppendPi("a")
	b := g.AppendPi("b")
	l1 := g.AppendAnd(a, b)
	before := g.NumObjs()
	l2 := g.AppendAnd(a, b)
	if l1 != l2 {
		t.Fatalf("expected identical literal for repeated AND, got %v and %v", l1, l2)
	}
	if g.NumObjs() != before {
		t.Fatalf("table grew on repeated construction: before=%d after=%d", before, g.NumObjs())
	}
}

func TestConstantPropagation(t *testing.T) {
	g := New()
	a := g.AppendPi("a")
	if got := g.AppendAnd(a, LitFalse); got != LitFalse {
		t.Fatalf("lit & 0 should be 0, got %v", got)
	}
	if got := g.AppendAnd(a, LitTrue); got != a {
		t.Fatalf("lit & 1 should be lit, got %v want %v", got, a)
	}
	if got := g.AppendAnd(a, a); got != a {
		t.Fatalf("lit & lit should be lit")
	}
	if got := g.AppendAnd(a, a.Not()); got != LitFalse {
		t.Fatalf("lit & ~lit should be 0")
	}
}

func TestAndSelfComplementCleansToConstantFalse(t *testing.T) {
	g := New()
	a := g.AppendPi("a")
	and := g.AppendAnd(a, a.Not())
	g.AppendPo(and, "f")
	g.Cleanup()
	if g.PoDriver(0) != LitFalse {
		t.Fatalf("expected PO to reduce to constant-false, got %v", g.PoDriver(0))
	}
}

func TestDupPreservesFunction(t *testing.T) {
	g := New()
	a := g.AppendPi("a")
	b := g.AppendPi("b")
	and := g.AppendAnd(a, b)
	g.AppendPo(and, "f")
	dup := g.Dup(false)
	orig := g.TruthTables()
	dupT := dup.TruthTables()
	if len(orig) != len(dupT) {
		t.Fatalf("output count mismatch")
	}
	for i := range orig {
		for w := range orig[i].Words {
			if orig[i].Words[w] != dupT[i].Words[w] {
				t.Fatalf("duplicate differs functionally at output %d", i)
			}
		}
	}
}

func TestLevels(t *testing.T) {
	g := New()
	a := g.AppendPi("a")
	b := g.AppendPi("b")
	c := g.AppendPi("c")
	n1 := g.AppendAnd(a, b)
	n2 := g.AppendAnd(n1, c)
	g.AppendPo(n2, "f")
	levels := g.Levels()
	if levels[n1.Var()] != 1 {
		t.Fatalf("expected level 1 for n1, got %d", levels[n1.Var()])
	}
	if levels[n2.Var()] != 2 {
		t.Fatalf("expected level 2 for n2, got %d", levels[n2.Var()])
	}
}
