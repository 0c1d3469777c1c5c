package truth

import "testing"

func TestElementaryAndMajority(t *testing.T) {
	// 3-input majority function: T = hex E8.
	a := Elementary(3, 0)
	b := Elementary(3, 1)
	c := Elementary(3, 2)
	maj := Or(Or(And(a, b), And(a, c)), And(b, c))
	if maj.Words[0]&0xFF != 0xE8 {
		t.Fatalf("expected majority truth table 0xE8, got %#x", maj.Words[0]&0xFF)
	}
}

func TestParity3(t *testing.T) {
	a := Elementary(3, 0)
	b := Elementary(3, 1)
	c := Elementary(3, 2)
	par := Xor(Xor(a, b), c)
	if par.Words[0]&0xFF != 0x96 {
		t.Fatalf("expected parity truth table 0x96, got %#x", par.Words[0]&0xFF)
	}
}

func TestNotAndConst(t *testing.T) {
	a := Elementary(2, 0)
	na := Not(a)
	if !Equal(And(a, na), Const(2, false)) {
		t.Fatalf("a AND NOT(a) must be constant 0")
	}
	if !Equal(Or(a, na), Const(2, true)) {
		t.Fatalf("a OR NOT(a) must be constant 1")
	}
}

func TestCofactorLowVar(t *testing.T) {
	a := Elementary(2, 0)
	b := Elementary(2, 1)
	f := And(a, b) // a AND b
	// Cofactor on var 0 (a): f|a=0 is const 0, f|a=1 equals b.
	if !f.Cofactor0(0).IsConst0() {
		t.Fatalf("expected cofactor0 of a AND b w.r.t. a to be constant 0")
	}
	if !Equal(f.Cofactor1(0), b) {
		t.Fatalf("expected cofactor1 of a AND b w.r.t. a to equal b")
	}
}

func TestCofactorHighVar(t *testing.T) {
	n := 7
	v6 := Elementary(n, 6)
	a := Elementary(n, 0)
	f := And(a, v6)
	if !f.Cofactor0(6).IsConst0() {
		t.Fatalf("expected cofactor0 w.r.t. high var to be constant 0")
	}
	if !Equal(f.Cofactor1(6), a) {
		t.Fatalf("expected cofactor1 w.r.t. high var to equal a")
	}
}

func TestSupport(t *testing.T) {
	a := Elementary(3, 0)
	c := Elementary(3, 2)
	f := And(a, c) // depends on vars 0 and 2, not 1
	sup := f.Support()
	if len(sup) != 2 || sup[0] != 0 || sup[1] != 2 {
		t.Fatalf("unexpected support: %v", sup)
	}
}

func TestEqualOnCareAndFirstDiffer(t *testing.T) {
	a := Elementary(2, 0)
	b := Const(2, false)
	care := New(2)
	care.SetBit(0, true)
	care.SetBit(2, true)
	// a = 0,1,0,1 over minterms 0..3; b = 0,0,0,0.
	// On minterms {0,2} (care), a is 0, matches b -> equal on care.
	if !EqualOnCare(a, b, care) {
		t.Fatalf("expected equal on restricted care set")
	}
	if Equal(a, b) {
		t.Fatalf("a and b should differ without restriction")
	}
	idx := FirstDifferingBit(a, b)
	if idx != 1 {
		t.Fatalf("expected first differing minterm 1, got %d", idx)
	}
}

func TestIntersectEmpty(t *testing.T) {
	a := Elementary(2, 0)
	na := Not(a)
	if !IntersectEmpty(a, a, true) {
		t.Fatalf("a AND NOT(a) should be empty")
	}
	if !IntersectEmpty(a, na, false) {
		t.Fatalf("a AND NOT(a) (direct) should be empty too")
	}
}

func TestCompareTotalOrder(t *testing.T) {
	z := Const(2, false)
	o := Const(2, true)
	if Compare(z, o) >= 0 {
		t.Fatalf("expected const0 < const1")
	}
	if Compare(z, z) != 0 {
		t.Fatalf("expected equal tables to compare 0")
	}
}

func TestHashIsStableAndDistinguishesTables(t *testing.T) {
	a := Elementary(3, 0)
	b := a.Clone()
	if a.Hash() != b.Hash() {
		t.Fatalf("expected equal tables to hash identically")
	}

	c := Elementary(3, 1)
	if a.Hash() == c.Hash() {
		t.Fatalf("expected distinct tables to hash differently")
	}

	var nilTable *Table
	if nilTable.Hash() == a.Hash() {
		t.Fatalf("expected the nil sentinel hash to differ from a real table's hash")
	}
}
