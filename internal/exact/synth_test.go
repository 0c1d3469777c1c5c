package exact

import (
	"testing"

	"abccore/internal/satwrap"
	"abccore/internal/truth"
)

func majority3() *truth.Table {
	a := truth.Elementary(3, 0)
	b := truth.Elementary(3, 1)
	c := truth.Elementary(3, 2)
	return truth.Or(truth.Or(truth.And(a, b), truth.And(a, c)), truth.And(b, c))
}

func parity3() *truth.Table {
	a := truth.Elementary(3, 0)
	b := truth.Elementary(3, 1)
	c := truth.Elementary(3, 2)
	return truth.Xor(truth.Xor(a, b), c)
}

func TestMajorityThreeSynthesizesWithinFourGates(t *testing.T) {
	target := majority3()
	circuit, ok := Synthesize(target, nil, 3, 4, satwrap.NewBulk())
	if !ok {
		t.Fatalf("expected a 4-gate majority circuit to exist")
	}
	for m := 0; m < 8; m++ {
		if circuit.Simulate(m) != target.Bit(m) {
			t.Fatalf("synthesized circuit disagrees with target at minterm %d", m)
		}
	}
}

func TestParityThreeUnsatisfiableWithTwoGates(t *testing.T) {
	target := parity3()
	if _, ok := Synthesize(target, nil, 3, 2, satwrap.NewBulk()); ok {
		t.Fatalf("3-input parity needs more than 2 AND gates, expected UNSAT")
	}
}

func TestParityThreeSynthesizesWithSixGates(t *testing.T) {
	target := parity3()
	circuit, ok := Synthesize(target, nil, 3, 6, satwrap.NewBulk())
	if !ok {
		t.Fatalf("expected a 6-gate parity circuit to exist")
	}
	for m := 0; m < 8; m++ {
		if circuit.Simulate(m) != target.Bit(m) {
			t.Fatalf("synthesized circuit disagrees with target at minterm %d", m)
		}
	}
}

func TestSynthesizeMinimalFindsSmallestBudget(t *testing.T) {
	target := majority3()
	circuit, ok := SynthesizeMinimal(target, nil, 3, 6, func() satwrap.Solver { return satwrap.NewBulk() })
	if !ok {
		t.Fatalf("expected majority-3 to be synthesizable within 6 gates")
	}
	if len(circuit.Gates) > 4 {
		t.Fatalf("expected minimal search to find a circuit with at most 4 gates, got %d", len(circuit.Gates))
	}
}

func TestSynthesizeRespectsCareSet(t *testing.T) {
	// On a 2-input domain, AND(x1,x2) and x1 agree whenever x1=0 (both
	// 0), and only disagree when x1=1,x2=0. Restricting care to exclude
	// that single minterm makes "just x1" (0 gates) a valid circuit.
	x1 := truth.Elementary(2, 0)
	x2 := truth.Elementary(2, 1)
	target := truth.And(x1, x2)
	care := truth.Not(truth.And(x1, truth.Not(x2)))

	circuit, ok := Synthesize(target, care, 2, 0, satwrap.NewBulk())
	if !ok {
		t.Fatalf("expected a 0-gate circuit once the disagreeing minterm is excluded from care")
	}
	for m := 0; m < 4; m++ {
		if !care.Bit(m) {
			continue
		}
		if circuit.Simulate(m) != target.Bit(m) {
			t.Fatalf("circuit disagrees with target on a cared-about minterm %d", m)
		}
	}
}

func TestSymmetricTableBuildsMajority(t *testing.T) {
	got := SymmetricTable(3, []int{2, 3})
	want := majority3()
	if !truth.Equal(got, want) {
		t.Fatalf("SymmetricTable(3, {2,3}) did not match the majority-3 table")
	}
}

func TestSynthesizeLUTFindsOneNodeMajorityWithK3(t *testing.T) {
	target := majority3()
	circuit, ok := SynthesizeLUT(target, nil, 3, 3, 1, satwrap.NewBulk())
	if !ok {
		t.Fatalf("expected a single 3-LUT to realize majority-3 directly")
	}
	for m := 0; m < 8; m++ {
		if circuit.Simulate(m) != target.Bit(m) {
			t.Fatalf("synthesized LUT circuit disagrees with target at minterm %d", m)
		}
	}
}

func TestSynthesizeLUTUnsatWithZeroBudget(t *testing.T) {
	target := parity3()
	if _, ok := SynthesizeLUT(target, nil, 3, 2, 0, satwrap.NewBulk()); ok {
		t.Fatalf("expected 3-input parity to be unrealizable with zero gates")
	}
}

func TestSynthesizeLUTMinimalRespectsLowerBound(t *testing.T) {
	target := majority3()
	circuit, ok := SynthesizeLUTMinimal(target, nil, 3, 2, 4, func() satwrap.Solver { return satwrap.NewBulk() })
	if !ok {
		t.Fatalf("expected majority-3 to be synthesizable with K=2 LUTs within 4 gates")
	}
	for m := 0; m < 8; m++ {
		if circuit.Simulate(m) != target.Bit(m) {
			t.Fatalf("synthesized LUT circuit disagrees with target at minterm %d", m)
		}
	}
}
