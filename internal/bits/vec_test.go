package bits

import "testing"

func TestIntVecPushRemove(t *testing.T) {
	v := NewIntVec(0)
	v.Push(3)
	v.Push(1)
	v.Push(2)
	if v.Len() != 3 {
		t.Fatalf("expected len 3, got %d", v.Len())
	}
	if !v.Remove(1) {
		t.Fatalf("expected remove to find 1")
	}
	if v.Contains(1) {
		t.Fatalf("1 should have been removed")
	}
	if v.Len() != 2 {
		t.Fatalf("expected len 2 after remove, got %d", v.Len())
	}
}

func TestIntVecSort(t *testing.T) {
	v := NewIntVec(0)
	for _, x := range []int{5, 3, 4, 1, 2} {
		v.Push(x)
	}
	v.Sort()
	want := []int{1, 2, 3, 4, 5}
	for i, w := range want {
		if v.At(i) != w {
			t.Fatalf("at %d: got %d want %d", i, v.At(i), w)
		}
	}
}

func TestBitset(t *testing.T) {
	b := NewBitset(130)
	b.Set(0)
	b.Set(63)
	b.Set(64)
	b.Set(129)
	for _, i := range []int{0, 63, 64, 129} {
		if !b.Has(i) {
			t.Fatalf("expected bit %d set", i)
		}
	}
	if b.Has(1) || b.Has(128) {
		t.Fatalf("unexpected bit set")
	}
	b.Clear(63)
	if b.Has(63) {
		t.Fatalf("expected bit 63 cleared")
	}
	b.Reset()
	if b.Has(0) || b.Has(129) {
		t.Fatalf("expected all bits cleared after reset")
	}
}

func TestSetDiff(t *testing.T) {
	a := []int{1, 2, 3, 4, 5}
	b := []int{2, 4}
	got := SetDiff(a, b)
	want := []int{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}
