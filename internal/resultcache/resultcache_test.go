package resultcache

import (
	"path/filepath"
	"testing"
)

func openTempCache(t *testing.T) *Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestStoreThenLookupRoundTrips(t *testing.T) {
	c := openTempCache(t)

	result := SynthResult{Found: true, Circuit: `{"gates":[]}`}
	if err := c.Store("tablehash1", "carehash1", 3, 2, result); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, ok, err := c.Lookup("tablehash1", "carehash1", 3, 2)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatalf("expected a cache hit after Store")
	}
	if got.Found != result.Found || got.Circuit != result.Circuit {
		t.Fatalf("round-tripped result mismatch: got %+v, want %+v", got, result)
	}
}

func TestLookupMissReturnsNotOK(t *testing.T) {
	c := openTempCache(t)
	_, ok, err := c.Lookup("nope", "nope", 2, 1)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss for an unstored key")
	}
}

func TestStoreOverwritesExistingEntry(t *testing.T) {
	c := openTempCache(t)
	if err := c.Store("h", "ch", 2, 1, SynthResult{Found: false}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := c.Store("h", "ch", 2, 1, SynthResult{Found: true, Circuit: "x"}); err != nil {
		t.Fatalf("Store (overwrite): %v", err)
	}
	got, ok, err := c.Lookup("h", "ch", 2, 1)
	if err != nil || !ok {
		t.Fatalf("Lookup after overwrite: got=%v ok=%v err=%v", got, ok, err)
	}
	if !got.Found || got.Circuit != "x" {
		t.Fatalf("expected overwritten entry, got %+v", got)
	}
}

func TestRecordIterationThenHistoryIsOrdered(t *testing.T) {
	c := openTempCache(t)
	runID := "run-1"
	for i, cost := range []int{10, 8, 8, 5} {
		if err := c.RecordIteration(runID, i, cost, i%3); err != nil {
			t.Fatalf("RecordIteration: %v", err)
		}
	}
	hist, err := c.History(runID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 4 {
		t.Fatalf("expected 4 recorded iterations, got %d", len(hist))
	}
	for i, s := range hist {
		if s.Iteration != i {
			t.Fatalf("expected iterations in order, got %+v at index %d", s, i)
		}
	}
	if hist[3].Cost != 5 {
		t.Fatalf("expected final recorded cost 5, got %d", hist[3].Cost)
	}
}
