package miaig

import (
	"sort"

	"abccore/internal/gia"
	"abccore/internal/truth"
)

// candidateOrder sorts candidate object ids for expand-one: primarily
// by descending level (so adding a fanin does not degrade arrival time
// unnecessarily), with level-zero objects (inputs/const) moved to the
// front since they are always cheaply available and worth trying first
// for reuse; ties among equal-level candidates break by descending
// fanout count (more reused nodes are preferred, since they are
// already paid for elsewhere).
func (m *MIAIG) candidateOrder(ids []int, levels []int) []int {
	out := append([]int(nil), ids...)
	sort.Slice(out, func(i, j int) bool {
		li, lj := levels[out[i]], levels[out[j]]
		if li == 0 && lj != 0 {
			return true
		}
		if lj == 0 && li != 0 {
			return false
		}
		if li != lj {
			return li > lj
		}
		return len(m.d.objs[out[i]].fanouts) > len(m.d.objs[out[j]].fanouts)
	})
	return out
}

// ExpandOne implements the expand-one primitive: for the pivot node,
// compute its observability care and try inserting each
// candidate fanin (not already a fanin, necessarily of lower index
// since the representation never references a higher-indexed object)
// whose addition does not change the pivot's behavior on the care set.
// maxFanins <= 0 means unbounded. Returns the number of fanins added.
func (m *MIAIG) ExpandOne(pivotID int, maxFanins int) int {
	if pivotID <= m.d.nInputs {
		return 0
	}
	care := m.ObservabilityCare(pivotID)
	cache := m.Simulate()
	target := cache[pivotID]

	current := append([]Lit(nil), m.Fanins(pivotID)...)
	used := make(map[int]bool, len(current)+1)
	used[pivotID] = true
	for _, l := range current {
		used[l.Var()] = true
	}

	var candidates []int
	for id := 1; id < pivotID; id++ {
		if !used[id] {
			candidates = append(candidates, id)
		}
	}
	levels := m.Levels()
	candidates = m.candidateOrder(candidates, levels)

	added := 0
	for _, cand := range candidates {
		if maxFanins > 0 && len(current) >= maxFanins {
			break
		}
		for _, compl := range [2]bool{false, true} {
			candLit := gia.MakeLit(cand, compl)
			t := cache[cand]
			if compl {
				t = truth.Not(t)
			}
			trial := truth.And(target, t)
			if truth.EqualOnCare(target, trial, care) {
				current = append(current, candLit)
				used[cand] = true
				added++
				break
			}
		}
	}
	if added > 0 {
		m.replaceFanins(pivotID, current)
	}
	return added
}

// ReduceOne implements the reduce-one primitive: drop
// redundant fanins one at a time in ascending-level order (remove
// shallow fanins first, leaving deep ones that were harder to obtain),
// collapsing to a buffer or a constant when the care set allows it.
// Returns whether the node changed.
func (m *MIAIG) ReduceOne(pivotID int) bool {
	if pivotID <= m.d.nInputs {
		return false
	}
	current := m.Fanins(pivotID)
	if len(current) == 0 {
		return false
	}
	care := m.ObservabilityCare(pivotID)
	cache := m.Simulate()
	target := cache[pivotID]

	collapse := func(l Lit) bool {
		if len(current) == 1 && current[0] == l {
			return false
		}
		m.replaceFanins(pivotID, []Lit{l})
		return true
	}
	if truth.EqualOnCare(target, truth.Const(m.d.nInputs, false), care) {
		return collapse(gia.LitFalse)
	}
	if truth.EqualOnCare(target, truth.Const(m.d.nInputs, true), care) {
		return collapse(gia.LitTrue)
	}
	for _, l := range current {
		t := litTable(cache, l)
		if truth.EqualOnCare(target, t, care) {
			return collapse(l)
		}
	}

	levels := m.Levels()
	tryOrder := append([]Lit(nil), current...)
	sort.Slice(tryOrder, func(i, j int) bool {
		return levels[tryOrder[i].Var()] < levels[tryOrder[j].Var()]
	})

	kept := append([]Lit(nil), current...)
	changed := false
	for _, lit := range tryOrder {
		if len(kept) <= 1 {
			break
		}
		idx := indexOfLit(kept, lit)
		if idx < 0 {
			continue
		}
		candidate := removeAt(kept, idx)
		trial := andFanins(cache, candidate, m.d.nInputs)
		if truth.EqualOnCare(target, trial, care) {
			kept = candidate
			changed = true
		}
	}
	if changed {
		m.replaceFanins(pivotID, kept)
	}
	return changed
}

func litTable(cache []*truth.Table, l Lit) *truth.Table {
	t := cache[l.Var()]
	if l.IsCompl() {
		return truth.Not(t)
	}
	return t
}

func indexOfLit(s []Lit, l Lit) int {
	for i, v := range s {
		if v == l {
			return i
		}
	}
	return -1
}

func removeAt(s []Lit, idx int) []Lit {
	if idx >= len(s) {
		return s
	}
	out := make([]Lit, 0, len(s)-1)
	out = append(out, s[:idx]...)
	out = append(out, s[idx+1:]...)
	return out
}

// ExpandThenReduceOne runs expand-one followed by reduce-one on the
// same pivot, bounded to a single pass of each.
func (m *MIAIG) ExpandThenReduceOne(pivotID int, maxFanins int) {
	m.ExpandOne(pivotID, maxFanins)
	m.ReduceOne(pivotID)
}

type pairKey struct {
	a, b Lit
}

// Share implements the share primitive: find literal pairs
// that recur across >=2 distinct nodes' (adjacent, sorted) fanin lists
// and factor each into one new shared AND node, rewriting consumers to
// use it, up to budget pairs, most-occurring pairs first (pairs with
// equal counts are taken in ascending literal order).
func (m *MIAIG) Share(budget int) int {
	type occ struct {
		node int
		a, b Lit
	}
	counts := map[pairKey][]occ{}
	for id := m.d.nInputs + 1; id < len(m.d.objs); id++ {
		fanins := m.d.objs[id].fanins
		for i := 0; i+1 < len(fanins); i++ {
			k := pairKey{fanins[i], fanins[i+1]}
			counts[k] = append(counts[k], occ{node: id, a: fanins[i], b: fanins[i+1]})
		}
	}

	var keys []pairKey
	for k, v := range counts {
		if len(v) >= 2 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := len(counts[keys[i]]), len(counts[keys[j]])
		if ci != cj {
			return ci > cj
		}
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})

	rewritten := map[int]bool{}
	shared := 0
	for _, k := range keys {
		if budget > 0 && shared >= budget {
			break
		}
		occs := counts[k]
		var targets []occ
		for _, o := range occs {
			if !rewritten[o.node] {
				targets = append(targets, o)
			}
		}
		if len(targets) < 2 {
			continue
		}
		newLit := m.AppendNode([]Lit{k.a, k.b})
		for _, o := range targets {
			fanins := m.d.objs[o.node].fanins
			replaced := make([]Lit, 0, len(fanins)-1)
			removedOne := false
			for i := 0; i < len(fanins); i++ {
				if !removedOne && i+1 < len(fanins) && fanins[i] == k.a && fanins[i+1] == k.b {
					replaced = append(replaced, newLit)
					i++
					removedOne = true
					continue
				}
				replaced = append(replaced, fanins[i])
			}
			m.replaceFanins(o.node, replaced)
			rewritten[o.node] = true
		}
		shared++
	}
	return shared
}
