package miaig

import "abccore/internal/truth"

// Simulate returns, for every object (indexed by id), the truth table
// of its function over a window where input i (1-based object id) is
// elementary variable i-1. NumInputs() must not exceed truth.MaxVars.
func (m *MIAIG) Simulate() []*truth.Table {
	n := m.d.nInputs
	cache := make([]*truth.Table, len(m.d.objs))
	cache[0] = truth.Const(n, false)
	for i := 1; i <= n; i++ {
		cache[i] = truth.Elementary(n, i-1)
	}
	for id := n + 1; id < len(m.d.objs); id++ {
		cache[id] = andFanins(cache, m.d.objs[id].fanins, n)
	}
	return cache
}

func andFanins(cache []*truth.Table, fanins []Lit, n int) *truth.Table {
	acc := truth.Const(n, true)
	for _, l := range fanins {
		t := cache[l.Var()]
		if l.IsCompl() {
			t = truth.Not(t)
		}
		acc = truth.And(acc, t)
	}
	return acc
}

// OutputTable returns the simulated truth table of output i given a
// simulation cache already computed by Simulate.
func (m *MIAIG) OutputTable(cache []*truth.Table, i int) *truth.Table {
	o := m.d.outputs[i]
	t := cache[o.Var()]
	if o.IsCompl() {
		return truth.Not(t)
	}
	return t
}

// tfo returns the set of object ids transitively fanning out from
// pivotID (outputs are literals, not objects, and are handled
// separately by callers).
func (m *MIAIG) tfo(pivotID int) map[int]bool {
	set := map[int]bool{}
	var visit func(id int)
	visit = func(id int) {
		for _, c := range m.d.objs[id].fanouts {
			if !set[c] {
				set[c] = true
				visit(c)
			}
		}
	}
	visit(pivotID)
	return set
}

// ObservabilityCare computes the care set at pivotID:
// duplicate the TFO with the pivot's output toggled (the "shadow" TFO),
// then OR over every primary output of (original XOR shadow) AND the
// output's exclusion care-set.
func (m *MIAIG) ObservabilityCare(pivotID int) *truth.Table {
	n := m.d.nInputs
	cache := m.Simulate()
	tfoSet := m.tfo(pivotID)

	shadow := append([]*truth.Table(nil), cache...)
	shadow[pivotID] = truth.Not(cache[pivotID])

	// Recompute every TFO object's value under the shadow assignment, in
	// ascending id order (objects only reference smaller ids, so
	// ascending order is topological).
	for id := pivotID + 1; id < len(m.d.objs); id++ {
		if !tfoSet[id] {
			continue
		}
		shadow[id] = andFanins(shadow, m.d.objs[id].fanins, n)
	}

	care := truth.Const(n, false)
	for i, o := range m.d.outputs {
		if o.Var() != pivotID && !tfoSet[o.Var()] {
			continue
		}
		orig := cache[o.Var()]
		sh := shadow[o.Var()]
		if o.IsCompl() {
			orig = truth.Not(orig)
			sh = truth.Not(sh)
		}
		diff := truth.Xor(orig, sh)
		if ex := m.Exclusion(i); ex != nil {
			diff = truth.And(diff, ex)
		}
		care = truth.Or(care, diff)
	}
	return care
}

// Levels computes the logic level of every object (inputs/const = 0,
// each internal node = 1 + max(fanin levels)).
func (m *MIAIG) Levels() []int {
	levels := make([]int, len(m.d.objs))
	for id := m.d.nInputs + 1; id < len(m.d.objs); id++ {
		best := 0
		for _, l := range m.d.objs[id].fanins {
			if lv := levels[l.Var()]; lv > best {
				best = lv
			}
		}
		levels[id] = best + 1
	}
	return levels
}

// And2Count returns the AND2-equivalent cost of the network: a K-fanin
// node contributes K-1 two-input ANDs, matching how the multi-input
// representation is costed under the AND2-count optimization mode.
func (m *MIAIG) And2Count() int {
	total := 0
	for id := m.d.nInputs + 1; id < len(m.d.objs); id++ {
		if k := len(m.d.objs[id].fanins); k > 1 {
			total += k - 1
		}
	}
	return total
}

// MaxLevel returns the deepest output's level.
func (m *MIAIG) MaxLevel() int {
	levels := m.Levels()
	best := 0
	for _, o := range m.d.outputs {
		if lv := levels[o.Var()]; lv > best {
			best = lv
		}
	}
	return best
}
