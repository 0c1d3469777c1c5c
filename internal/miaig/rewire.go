package miaig

import (
	"math/rand"

	"github.com/google/uuid"

	"abccore/internal/telemetry"
)

// RunID returns a fresh identifier for one Rewire call, used to tag
// resultcache rows and telemetry frames so a caller can tell which run
// produced them.
func RunID() string {
	return uuid.NewString()
}

// Mode selects the cost function the rewire loop optimizes for.
type Mode int

const (
	ModeAnd2Count Mode = iota
	ModeMappedArea
	ModeMappedDelay
)

// Params bundles the stochastic top-level rewire loop's knobs. The zero
// value runs a single iteration over one root (MaxIterations and both
// pool sizes default to 1, FaninGrowth to 4), still perturbed by
// dupMulti, with no telemetry.
type Params struct {
	MaxIterations  int
	LevelGrowth    float64 // max allowed level growth ratio over the root network's level
	ExpandBudget   int     // max fanins a node may reach via ExpandOne
	FaninGrowth    int     // max fanin-max a dupMulti merge may target (clamped to [2,8])
	DivisorCap     int     // Share's divisor-enumeration bound
	MaxFanin       int     // reserved for future fanin-count cap
	TimeLimit      int     // reserved; caller-enforced wall clock budget
	Mode           Mode
	DistanceLimit  int // reserved for future locality bound on candidates
	TechMap        bool
	FCheck         bool // accepted but not read by Rewire; no equivalence check is run

	// RootPoolSize and BestPoolSize bound the two pools the loop
	// samples from: RootPoolSize distinct starting points to perturb
	// from, BestPoolSize surviving networks to restart from on a dry
	// streak.
	RootPoolSize int
	BestPoolSize int
	// RestartStreak is how many consecutive non-improving iterations
	// trigger a restart from a random member of the bests pool.
	RestartStreak int
	// AdmitProbability is the chance ([0,1]) a perturbed network that
	// does not beat the current best is still admitted
	// into the roots pool, keeping the search from collapsing onto a
	// single basin of attraction. 0 disables non-improving admission.
	AdmitProbability float64

	Seed    int64
	Verbose bool

	// KeepAllChoices, when true, makes Rewire append a Dup snapshot of
	// the starting network and of every sampled candidate (taken after
	// its expand/share/reduce pass) to Choices, so a
	// caller can inspect (or pick among) the alternatives the search
	// explored instead of only the final winner.
	KeepAllChoices bool

	// Telemetry, if non-nil, receives one Stat per iteration.
	Telemetry *telemetry.Broadcaster
}

// cost returns the metric Params.Mode selects, computed over the whole
// network.
func (m *MIAIG) cost(p Params) int {
	switch p.Mode {
	case ModeMappedDelay:
		return m.MaxLevel()
	default:
		return m.And2Count()
	}
}

// dupMulti perturbs a deep copy of m by folding a random number of
// single-fanout AND-child nodes into their sole parent, each merge
// bounded by a randomly chosen fanin-max so the search visits networks
// with a range of multi-input node shapes rather than only ever
// growing or only ever shrinking fanin count. It never touches a
// shared (fanout > 1) child: folding one into its parent would
// duplicate the child's logic instead of just re-expressing it.
func (m *MIAIG) dupMulti(rng *rand.Rand, faninGrowth int) *MIAIG {
	out := m.Dup()

	maxFaninCap := faninGrowth
	if maxFaninCap < 2 {
		maxFaninCap = 2
	}
	if maxFaninCap > 8 {
		maxFaninCap = 8
	}
	k := 2 + rng.Intn(maxFaninCap-1)

	n := len(out.d.objs) - out.d.nInputs - 1
	if n <= 0 {
		return out
	}
	slack := 1 + rng.Intn(n)

	merged := 0
	for id := out.d.nInputs + 1; id < len(out.d.objs) && merged < slack; id++ {
		fanins := out.d.objs[id].fanins
		if len(fanins) == 0 {
			continue
		}
		for i, l := range fanins {
			child := l.Var()
			if int(child) <= out.d.nInputs || l.IsCompl() {
				continue
			}
			childObj := &out.d.objs[child]
			if len(childObj.fanouts) != 1 || len(childObj.fanins) == 0 {
				continue
			}
			if len(fanins)-1+len(childObj.fanins) > k {
				continue
			}
			newFanins := make([]Lit, 0, len(fanins)-1+len(childObj.fanins))
			newFanins = append(newFanins, fanins[:i]...)
			newFanins = append(newFanins, fanins[i+1:]...)
			newFanins = append(newFanins, childObj.fanins...)
			out.replaceFanins(id, newFanins)
			merged++
			break
		}
	}
	return out
}

// expandShareReduce runs one full expand -> share -> reduce pass over
// every internal node: ExpandOne first so ReduceOne and Share see the
// widest possible divisor set, then a network-wide Share, then
// ReduceOne again to clean up anything Share's rewrites exposed.
func (m *MIAIG) expandShareReduce(p Params) bool {
	changed := false
	for id := m.d.nInputs + 1; id < len(m.d.objs); id++ {
		if len(m.d.objs[id].fanins) == 0 {
			continue
		}
		if m.ExpandOne(id, p.ExpandBudget) > 0 {
			changed = true
		}
	}
	if m.Share(p.DivisorCap) > 0 {
		changed = true
	}
	for id := m.d.nInputs + 1; id < len(m.d.objs); id++ {
		if len(m.d.objs[id].fanins) == 0 {
			continue
		}
		if m.ReduceOne(id) {
			changed = true
		}
	}
	return changed
}

// Rewire runs the stochastic rewrite loop: a pool of root networks is
// seeded with m, and each iteration picks a random root, perturbs it
// with dupMulti, runs an expand/share/reduce pass (periodically an
// extra ExpandThenReduceOne sweep), and keeps the result if it does
// not exceed the configured level-growth cap. A result beating the
// current best replaces it outright; a result that does not beat it is
// admitted into the roots pool with probability AdmitProbability so
// the search does not collapse onto a single basin of attraction.
// RestartStreak consecutive non-improving iterations restart the
// search from a random member of the bests pool. Rewire mutates m in
// place (m ends the call equal to the best network found) and returns
// the number of iterations that produced a net improvement over the
// starting cost.
func (m *MIAIG) Rewire(p Params) int {
	if p.MaxIterations <= 0 {
		p.MaxIterations = 1
	}
	if p.RootPoolSize <= 0 {
		p.RootPoolSize = 1
	}
	if p.BestPoolSize <= 0 {
		p.BestPoolSize = 1
	}
	if p.RestartStreak <= 0 {
		p.RestartStreak = p.MaxIterations + 1 // effectively disabled
	}
	if p.FaninGrowth <= 0 {
		p.FaninGrowth = 4
	}

	rng := rand.New(rand.NewSource(p.Seed))
	runID := RunID()

	baseLevel := m.MaxLevel()
	startCost := m.cost(p)

	roots := make([]*MIAIG, 1, p.RootPoolSize)
	roots[0] = m.Dup()
	bests := make([]*MIAIG, 1, p.BestPoolSize)
	bests[0] = m.Dup()
	best := m.Dup()
	bestCost := startCost

	var choices []*MIAIG
	if p.KeepAllChoices {
		choices = append(choices, best.Dup())
	}

	improvements := 0
	dryStreak := 0

	for iter := 0; iter < p.MaxIterations; iter++ {
		root := roots[rng.Intn(len(roots))]
		cand := root.dupMulti(rng, p.FaninGrowth)

		cand.expandShareReduce(p)
		if iter%7 == 6 {
			for id := cand.d.nInputs + 1; id < len(cand.d.objs); id++ {
				if len(cand.d.objs[id].fanins) == 0 {
					continue
				}
				cand.ExpandThenReduceOne(id, p.ExpandBudget)
			}
		}
		if p.KeepAllChoices {
			choices = append(choices, cand.Dup())
		}

		newLevel := cand.MaxLevel()
		if p.LevelGrowth > 0 && baseLevel > 0 {
			maxLevel := float64(baseLevel) * (1.0 + p.LevelGrowth)
			if float64(newLevel) > maxLevel {
				dryStreak++
				if p.Telemetry != nil {
					p.Telemetry.Publish(telemetry.Stat{RunID: runID, Iteration: iter, Cost: bestCost, Level: best.MaxLevel()})
				}
				continue
			}
		}

		candCost := cand.cost(p)
		improved := candCost < bestCost || (p.Mode == ModeMappedDelay && newLevel < best.MaxLevel())

		if improved {
			improvements++
			dryStreak = 0
			best = cand.Dup()
			bestCost = candCost
			if len(bests) < p.BestPoolSize {
				bests = append(bests, cand.Dup())
			} else {
				bests[rng.Intn(len(bests))] = cand.Dup()
			}
			if len(roots) < p.RootPoolSize {
				roots = append(roots, cand)
			} else {
				roots[rng.Intn(len(roots))] = cand
			}
		} else {
			dryStreak++
			if p.AdmitProbability > 0 && rng.Float64() < p.AdmitProbability {
				if len(roots) < p.RootPoolSize {
					roots = append(roots, cand)
				} else {
					roots[rng.Intn(len(roots))] = cand
				}
			}
		}

		if p.Telemetry != nil {
			p.Telemetry.Publish(telemetry.Stat{RunID: runID, Iteration: iter, Cost: bestCost, Level: best.MaxLevel(), Improved: improved})
		}

		if dryStreak >= p.RestartStreak {
			restart := bests[rng.Intn(len(bests))].Dup()
			restart.expandShareReduce(p)
			roots[rng.Intn(len(roots))] = restart
			dryStreak = 0
		}
	}

	m.replaceFrom(best)
	if p.KeepAllChoices {
		m.d.choices = choices
	}
	return improvements
}

// replaceFrom copies best's objects/outputs/exclusions into m's own
// shared data block in place, so callers holding m keep a valid handle
// after Rewire returns instead of having their reference silently
// repointed to a different *data.
func (m *MIAIG) replaceFrom(best *MIAIG) {
	m.d.nInputs = best.d.nInputs
	m.d.objs = best.d.objs
	m.d.outputs = best.d.outputs
	m.d.exclusion = best.d.exclusion
	m.d.level = nil
}
