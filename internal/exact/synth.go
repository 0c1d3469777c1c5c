// Package exact implements SAT-encoded exact synthesis: given a target
// Boolean function (optionally restricted to a care set) and a fixed
// gate budget, it searches for a feed-forward network of at most that
// many K-input LUTs realizing the function. SynthesizeLUT is the
// general encoding: each gate's own truth table is 2^K-1 solver-chosen
// parameter variables and each of its K fanin slots is a one-hot
// connection variable over every lower-indexed object. Synthesize is
// the K=2, function-fixed-to-AND special case (no parameter
// variables — every gate's table is hardwired to AND), kept separate
// because callers that have already committed to an AND-only network
// (the `AND gates only` mode of the top-level search) get a much
// smaller encoding than routing through the general LUT machinery and
// then constraining the table to AND after the fact.
package exact

import (
	"abccore/internal/gia"
	"abccore/internal/satwrap"
	"abccore/internal/truth"

	"github.com/google/uuid"
)

// JobID returns a fresh identifier for one exact-synthesis attempt,
// suitable for tagging resultcache rows and correlating a SynthesizeLUT
// call with the log lines it produced. Distinct from a cache key: two
// calls with identical target/care/budget get distinct JobIDs but the
// same cache key.
func JobID() string {
	return uuid.NewString()
}

// Gate is one synthesized 2-input AND, with fanins literal-encoded
// (var*2+compl) the same way gia/miaig encode them: variable 0 is
// constant-false, 1..NumInputs are the function's inputs, and every
// later variable is an earlier gate's output.
type Gate struct {
	A, B int
}

// Circuit is a synthesis result: Gates[i]'s variable is NumInputs+1+i,
// and Output names the signal (with polarity) realizing the target.
type Circuit struct {
	NumInputs int
	Gates     []Gate
	Output    int
}

type pairOpt struct{ a, b int }

func litValue(lit gia.Lit, m int, constVar satwrap.Lit, sig [][]satwrap.Lit) satwrap.Lit {
	v := lit.Var()
	var base satwrap.Lit
	if v == 0 {
		base = constVar
	} else {
		base = sig[v][m]
	}
	if lit.IsCompl() {
		return -base
	}
	return base
}

func atMostOne(backend satwrap.Solver, vars []satwrap.Lit) {
	for a := 0; a < len(vars); a++ {
		for b := a + 1; b < len(vars); b++ {
			backend.AddClause(-vars[a], -vars[b])
		}
	}
}

// candidatePairs enumerates every distinct, non-trivial unordered pair
// of (possibly complemented) signals drawn from variables 0..maxVar.
func candidatePairs(maxVar int) []pairOpt {
	var opts []pairOpt
	for va := 0; va <= maxVar; va++ {
		for ca := 0; ca <= 1; ca++ {
			litA := gia.MakeLit(va, ca == 1)
			for vb := va; vb <= maxVar; vb++ {
				cbStart := 0
				if vb == va {
					cbStart = ca
				}
				for cb := cbStart; cb <= 1; cb++ {
					litB := gia.MakeLit(vb, cb == 1)
					if litA >= litB {
						continue
					}
					if litA.Regular() == litB.Regular() {
						continue // x AND x / x AND NOT x are trivial, never optimal
					}
					opts = append(opts, pairOpt{a: int(litA), b: int(litB)})
				}
			}
		}
	}
	return opts
}

// Synthesize searches for a circuit of exactly `budget` AND gates over
// `numInputs` inputs whose output equals target on every minterm where
// care is 1 (care == nil means fully cared). It returns ok == false if
// no such circuit exists (budget is too small), never if the encoding
// itself is wrong — exhausting the budget is a legitimate UNSAT result.
func Synthesize(target, care *truth.Table, numInputs, budget int, backend satwrap.Solver) (Circuit, bool) {
	n := numInputs
	numMinterms := 1 << uint(n)

	constVar := backend.NewVar()
	backend.AddClause(-constVar)

	sig := make([][]satwrap.Lit, n+budget+1)
	for v := 1; v <= n; v++ {
		e := truth.Elementary(n, v-1)
		sig[v] = make([]satwrap.Lit, numMinterms)
		for m := 0; m < numMinterms; m++ {
			lv := backend.NewVar()
			sig[v][m] = lv
			if e.Bit(m) {
				backend.AddClause(lv)
			} else {
				backend.AddClause(-lv)
			}
		}
	}

	candidates := make([][]pairOpt, budget)
	selVars := make([][]satwrap.Lit, budget)
	for i := 0; i < budget; i++ {
		gid := n + 1 + i
		sig[gid] = make([]satwrap.Lit, numMinterms)
		for m := 0; m < numMinterms; m++ {
			sig[gid][m] = backend.NewVar()
		}

		opts := candidatePairs(n + i)
		candidates[i] = opts
		sv := make([]satwrap.Lit, len(opts))
		for k := range opts {
			sv[k] = backend.NewVar()
		}
		selVars[i] = sv
		backend.AddClause(sv...)
		atMostOne(backend, sv)

		for k, opt := range opts {
			for m := 0; m < numMinterms; m++ {
				va := litValue(gia.Lit(opt.a), m, constVar, sig)
				vb := litValue(gia.Lit(opt.b), m, constVar, sig)
				sim := sig[gid][m]
				s := sv[k]
				backend.AddClause(-s, -sim, va)
				backend.AddClause(-s, -sim, vb)
				backend.AddClause(-s, sim, -va, -vb)
			}
		}
	}

	outMaxVar := n + budget
	var outOpts []int
	for v := 0; v <= outMaxVar; v++ {
		for c := 0; c <= 1; c++ {
			outOpts = append(outOpts, int(gia.MakeLit(v, c == 1)))
		}
	}
	outSel := make([]satwrap.Lit, len(outOpts))
	for k := range outOpts {
		outSel[k] = backend.NewVar()
	}
	backend.AddClause(outSel...)
	atMostOne(backend, outSel)

	for k, lit := range outOpts {
		for m := 0; m < numMinterms; m++ {
			if care != nil && !care.Bit(m) {
				continue
			}
			val := litValue(gia.Lit(lit), m, constVar, sig)
			if target.Bit(m) {
				backend.AddClause(-outSel[k], val)
			} else {
				backend.AddClause(-outSel[k], -val)
			}
		}
	}

	if !backend.Solve() {
		return Circuit{}, false
	}

	gates := make([]Gate, budget)
	for i := 0; i < budget; i++ {
		for k, opt := range candidates[i] {
			if backend.Value(selVars[i][k]) {
				gates[i] = Gate{A: opt.a, B: opt.b}
				break
			}
		}
	}
	outLit := 0
	for k, lit := range outOpts {
		if backend.Value(outSel[k]) {
			outLit = lit
			break
		}
	}
	return Circuit{NumInputs: n, Gates: gates, Output: outLit}, true
}

// SynthesizeMinimal tries budgets 0..maxBudget in order and returns the
// first (hence smallest) circuit found, constructing a fresh backend
// per attempt via newBackend since each budget needs its own variable
// space.
func SynthesizeMinimal(target, care *truth.Table, numInputs, maxBudget int, newBackend func() satwrap.Solver) (Circuit, bool) {
	for budget := 0; budget <= maxBudget; budget++ {
		if c, ok := Synthesize(target, care, numInputs, budget, newBackend()); ok {
			return c, true
		}
	}
	return Circuit{}, false
}

// LUTGate is one synthesized K-input lookup table: Inputs names the K
// driver object ids (object 0 is the constant-false input, used to pad
// a slot when the gate's real arity is below K; objects 1..numInputs
// are the top-level inputs; later ids are earlier LUTGates), and Table
// is the 2^K-entry truth table the gate realizes over those drivers,
// indexed by the bit pattern of the drivers' values (bit s of the
// index is driver s's value). Table[0] is always false: pattern 0 (all
// drivers false) is never a free choice, so an all-constant-false LUT
// is realized by driving every slot from object 0 and reading index 0.
type LUTGate struct {
	Inputs []int
	Table  []bool
}

// LUTCircuit is a synthesis result over general K-input LUTs: Gates[i]
// occupies object id NumInputs+1+i, and Output (with OutputNeg) names
// the object realizing the target.
type LUTCircuit struct {
	NumInputs int
	K         int
	Gates     []LUTGate
	Output    int
	OutputNeg bool
}

// SymmetricTable returns the truth table of the n-input symmetric
// function that is true exactly when the number of true inputs is one
// of onSizes — e.g. SymmetricTable(3, []int{2, 3}) is 3-input majority.
func SymmetricTable(n int, onSizes []int) *truth.Table {
	on := make(map[int]bool, len(onSizes))
	for _, k := range onSizes {
		on[k] = true
	}
	t := truth.New(n)
	for m := 0; m < 1<<uint(n); m++ {
		count := 0
		for b := 0; b < n; b++ {
			if m&(1<<uint(b)) != 0 {
				count++
			}
		}
		if on[count] {
			t.SetBit(m, true)
		}
	}
	return t
}

// litForGuard returns the clause literal asserting "v does NOT equal
// bit": negating this and OR-ing it into a clause together with other
// slots' guard literals builds the standard Tseitin guard "if every
// slot matches this pattern, then...".
func litForGuard(v satwrap.Lit, bit int) satwrap.Lit {
	if bit != 0 {
		return -v
	}
	return v
}

// SynthesizeLUT searches for a feed-forward network of exactly `budget`
// K-input LUTs over `numInputs` inputs whose (optionally complemented)
// output equals target on every minterm where care is 1. Unlike
// Synthesize (which fixes every gate's function to AND), each LUT's
// function is itself a solver-chosen set of 2^K-1 parameter variables,
// and each of its K fanin slots is a one-hot connection variable over
// every lower-indexed object — the general encoding §4.5 describes,
// of which the fixed-AND encoding is the K=2 special case used when a
// caller has already committed to an AND-only network.
func SynthesizeLUT(target, care *truth.Table, numInputs, k, budget int, backend satwrap.Solver) (LUTCircuit, bool) {
	n := numInputs
	numMinterms := 1 << uint(n)
	numPatterns := 1 << uint(k)

	// value[obj][m] holds object obj's simulation value at minterm m.
	// Object 0 is the constant-false driver, fixed once; objects
	// 1..n are the elementary inputs, also fixed; the rest are LUT
	// gates, whose value is tied to their parameters by guard clauses
	// below rather than fixed directly.
	value := make([][]satwrap.Lit, n+budget+1)

	constFalse := backend.NewVar()
	backend.AddClause(-constFalse)
	value[0] = make([]satwrap.Lit, numMinterms)
	for m := range value[0] {
		value[0][m] = constFalse
	}

	for v := 1; v <= n; v++ {
		e := truth.Elementary(n, v-1)
		value[v] = make([]satwrap.Lit, numMinterms)
		for m := 0; m < numMinterms; m++ {
			lv := backend.NewVar()
			value[v][m] = lv
			if e.Bit(m) {
				backend.AddClause(lv)
			} else {
				backend.AddClause(-lv)
			}
		}
	}

	gateInputs := make([][]int, budget) // decoded after solving
	slotSel := make([][][]satwrap.Lit, budget)
	paramVars := make([][]satwrap.Lit, budget)

	for i := 0; i < budget; i++ {
		gid := n + 1 + i
		numCandidates := gid // objects 0..gid-1

		value[gid] = make([]satwrap.Lit, numMinterms)
		for m := range value[gid] {
			value[gid][m] = backend.NewVar()
		}

		slots := make([][]satwrap.Lit, k)
		for s := 0; s < k; s++ {
			sel := make([]satwrap.Lit, numCandidates)
			for c := range sel {
				sel[c] = backend.NewVar()
			}
			backend.AddClause(sel...)
			atMostOne(backend, sel)
			slots[s] = sel
		}
		// Symmetry breaking: selected object index is non-decreasing
		// across slots, so permuting an already-chosen fanin set never
		// yields a second satisfying assignment.
		for s := 0; s+1 < k; s++ {
			for a, selA := range slots[s] {
				for b, selB := range slots[s+1] {
					if b < a {
						backend.AddClause(-selA, -selB)
					}
				}
			}
		}
		slotSel[i] = slots

		params := make([]satwrap.Lit, numPatterns-1)
		for p := range params {
			params[p] = backend.NewVar()
		}
		paramVars[i] = params

		for m := 0; m < numMinterms; m++ {
			valSlot := make([]satwrap.Lit, k)
			for s := 0; s < k; s++ {
				vs := backend.NewVar()
				valSlot[s] = vs
				for c, sel := range slotSel[i][s] {
					backend.AddClause(-sel, -value[c][m], vs)
					backend.AddClause(-sel, value[c][m], -vs)
				}
			}
			for p := 0; p < numPatterns; p++ {
				guard := make([]satwrap.Lit, 0, k+2)
				for s := 0; s < k; s++ {
					bit := (p >> uint(s)) & 1
					guard = append(guard, litForGuard(valSlot[s], bit))
				}
				if p == 0 {
					// param(0) is fixed false: guard implies ¬value only.
					cl := append(append([]satwrap.Lit{}, guard...), -value[gid][m])
					backend.AddClause(cl...)
					continue
				}
				param := params[p-1]
				cl1 := append(append([]satwrap.Lit{}, guard...), -value[gid][m], param)
				cl2 := append(append([]satwrap.Lit{}, guard...), value[gid][m], -param)
				backend.AddClause(cl1...)
				backend.AddClause(cl2...)
			}
		}
	}

	outNeg := backend.NewVar()
	numObjs := n + budget + 1
	outSel := make([]satwrap.Lit, numObjs)
	for obj := range outSel {
		outSel[obj] = backend.NewVar()
	}
	backend.AddClause(outSel...)
	atMostOne(backend, outSel)

	for obj := 0; obj < numObjs; obj++ {
		for m := 0; m < numMinterms; m++ {
			if care != nil && !care.Bit(m) {
				continue
			}
			sel := outSel[obj]
			v := value[obj][m]
			if target.Bit(m) {
				backend.AddClause(-sel, v, outNeg)
				backend.AddClause(-sel, -v, -outNeg)
			} else {
				backend.AddClause(-sel, -v, outNeg)
				backend.AddClause(-sel, v, -outNeg)
			}
		}
	}

	if !backend.Solve() {
		return LUTCircuit{}, false
	}

	gates := make([]LUTGate, budget)
	for i := 0; i < budget; i++ {
		inputs := make([]int, k)
		for s := 0; s < k; s++ {
			for c, sel := range slotSel[i][s] {
				if backend.Value(sel) {
					inputs[s] = c
					break
				}
			}
		}
		table := make([]bool, numPatterns)
		for p := 1; p < numPatterns; p++ {
			table[p] = backend.Value(paramVars[i][p-1])
		}
		gateInputs[i] = inputs
		gates[i] = LUTGate{Inputs: inputs, Table: table}
	}

	output := 0
	for obj := 0; obj < numObjs; obj++ {
		if backend.Value(outSel[obj]) {
			output = obj
			break
		}
	}

	return LUTCircuit{
		NumInputs: n,
		K:         k,
		Gates:     gates,
		Output:    output,
		OutputNeg: backend.Value(outNeg),
	}, true
}

// SynthesizeLUTMinimal tries budgets starting at the information-
// theoretic lower bound ceil((numInputs-1)/(k-1)) and increasing by one
// until a satisfying network is found or maxBudget is exceeded,
// constructing a fresh backend per attempt since each budget needs its
// own variable space.
func SynthesizeLUTMinimal(target, care *truth.Table, numInputs, k, maxBudget int, newBackend func() satwrap.Solver) (LUTCircuit, bool) {
	start := 0
	if k > 1 {
		start = (numInputs - 1 + k - 2) / (k - 1)
	}
	if start < 0 {
		start = 0
	}
	for budget := start; budget <= maxBudget; budget++ {
		if c, ok := SynthesizeLUT(target, care, numInputs, k, budget, newBackend()); ok {
			return c, true
		}
	}
	return LUTCircuit{}, false
}

// Simulate evaluates a synthesized LUT circuit at minterm m.
func (c *LUTCircuit) Simulate(m int) bool {
	vals := make([]bool, c.NumInputs+1+len(c.Gates))
	for v := 1; v <= c.NumInputs; v++ {
		vals[v] = truth.Elementary(c.NumInputs, v-1).Bit(m)
	}
	for i, g := range c.Gates {
		pattern := 0
		for s, in := range g.Inputs {
			if vals[in] {
				pattern |= 1 << uint(s)
			}
		}
		vals[c.NumInputs+1+i] = g.Table[pattern]
	}
	out := vals[c.Output]
	if c.OutputNeg {
		out = !out
	}
	return out
}

// Simulate evaluates a synthesized circuit at minterm m, for tests and
// callers that want to double-check a result independent of the SAT
// encoding that produced it.
func (c *Circuit) Simulate(m int) bool {
	vals := make([]bool, c.NumInputs+1+len(c.Gates))
	for v := 1; v <= c.NumInputs; v++ {
		vals[v] = truth.Elementary(c.NumInputs, v-1).Bit(m)
	}
	value := func(lit int) bool {
		l := gia.Lit(lit)
		v := l.Var()
		var base bool
		if v > 0 {
			base = vals[v]
		}
		if l.IsCompl() {
			return !base
		}
		return base
	}
	for i, g := range c.Gates {
		vals[c.NumInputs+1+i] = value(g.A) && value(g.B)
	}
	return value(c.Output)
}
