// Package timing implements a per-object static timing model: forward
// arrival propagation, backward required-time propagation, per-output
// worst arrival/slack, and a critical-path walk within a user-specified
// slack window.
package timing

import "abccore/internal/ntk"

// Phase classifies how a pin's output polarity tracks its input.
type Phase byte

const (
	NonInverting Phase = iota
	Inverting
	Either
)

// RiseFall holds a rise/fall pair of timing values.
type RiseFall struct {
	Rise float64
	Fall float64
}

// Worst returns the larger of Rise and Fall.
func (r RiseFall) Worst() float64 {
	if r.Rise > r.Fall {
		return r.Rise
	}
	return r.Fall
}

// PinTiming is one fanin pin's block delay and phase relationship.
type PinTiming struct {
	Delay RiseFall
	Phase Phase
}

const inf = 1e18

// Constraints is the external directive table of per-CI arrival and
// per-CO required defaults/overrides.
type Constraints struct {
	Arrival         map[int]RiseFall // PI object id -> arrival
	Required        map[int]RiseFall // PO object id -> required
	DefaultArrival  RiseFall
	HasDefaultReq   bool
	DefaultRequired RiseFall
}

// Model is a timing run over one mapped Ntk: per-pin delay table plus
// the computed arrival/required arrays.
type Model struct {
	N        *ntk.Ntk
	PinDelay map[int][]PinTiming // node id -> per-fanin-slot timing
	Arrival  []RiseFall
	Required []RiseFall

	Warnings []string
}

// New returns a Model with an empty pin-timing table: every node
// Propagate reaches needs a table set via SetPinTiming first, since
// Propagate panics on a node without one.
func New(n *ntk.Ntk) *Model {
	return &Model{
		N:        n,
		PinDelay: make(map[int][]PinTiming),
		Arrival:  make([]RiseFall, len(n.Objs)),
		Required: make([]RiseFall, len(n.Objs)),
	}
}

// SetPinTiming records the fanin-slot delay/phase table for node id. A
// missing table for a visited node is a programmer error, so Propagate
// panics rather than silently defaulting.
func (m *Model) SetPinTiming(nodeID int, pins []PinTiming) {
	m.PinDelay[nodeID] = pins
}

func negInfRF() RiseFall { return RiseFall{Rise: -inf, Fall: -inf} }
func posInfRF() RiseFall { return RiseFall{Rise: inf, Fall: inf} }

// Propagate runs the full forward (arrival) and backward (required)
// timing pass, fixed-point in one sweep each way since the network is
// combinational (latches are timing breakpoints, not feedback).
func (m *Model) Propagate(c Constraints) {
	n := m.N
	for i := range m.Arrival {
		m.Arrival[i] = negInfRF()
		m.Required[i] = posInfRF()
	}

	for _, id := range n.Pis {
		if a, ok := c.Arrival[id]; ok {
			m.Arrival[id] = a
		} else {
			m.Arrival[id] = c.DefaultArrival
		}
	}
	for _, id := range n.Latches {
		m.Arrival[id] = RiseFall{}
	}

	order := n.TopoOrder()
	for _, id := range order {
		o := n.Obj(id)
		pins, ok := m.PinDelay[id]
		if !ok || len(pins) != len(o.Fanins) {
			panic("timing: missing or mismatched pin-phase table for node")
		}
		acc := negInfRF()
		for i, fi := range o.Fanins {
			fa := m.Arrival[fi]
			pin := pins[i]
			cand := propagateForward(fa, pin)
			if cand.Rise > acc.Rise {
				acc.Rise = cand.Rise
			}
			if cand.Fall > acc.Fall {
				acc.Fall = cand.Fall
			}
		}
		m.Arrival[id] = acc
	}

	for _, id := range n.Pos {
		o := n.Obj(id)
		m.Arrival[id] = m.Arrival[o.Fanins[0]]
	}

	maxArrival := -inf
	for _, id := range n.Pos {
		w := m.Arrival[id].Worst()
		if w > maxArrival {
			maxArrival = w
		}
	}
	defaultReq := RiseFall{Rise: maxArrival, Fall: maxArrival}
	if c.HasDefaultReq {
		defaultReq = c.DefaultRequired
	}

	for _, id := range n.Pos {
		if req, ok := c.Required[id]; ok {
			m.Required[id] = req
		} else {
			m.Required[id] = defaultReq
		}
	}

	full := make([]int, 0, len(order)+len(n.Pos))
	full = append(full, order...)
	full = append(full, n.Pos...)
	for i := len(full) - 1; i >= 0; i-- {
		id := full[i]
		o := n.Obj(id)
		if len(o.Fanins) == 0 {
			continue
		}
		nodeReq := m.Required[id]
		if o.Kind == ntk.KindPO {
			faninCand := nodeReq
			if faninCand.Worst() < m.Required[o.Fanins[0]].Worst() {
				m.Required[o.Fanins[0]] = faninCand
			}
			continue
		}
		pins := m.PinDelay[id]
		for i2, fi := range o.Fanins {
			cand := propagateBackward(nodeReq, pins[i2])
			if cand.Rise < m.Required[fi].Rise {
				m.Required[fi].Rise = cand.Rise
			}
			if cand.Fall < m.Required[fi].Fall {
				m.Required[fi].Fall = cand.Fall
			}
		}
	}

	for _, id := range n.Pos {
		if m.Required[id].Worst() >= inf {
			m.Warnings = append(m.Warnings, "unconstrained output at object "+itoa(id))
		}
	}
}

func propagateForward(fanin RiseFall, pin PinTiming) RiseFall {
	switch pin.Phase {
	case NonInverting:
		return RiseFall{Rise: fanin.Rise + pin.Delay.Rise, Fall: fanin.Fall + pin.Delay.Fall}
	case Inverting:
		return RiseFall{Rise: fanin.Fall + pin.Delay.Rise, Fall: fanin.Rise + pin.Delay.Fall}
	default: // Either
		rise := fanin.Rise + pin.Delay.Rise
		if alt := fanin.Fall + pin.Delay.Rise; alt > rise {
			rise = alt
		}
		fall := fanin.Fall + pin.Delay.Fall
		if alt := fanin.Rise + pin.Delay.Fall; alt > fall {
			fall = alt
		}
		return RiseFall{Rise: rise, Fall: fall}
	}
}

func propagateBackward(nodeReq RiseFall, pin PinTiming) RiseFall {
	switch pin.Phase {
	case NonInverting:
		return RiseFall{Rise: nodeReq.Rise - pin.Delay.Rise, Fall: nodeReq.Fall - pin.Delay.Fall}
	case Inverting:
		return RiseFall{Rise: nodeReq.Fall - pin.Delay.Fall, Fall: nodeReq.Rise - pin.Delay.Rise}
	default: // Either
		rise := nodeReq.Rise - pin.Delay.Rise
		if alt := nodeReq.Fall - pin.Delay.Rise; alt < rise {
			rise = alt
		}
		fall := nodeReq.Fall - pin.Delay.Fall
		if alt := nodeReq.Rise - pin.Delay.Fall; alt < fall {
			fall = alt
		}
		return RiseFall{Rise: rise, Fall: fall}
	}
}

// Slack returns the worst-case slack (required minus arrival) at id.
func (m *Model) Slack(id int) float64 {
	req := m.Required[id]
	arr := m.Arrival[id]
	rs := req.Rise - arr.Rise
	fs := req.Fall - arr.Fall
	if rs < fs {
		return rs
	}
	return fs
}

// WorstOutputs returns the n POs with least slack.
func (m *Model) WorstOutputs(n int) []int {
	ids := append([]int{}, m.N.Pos...)
	// simple selection sort by ascending slack; PO counts are small.
	for i := 0; i < len(ids) && i < n; i++ {
		best := i
		for j := i + 1; j < len(ids); j++ {
			if m.Slack(ids[j]) < m.Slack(ids[best]) {
				best = j
			}
		}
		ids[i], ids[best] = ids[best], ids[i]
	}
	if n > len(ids) {
		n = len(ids)
	}
	return ids[:n]
}

func itoa(x int) string {
	if x == 0 {
		return "0"
	}
	neg := x < 0
	if neg {
		x = -x
	}
	var buf [20]byte
	i := len(buf)
	for x > 0 {
		i--
		buf[i] = byte('0' + x%10)
		x /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
