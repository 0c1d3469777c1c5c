package ntk

// AddFanin appends child as a fanin of parent and records the
// reciprocal fanout edge. compl is only meaningful when the owning
// Ntk's Func tag is FuncAIG.
func (n *Ntk) AddFanin(parent, child int, compl bool) {
	p := n.Objs[parent]
	c := n.Objs[child]
	p.Fanins = append(p.Fanins, child)
	p.Compls = append(p.Compls, compl)
	c.Fanouts = append(c.Fanouts, parent)
}

// RemoveFanin removes one child edge from parent, and the matching
// reciprocal fanout edge from child.
func (n *Ntk) RemoveFanin(parent, child int) {
	p := n.Objs[parent]
	for i, f := range p.Fanins {
		if f == child {
			p.Fanins = append(p.Fanins[:i], p.Fanins[i+1:]...)
			p.Compls = append(p.Compls[:i], p.Compls[i+1:]...)
			break
		}
	}
	c := n.Objs[child]
	for i, f := range c.Fanouts {
		if f == parent {
			c.Fanouts = append(c.Fanouts[:i], c.Fanouts[i+1:]...)
			break
		}
	}
}

// ReplaceFanin rewires parent's edge from oldChild to newChild,
// preserving oldChild's complement bit at that slot — used by the
// rewiring/adapter layers when a driver is substituted without
// otherwise disturbing edge order.
func (n *Ntk) ReplaceFanin(parent, oldChild, newChild int) {
	p := n.Objs[parent]
	for i, f := range p.Fanins {
		if f == oldChild {
			p.Fanins[i] = newChild
			n.Objs[newChild].Fanouts = append(n.Objs[newChild].Fanouts, parent)
			break
		}
	}
	old := n.Objs[oldChild]
	for i, f := range old.Fanouts {
		if f == parent {
			old.Fanouts = append(old.Fanouts[:i], old.Fanouts[i+1:]...)
			break
		}
	}
}

// DeleteObj removes obj's roster membership (CI/CO/latch/net-name
// table). Fanin/fanout edges to obj must already have been removed
// by the caller via RemoveFanin.
func (n *Ntk) DeleteObj(id int) {
	o := n.Objs[id]
	switch o.Kind {
	case KindPI:
		removeInt(&n.Pis, id)
	case KindPO:
		removeInt(&n.Pos, id)
	case KindLatch:
		removeInt(&n.Latches, id)
	case KindNet:
		if nameID, ok := n.Names.Lookup(o.Name); ok {
			delete(n.netByName, nameID)
		}
	}
	o.Fanins = nil
	o.Compls = nil
	o.Fanouts = nil
}

func removeInt(s *[]int, x int) {
	for i, v := range *s {
		if v == x {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return
		}
	}
}
