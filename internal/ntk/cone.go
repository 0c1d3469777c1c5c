package ntk

// ExtractCone builds a new single-output Ntk containing only the
// transitive fanin of POs[poIdx]'s driver: DFS from the driver marking
// a fresh trav id, creating PIs in the target only for reached CIs
// (unless keepAllPis requests every CI regardless of reachability; a
// latch output becomes a PI of the cone, after the source's PIs),
// copying reached nodes in DFS order, and creating one PO named after
// the source PO.
func (n *Ntk) ExtractCone(poIdx int, keepAllPis bool) *Ntk {
	out := New(n.Type, n.Func)
	out.Library = n.Library

	trav := n.NewTravID()
	reached := make(map[int]bool)
	var order []int
	var mark func(id int)
	mark = func(id int) {
		if reached[id] {
			return
		}
		reached[id] = true
		n.Objs[id].Visit(trav)
		o := n.Objs[id]
		if o.Kind == KindNode {
			for _, fi := range o.Fanins {
				mark(fi)
			}
			order = append(order, id)
		}
	}

	poObj := n.Objs[n.Pos[poIdx]]
	driver := poObj.Fanins[0]
	mark(driver)

	copyMap := make(map[int]int)
	for _, id := range n.Pis {
		if keepAllPis || reached[id] {
			copyMap[id] = out.NewPi(n.Objs[id].Name).ID
		}
	}
	for _, id := range n.Latches {
		if keepAllPis || reached[id] {
			copyMap[id] = out.NewPi(n.Objs[id].Name).ID
		}
	}
	for _, id := range order {
		src := n.Objs[id]
		dst := out.NewNode()
		copyMap[id] = dst.ID
		for i, fi := range src.Fanins {
			compl := false
			if n.Func == FuncAIG {
				compl = src.Compls[i]
			}
			out.AddFanin(dst.ID, copyMap[fi], compl)
		}
		transferFunction(n, src, out, dst)
	}

	compl := false
	if n.Func == FuncAIG {
		compl = poObj.Compls[0]
	}
	out.NewPoCompl(poObj.Name, copyMap[driver], compl)
	return out
}

// SplitOutputs returns one single-output Ntk per PO, in PO order, each
// built by ExtractCone with keepAllPis so every split shares the same
// PI ordering as the source.
func (n *Ntk) SplitOutputs() []*Ntk {
	out := make([]*Ntk, len(n.Pos))
	for i := range n.Pos {
		out[i] = n.ExtractCone(i, true)
	}
	return out
}
