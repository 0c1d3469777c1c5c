package ntk

import "fmt"

// TopoOrder returns the internal KindNode objects reachable from the
// POs/latch-fanins, in topological (fanins-before-fanin-user) order.
func (n *Ntk) TopoOrder() []int {
	return n.topoOrder()
}

func (n *Ntk) topoOrder() []int {
	visited := make([]bool, len(n.Objs))
	var order []int
	var visit func(id int)
	visit = func(id int) {
		if visited[id] {
			return
		}
		visited[id] = true
		o := n.Objs[id]
		if o.Kind == KindNode {
			for _, fi := range o.Fanins {
				visit(fi)
			}
			order = append(order, id)
		}
	}
	for _, id := range n.Pos {
		for _, fi := range n.Objs[id].Fanins {
			visit(fi)
		}
	}
	for _, id := range n.Latches {
		for _, fi := range n.Objs[id].Fanins {
			visit(fi)
		}
	}
	return order
}

// Dup duplicates n into a target of type dstType/dstFunc: copy the I/O
// skeleton, walk internal nodes in topological order translating
// fanins through the copy map, then transfer local functions according
// to the source/destination function-tag rule table. Same
// func-tag-to-func-tag copies are defined; any other combination needs
// an explicit conversion pass and is a programmer error here (panic).
func (n *Ntk) Dup(dstType TypeTag, dstFunc FuncTag) *Ntk {
	if n.Func != dstFunc {
		panic(fmt.Sprintf("ntk: Dup cannot auto-convert function tag %s -> %s", n.Func, dstFunc))
	}
	out := New(dstType, dstFunc)
	out.Library = n.Library
	copyMap := make([]int, len(n.Objs))
	for i := range copyMap {
		copyMap[i] = -1
	}

	for _, id := range n.Pis {
		src := n.Objs[id]
		copyMap[id] = out.NewPi(src.Name).ID
	}
	for _, id := range n.Latches {
		src := n.Objs[id]
		// Fanin translated after node copy below; latches reference an
		// internal node or PI, so nodes must be copied first. Record a
		// placeholder; actual AddFanin happens after the node pass.
		o := out.alloc(KindLatch)
		o.Name = src.Name
		o.Init = src.Init
		out.Latches = append(out.Latches, o.ID)
		copyMap[id] = o.ID
	}

	if n.Type == TypeNetlist {
		for _, o := range n.Objs {
			if o.Kind == KindNet && copyMap[o.ID] == -1 {
				copyMap[o.ID] = out.NewNet(o.Name).ID
			}
		}
	}

	for _, id := range n.topoOrder() {
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

	for _, id := range n.Latches {
		src := n.Objs[id]
		compl := false
		if n.Func == FuncAIG {
			compl = src.Compls[0]
		}
		out.AddFanin(copyMap[id], copyMap[src.Fanins[0]], compl)
	}

	for _, id := range n.Pos {
		src := n.Objs[id]
		compl := false
		if n.Func == FuncAIG {
			compl = src.Compls[0]
		}
		out.NewPoCompl(src.Name, copyMap[src.Fanins[0]], compl)
	}

	return out
}

// transferFunction implements per-tag transfer rules.
func transferFunction(src *Ntk, srcObj *Obj, dst *Ntk, dstObj *Obj) {
	switch src.Func {
	case FuncSOP:
		// Go strings are immutable and already share backing storage
		// cheaply, so registering the cube string in the target is a
		// direct copy.
		dstObj.SOP = srcObj.SOP
	case FuncBDD:
		// This core carries no BDD manager beyond the function-tag
		// bookkeeping; the node index is copied as-is, which is correct
		// whenever source and destination share one manager (the common
		// case for same-type dup); Check() does not inspect BDD payloads.
		dstObj.BDDNode = srcObj.BDDNode
	case FuncMapped:
		dstObj.GateName = srcObj.GateName // both Ntks index the same library
	case FuncAIG:
		// AIG-tagged Ntks hold no local-function payload beyond
		// fanins+complement bits, already copied by the caller.
	}
}
