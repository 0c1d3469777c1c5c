package gia

// dfsMark walks the transitive fanin of every PO driver (plus any extra
// roots) and returns a boolean reached-array sized NumObjs(), together
// with the DFS post-order (children before parents) restricted to AND
// objects — the topological order requires of cleanup and
// reordering.
func (g *GIA) dfsMark(extraRoots []Lit) (reached []bool, order []int) {
	reached = make([]bool, len(g.Objs))
	reached[0] = true // constant is always considered reached
	order = make([]int, 0, len(g.Objs))

	var visit func(id int)
	visit = func(id int) {
		if reached[id] {
			return
		}
		reached[id] = true
		o := &g.Objs[id]
		if o.Kind == KindAnd {
			visit(o.Fanin0.Var())
			visit(o.Fanin1.Var())
			order = append(order, id)
		}
	}

	for _, po := range g.pos {
		visit(g.Objs[po].Fanin0.Var())
	}
	for _, r := range extraRoots {
		visit(r.Var())
	}
	return reached, order
}

// Levels computes the logic level of every object (PI/const = 0, AND =
// 1 + max(fanin levels)).
func (g *GIA) Levels() []int {
	levels := make([]int, len(g.Objs))
	_, order := g.dfsMark(nil)
	for _, id := range order {
		o := &g.Objs[id]
		l0 := levels[o.Fanin0.Var()]
		l1 := levels[o.Fanin1.Var()]
		if l1 > l0 {
			l0 = l1
		}
		levels[id] = l0 + 1
	}
	return levels
}

// DfsOrder returns the AND objects reachable from the POs in
// topological (children-before-parents) order.
func (g *GIA) DfsOrder() []int {
	_, order := g.dfsMark(nil)
	return order
}

// Reorder recomputes and stores the DFS order without otherwise
// mutating the GIA.
func (g *GIA) Reorder() {
	g.dfsOrder = g.DfsOrder()
}
