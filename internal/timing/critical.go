package timing

// CriticalPath walks the network within a slack window: SlackMax =
// Delay * Window/100; starting from every CO driver
// with slack <= SlackMax, walk fanins whose slack is also <= SlackMax,
// reporting visited objects in reverse topological order.
func (m *Model) CriticalPath(windowPercent float64) []int {
	n := m.N
	delay := -inf
	for _, id := range n.Pos {
		if w := m.Arrival[id].Worst(); w > delay {
			delay = w
		}
	}
	slackMax := delay * windowPercent / 100.0

	visited := make(map[int]bool)
	var visit func(id int)
	visit = func(id int) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, fi := range n.Obj(id).Fanins {
			if m.Slack(fi) <= slackMax {
				visit(fi)
			}
		}
	}

	for _, id := range n.Pos {
		driver := n.Obj(id).Fanins[0]
		if m.Slack(driver) <= slackMax {
			visited[id] = true
			visit(driver)
		}
	}

	full := make([]int, 0, len(n.Pis)+len(n.TopoOrder())+len(n.Pos))
	full = append(full, n.Pis...)
	full = append(full, n.TopoOrder()...)
	full = append(full, n.Pos...)

	var result []int
	for _, id := range full {
		if visited[id] {
			result = append(result, id)
		}
	}
	// reverse
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}
