package moviegraph

// ShortestPath runs a breadth-first search from start over outgoing edges
// and returns the fewest-hops node sequence to end, inclusive of both
// endpoints. Every edge counts one hop regardless of its score. The second
// return is false when end is unreachable from start or either position is
// invalid. start == end yields the single-element path [start].
//
// Each call allocates fresh traversal state, so concurrent queries over
// the same graph need no coordination.
func ShortestPath(g *Graph, start, end int) ([]int, bool) {
	if !g.Valid(start) || !g.Valid(end) {
		return nil, false
	}

	// parent[n] is the node that first discovered n; first discovery wins,
	// which under BFS order makes the predecessor chain a shortest path.
	parent := make([]int, g.NodeCount())
	discovered := make([]bool, g.NodeCount())
	for i := range parent {
		parent[i] = -1
	}

	queue := []int{start}
	discovered[start] = true

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if node == end {
			return reconstruct(parent, start, end), true
		}

		for _, next := range g.Neighbors(node) {
			if discovered[next] {
				continue
			}
			discovered[next] = true
			parent[next] = node
			queue = append(queue, next)
		}
	}

	return nil, false
}

// reconstruct walks predecessor links from end back to start and reverses
// the result into start-to-end order. start is discovered at
// initialization and never assigned a parent, so the walk terminates even
// when the graph cycles back to start.
func reconstruct(parent []int, start, end int) []int {
	path := []int{end}
	for current := end; current != start; {
		current = parent[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
