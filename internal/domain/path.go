package domain

// PathNode is one node along a found path.
type PathNode struct {
	Position int
	Title    string
}

// PathResult captures the outcome of a single shortest-path query between
// two node positions.
type PathResult struct {
	Start int
	End   int
	Found bool
	Nodes []PathNode
}

// Hops returns the edge count of the found path, or -1 when no path exists.
func (r PathResult) Hops() int {
	if !r.Found {
		return -1
	}
	return len(r.Nodes) - 1
}
