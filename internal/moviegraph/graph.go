// Package moviegraph builds an in-memory directed graph from movie and
// rating records and answers fewest-hops queries between its nodes.
package moviegraph

// Graph is a directed graph whose nodes carry movie titles and whose edges
// carry rating scores. A node's sole identity is its position in insertion
// order; no external identifier table is kept. Once built the graph is
// read-only and safe to share across concurrent readers.
type Graph struct {
	titles    []string
	adjacency [][]int
	scores    map[[2]int]float32
}

func newGraph() *Graph {
	return &Graph{scores: make(map[[2]int]float32)}
}

func (g *Graph) addNode(title string) int {
	g.titles = append(g.titles, title)
	g.adjacency = append(g.adjacency, nil)
	return len(g.titles) - 1
}

// addEdge records a directed edge carrying score. It reports false when
// either endpoint is out of range or the ordered (from, to) pair already
// has an edge; the graph holds at most one edge per ordered pair.
func (g *Graph) addEdge(from, to int, score float32) bool {
	if !g.Valid(from) || !g.Valid(to) {
		return false
	}
	key := [2]int{from, to}
	if _, ok := g.scores[key]; ok {
		return false
	}
	g.scores[key] = score
	g.adjacency[from] = append(g.adjacency[from], to)
	return true
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.titles) }

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int { return len(g.scores) }

// Valid reports whether pos names a node in this graph.
func (g *Graph) Valid(pos int) bool { return pos >= 0 && pos < len(g.titles) }

// Title returns the label of the node at pos, or "" for invalid positions.
func (g *Graph) Title(pos int) string {
	if !g.Valid(pos) {
		return ""
	}
	return g.titles[pos]
}

// Neighbors returns the targets of the outgoing edges of pos in edge
// insertion order. The returned slice must not be modified.
func (g *Graph) Neighbors(pos int) []int {
	if !g.Valid(pos) {
		return nil
	}
	return g.adjacency[pos]
}

// HasEdge reports whether a directed edge from -> to exists.
func (g *Graph) HasEdge(from, to int) bool {
	_, ok := g.scores[[2]int{from, to}]
	return ok
}

// Score returns the rating carried by the from -> to edge, if present.
// Scores label edges but never affect traversal cost.
func (g *Graph) Score(from, to int) (float32, bool) {
	s, ok := g.scores[[2]int{from, to}]
	return s, ok
}
