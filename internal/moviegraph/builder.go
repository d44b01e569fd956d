package moviegraph

import "github.com/dhruvgandhi/sixdegrees/internal/domain"

// Window returns the down-sampling bounds applied to both input sequences
// during construction: the first skip elements are dropped and at most
// take elements are retained. take clamps at zero for short inputs, so a
// sequence with fewer than 20 elements yields an empty window.
func Window(n int) (skip, take int) {
	skip = 10
	take = n - 20
	if take < 0 {
		take = 0
	}
	return skip, take
}

// Build constructs the graph in two passes over windowed inputs: one node
// per retained movie, labeled with its title in sequence order, then one
// edge per retained rating, running from position movie_id-1 to position
// user_id-1 and labeled with the score. Target positions are derived from
// rater identifiers and therefore land in the same node space as movies.
// A rating with a zero identifier, an out-of-range position, or a
// duplicate ordered (source, target) pair contributes nothing. Build never
// fails; identical inputs yield identical graphs.
func Build(movies []domain.MovieRecord, ratings []domain.RatingRecord) *Graph {
	g := newGraph()

	for _, m := range windowed(movies) {
		g.addNode(m.Title)
	}

	for _, r := range windowed(ratings) {
		if r.MovieID == 0 || r.UserID == 0 {
			continue
		}
		g.addEdge(int(r.MovieID)-1, int(r.UserID)-1, r.Score)
	}

	return g
}

func windowed[T any](items []T) []T {
	skip, take := Window(len(items))
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if take < len(items) {
		items = items[:take]
	}
	return items
}
