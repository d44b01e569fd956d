package query

import (
	"fmt"
	"io"

	"github.com/dhruvgandhi/sixdegrees/internal/domain"
	"github.com/dhruvgandhi/sixdegrees/internal/moviegraph"
)

// Report writes the dataset and graph counts followed by one block per
// query result: either the full title sequence of the found path or an
// explicit no-path line naming both endpoints.
func Report(w io.Writer, movieCount, ratingCount int, g *moviegraph.Graph, results []domain.PathResult) {
	fmt.Fprintf(w, "Number of movies: %d\n", movieCount)
	fmt.Fprintf(w, "Number of ratings: %d\n", ratingCount)
	fmt.Fprintf(w, "Total number of nodes: %d\n", g.NodeCount())
	fmt.Fprintf(w, "Total number of edges: %d\n", g.EdgeCount())

	fmt.Fprintf(w, "\n-> Six Degrees of Separation:\n\n")

	for _, result := range results {
		startTitle := g.Title(result.Start)
		endTitle := g.Title(result.End)
		if !result.Found {
			fmt.Fprintf(w, "[-] No path found between %s and %s\n", startTitle, endTitle)
			continue
		}
		fmt.Fprintf(w, "[+] Shortest path between %s and %s:\n", startTitle, endTitle)
		for _, node := range result.Nodes {
			fmt.Fprintln(w, node.Title)
		}
	}
}
