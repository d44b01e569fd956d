// Package query samples movie identifiers and runs pairwise shortest-path
// queries over a built graph.
package query

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/dhruvgandhi/sixdegrees/internal/domain"
	"github.com/dhruvgandhi/sixdegrees/internal/moviegraph"
)

// Config controls sampling and execution of the pairwise queries.
type Config struct {
	// SampleSize is how many distinct movie identifiers to draw.
	SampleSize int
	// Workers bounds concurrent shortest-path queries. The graph is shared
	// read-only and the engine keeps per-call state, so any value is safe.
	Workers int
}

const (
	defaultSampleSize = 20
	defaultWorkers    = 1
)

// Driver converts sampled movie identifiers to node positions and queries
// every unordered pair among the valid ones.
type Driver struct {
	graph  *moviegraph.Graph
	movies []domain.MovieRecord
	rng    *rand.Rand
	cfg    Config
}

// New builds a Driver. The randomness source is injected so runs can be
// made deterministic.
func New(g *moviegraph.Graph, movies []domain.MovieRecord, rng *rand.Rand, cfg Config) *Driver {
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = defaultSampleSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Driver{graph: g, movies: movies, rng: rng, cfg: cfg}
}

// SampleIDs draws up to SampleSize movie identifiers without replacement
// from the loaded movie set.
func (d *Driver) SampleIDs() []uint32 {
	ids := make([]uint32, len(d.movies))
	for i, m := range d.movies {
		ids[i] = m.ID
	}
	d.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	if len(ids) > d.cfg.SampleSize {
		ids = ids[:d.cfg.SampleSize]
	}
	return ids
}

// candidates converts identifiers to node positions via id-1, discarding
// identifiers of zero and positions beyond the constructed node range.
func (d *Driver) candidates(ids []uint32) []int {
	var positions []int
	for _, id := range ids {
		if id == 0 {
			continue
		}
		pos := int(id) - 1
		if pos >= d.graph.NodeCount() {
			continue
		}
		positions = append(positions, pos)
	}
	return positions
}

// Run samples once and executes a shortest-path query for every unordered
// pair among the surviving candidates. Results come back in pair order
// regardless of the worker count.
func (d *Driver) Run(ctx context.Context) ([]domain.PathResult, error) {
	positions := d.candidates(d.SampleIDs())

	type pair struct{ start, end int }
	var pairs []pair
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			pairs = append(pairs, pair{positions[i], positions[j]})
		}
	}

	results := make([]domain.PathResult, len(pairs))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(d.cfg.Workers)
	for i, p := range pairs {
		i, p := i, p
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = d.query(p.start, p.end)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Driver) query(start, end int) domain.PathResult {
	result := domain.PathResult{Start: start, End: end}

	path, ok := moviegraph.ShortestPath(d.graph, start, end)
	if !ok {
		return result
	}

	result.Found = true
	result.Nodes = make([]domain.PathNode, len(path))
	for i, pos := range path {
		result.Nodes[i] = domain.PathNode{Position: pos, Title: d.graph.Title(pos)}
	}
	return result
}
