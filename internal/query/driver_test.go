package query

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvgandhi/sixdegrees/internal/domain"
	"github.com/dhruvgandhi/sixdegrees/internal/moviegraph"
)

// fixtureGraph builds a 10-node graph (movies 11..20 of a 30-movie list)
// with a two-way chain 0 <-> 1 <-> 2 and a one-way edge 0 -> 4. Nodes 5..9
// stay isolated.
func fixtureGraph(t *testing.T) (*moviegraph.Graph, []domain.MovieRecord) {
	t.Helper()

	movies := make([]domain.MovieRecord, 30)
	for i := range movies {
		movies[i] = domain.MovieRecord{ID: uint32(i + 1), Title: fmt.Sprintf("M%d", i+1)}
	}

	filler := domain.RatingRecord{UserID: 1, MovieID: 0, Score: 1.0}
	var ratings []domain.RatingRecord
	for i := 0; i < 10; i++ {
		ratings = append(ratings, filler)
	}
	ratings = append(ratings,
		domain.RatingRecord{UserID: 2, MovieID: 1, Score: 4.0}, // 0 -> 1
		domain.RatingRecord{UserID: 1, MovieID: 2, Score: 4.0}, // 1 -> 0
		domain.RatingRecord{UserID: 3, MovieID: 2, Score: 3.5}, // 1 -> 2
		domain.RatingRecord{UserID: 2, MovieID: 3, Score: 3.5}, // 2 -> 1
		domain.RatingRecord{UserID: 5, MovieID: 1, Score: 2.0}, // 0 -> 4
	)
	for i := 0; i < 10; i++ {
		ratings = append(ratings, filler)
	}

	g := moviegraph.Build(movies, ratings)
	require.Equal(t, 10, g.NodeCount())
	require.Equal(t, 5, g.EdgeCount())
	return g, movies
}

func TestSampleIDsDeterministicAndDistinct(t *testing.T) {
	g, movies := fixtureGraph(t)

	a := New(g, movies, rand.New(rand.NewSource(7)), Config{SampleSize: 5}).SampleIDs()
	b := New(g, movies, rand.New(rand.NewSource(7)), Config{SampleSize: 5}).SampleIDs()

	require.Len(t, a, 5)
	assert.Equal(t, a, b, "identical seeds draw identical samples")

	seen := make(map[uint32]bool, len(a))
	for _, id := range a {
		assert.False(t, seen[id], "duplicate id %d in sample", id)
		seen[id] = true
	}
}

func TestSampleIDsSmallerPopulation(t *testing.T) {
	g, movies := fixtureGraph(t)

	ids := New(g, movies[:3], rand.New(rand.NewSource(1)), Config{SampleSize: 20}).SampleIDs()
	assert.Len(t, ids, 3, "sample cannot exceed the population")
}

func TestCandidatesFilterPositions(t *testing.T) {
	g, movies := fixtureGraph(t)
	d := New(g, movies, rand.New(rand.NewSource(1)), Config{})

	// Node count is 10, so ids above 10 (positions >= 10) are discarded.
	positions := d.candidates([]uint32{0, 1, 10, 11, 30})
	assert.Equal(t, []int{0, 9}, positions)
}

func TestRunSerialAndParallelAgree(t *testing.T) {
	g, movies := fixtureGraph(t)

	serialDriver := New(g, movies, rand.New(rand.NewSource(99)), Config{SampleSize: 8, Workers: 1})
	parallelDriver := New(g, movies, rand.New(rand.NewSource(99)), Config{SampleSize: 8, Workers: 4})

	serial, err := serialDriver.Run(context.Background())
	require.NoError(t, err)
	parallel, err := parallelDriver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestRunCoversAllUnorderedPairs(t *testing.T) {
	g, movies := fixtureGraph(t)
	// Sample the whole population; 10 candidates yield 45 unordered pairs.
	d := New(g, movies, rand.New(rand.NewSource(3)), Config{SampleSize: len(movies)})

	results, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 45)

	seen := make(map[[2]int]bool, len(results))
	for _, r := range results {
		require.NotEqual(t, r.Start, r.End)
		key := [2]int{r.Start, r.End}
		require.False(t, seen[key], "pair %v repeated", key)
		seen[key] = true
	}
}

func TestRunFindsKnownPaths(t *testing.T) {
	g, movies := fixtureGraph(t)
	d := New(g, movies, rand.New(rand.NewSource(3)), Config{SampleSize: len(movies)})

	results, err := d.Run(context.Background())
	require.NoError(t, err)

	byPair := make(map[[2]int]domain.PathResult, len(results))
	for _, r := range results {
		byPair[[2]int{r.Start, r.End}] = r
	}

	// The 0 <-> 2 chain is two-way, so either sample orientation finds it.
	chain, ok := lookupEither(byPair, 0, 2)
	require.True(t, ok)
	require.True(t, chain.Found)
	assert.Equal(t, 2, chain.Hops())
	assert.Equal(t, chain.Start, chain.Nodes[0].Position)
	assert.Equal(t, chain.End, chain.Nodes[len(chain.Nodes)-1].Position)

	isolated, ok := lookupEither(byPair, 5, 6)
	require.True(t, ok)
	assert.False(t, isolated.Found)
	assert.Equal(t, -1, isolated.Hops())
}

// lookupEither fetches the result for an unordered pair, whichever
// orientation the sample order produced.
func lookupEither(byPair map[[2]int]domain.PathResult, a, b int) (domain.PathResult, bool) {
	if r, ok := byPair[[2]int{a, b}]; ok {
		return r, true
	}
	r, ok := byPair[[2]int{b, a}]
	return r, ok
}

func TestReportFormat(t *testing.T) {
	g, movies := fixtureGraph(t)

	results := []domain.PathResult{
		{
			Start: 0, End: 2, Found: true,
			Nodes: []domain.PathNode{
				{Position: 0, Title: "M11"},
				{Position: 1, Title: "M12"},
				{Position: 2, Title: "M13"},
			},
		},
		{Start: 5, End: 6},
	}

	var buf bytes.Buffer
	Report(&buf, len(movies), 23, g, results)
	out := buf.String()

	assert.Contains(t, out, "Number of movies: 30")
	assert.Contains(t, out, "Number of ratings: 23")
	assert.Contains(t, out, "Total number of nodes: 10")
	assert.Contains(t, out, "Total number of edges: 5")
	assert.Contains(t, out, "[+] Shortest path between M11 and M13:\nM11\nM12\nM13\n")
	assert.Contains(t, out, "[-] No path found between M16 and M17")
}
