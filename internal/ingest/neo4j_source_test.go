package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/dhruvgandhi/sixdegrees/internal/graph"
)

func TestNeo4jSourceMovies(t *testing.T) {
	client := graph.NewMemoryClient()
	client.PushReadResult(graph.Result{Records: []graph.Record{
		{"id": int64(1), "title": "Toy Story (1995)"},
		{"id": int64(2), "title": 42}, // mistyped title, skipped
		{"id": int64(3), "title": "Heat (1995)"},
	}})

	source := NewNeo4jSource(client, Limits{MaxMovies: 2000}, discardLogger())
	movies, err := source.Movies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[1].ID != 3 || movies[1].Title != "Heat (1995)" {
		t.Fatalf("unexpected movie: %+v", movies[1])
	}

	calls := client.ReadCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 read call, got %d", len(calls))
	}
	if calls[0].Params["limit"] != 2000 {
		t.Fatalf("expected movie cap in query params, got %v", calls[0].Params["limit"])
	}
}

func TestNeo4jSourceRatings(t *testing.T) {
	client := graph.NewMemoryClient()
	client.PushReadResult(graph.Result{Records: []graph.Record{
		{"userId": int64(1), "movieId": int64(50), "score": 4.5},
		{"userId": "broken", "movieId": int64(50), "score": 3.0}, // skipped
		{"userId": int64(2), "movieId": int64(7), "score": int64(3)},
	}})

	source := NewNeo4jSource(client, Limits{MaxRatedMovieID: 100}, discardLogger())
	ratings, err := source.Ratings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(ratings))
	}
	if ratings[0].Score != 4.5 {
		t.Fatalf("unexpected score: %v", ratings[0].Score)
	}

	calls := client.ReadCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 read call, got %d", len(calls))
	}
	if calls[0].Params["maxMovieId"] != int64(100) {
		t.Fatalf("expected rated-movie cutoff in params, got %v", calls[0].Params["maxMovieId"])
	}
}

func TestNeo4jSourcePropagatesReadErrors(t *testing.T) {
	wantErr := errors.New("bolt connection reset")
	client := graph.NewMemoryClient().WithError(wantErr)

	source := NewNeo4jSource(client, DefaultLimits(), discardLogger())
	if _, err := source.Movies(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
	if _, err := source.Ratings(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}
