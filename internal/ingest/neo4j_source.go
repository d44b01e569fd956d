package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dhruvgandhi/sixdegrees/internal/domain"
	"github.com/dhruvgandhi/sixdegrees/internal/graph"
)

const moviesCypher = `
MATCH (m:Movie)
RETURN m.id AS id, m.title AS title
ORDER BY m.id ASC
LIMIT $limit`

const ratingsCypher = `
MATCH (u:User)-[r:RATED]->(m:Movie)
WHERE $maxMovieId = 0 OR m.id <= $maxMovieId
RETURN u.id AS userId, m.id AS movieId, r.score AS score
ORDER BY u.id ASC, m.id ASC`

// Neo4jSource loads movie and rating records from a movie catalog graph
// database instead of local CSV files. It is read-only: records flow out
// of the database and into the in-memory graph, never back. Records with
// missing or mistyped fields are logged and skipped, matching the CSV
// loader's row policy.
type Neo4jSource struct {
	client graph.Client
	limits Limits
	logger *slog.Logger
}

// NewNeo4jSource wires a record source over the provided graph client.
func NewNeo4jSource(client graph.Client, limits Limits, logger *slog.Logger) *Neo4jSource {
	return &Neo4jSource{client: client, limits: limits, logger: logger}
}

// Movies fetches the movie records, capped like the CSV loader.
func (s *Neo4jSource) Movies(ctx context.Context) ([]domain.MovieRecord, error) {
	limit := s.limits.MaxMovies
	if limit <= 0 {
		limit = int(^uint32(0) >> 1)
	}

	res, err := s.client.ExecuteRead(ctx, moviesCypher, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("read movies: %w", err)
	}

	movies := make([]domain.MovieRecord, 0, len(res.Records))
	for i, rec := range res.Records {
		id, okID := asUint32(rec["id"])
		title, okTitle := rec["title"].(string)
		if !okID || !okTitle {
			s.logger.Warn("skipping malformed movie record", "index", i)
			continue
		}
		movies = append(movies, domain.MovieRecord{ID: id, Title: title})
	}
	return movies, nil
}

// Ratings fetches the rating records, filtered like the CSV loader.
func (s *Neo4jSource) Ratings(ctx context.Context) ([]domain.RatingRecord, error) {
	params := map[string]any{"maxMovieId": int64(s.limits.MaxRatedMovieID)}
	res, err := s.client.ExecuteRead(ctx, ratingsCypher, params)
	if err != nil {
		return nil, fmt.Errorf("read ratings: %w", err)
	}

	ratings := make([]domain.RatingRecord, 0, len(res.Records))
	for i, rec := range res.Records {
		userID, okUser := asUint32(rec["userId"])
		movieID, okMovie := asUint32(rec["movieId"])
		score, okScore := asFloat32(rec["score"])
		if !okUser || !okMovie || !okScore {
			s.logger.Warn("skipping malformed rating record", "index", i)
			continue
		}
		ratings = append(ratings, domain.RatingRecord{
			UserID:  userID,
			MovieID: movieID,
			Score:   score,
		})
	}
	return ratings, nil
}

// asUint32 coerces the integer shapes the Bolt protocol produces.
func asUint32(v any) (uint32, bool) {
	switch n := v.(type) {
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint32(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint32(n), true
	case uint32:
		return n, true
	default:
		return 0, false
	}
}

func asFloat32(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int64:
		return float32(n), true
	default:
		return 0, false
	}
}
