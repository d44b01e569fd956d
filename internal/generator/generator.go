package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/dhruvgandhi/sixdegrees/internal/domain"
)

// Dataset contains the generated movie and rating rows.
type Dataset struct {
	Movies  []domain.MovieRecord
	Ratings []domain.RatingRecord
}

// Generator produces synthetic movie and rating datasets shaped like the
// real CSV inputs: sequential movie identifiers, noisy rating coverage.
type Generator struct {
	cfg       Config
	rand      *rand.Rand
	fragments titleFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumMovies <= 0 {
		cfg.NumMovies = DefaultConfig().NumMovies
	}
	if cfg.NumRatings <= 0 {
		cfg.NumRatings = DefaultConfig().NumRatings
	}
	if cfg.MaxUserID == 0 {
		cfg.MaxUserID = DefaultConfig().MaxUserID
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:       cfg,
		rand:      rand.New(rand.NewSource(cfg.Seed)),
		fragments: defaultTitleFragments(),
	}
}

// Generate synthesises movies and ratings. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	movies := make([]domain.MovieRecord, g.cfg.NumMovies)
	for i := range movies {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		movies[i] = domain.MovieRecord{
			ID:    uint32(i + 1),
			Title: g.randomTitle(),
		}
	}

	ratings := make([]domain.RatingRecord, g.cfg.NumRatings)
	for i := range ratings {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		ratings[i] = domain.RatingRecord{
			UserID:  1 + uint32(g.rand.Intn(int(g.cfg.MaxUserID))),
			MovieID: 1 + uint32(g.rand.Intn(g.cfg.NumMovies)),
			Score:   g.randomScore(),
		}
	}

	return Dataset{Movies: movies, Ratings: ratings}, nil
}

// randomScore picks a half-star score between 0.5 and 5.0.
func (g *Generator) randomScore() float32 {
	return 0.5 * float32(1+g.rand.Intn(10))
}

func (g *Generator) randomTitle() string {
	year := 1950 + g.rand.Intn(70)
	adjective := g.fragments.adjectives[g.rand.Intn(len(g.fragments.adjectives))]
	noun := g.fragments.nouns[g.rand.Intn(len(g.fragments.nouns))]
	return fmt.Sprintf("The %s %s (%d)", adjective, noun, year)
}

type titleFragments struct {
	adjectives []string
	nouns      []string
}

func defaultTitleFragments() titleFragments {
	return titleFragments{
		adjectives: []string{"Crimson", "Silent", "Last", "Hidden", "Broken", "Electric", "Forgotten", "Midnight", "Golden", "Savage", "Paper", "Hollow"},
		nouns:      []string{"Harbor", "Summer", "Detective", "Empire", "Garden", "Voyage", "Orchid", "Frontier", "Mirror", "Carnival", "Station", "Echo"},
	}
}
