package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhruvgandhi/sixdegrees/internal/config"
	"github.com/dhruvgandhi/sixdegrees/internal/domain"
	"github.com/dhruvgandhi/sixdegrees/internal/graph"
	"github.com/dhruvgandhi/sixdegrees/internal/ingest"
	"github.com/dhruvgandhi/sixdegrees/internal/logging"
	"github.com/dhruvgandhi/sixdegrees/internal/moviegraph"
	"github.com/dhruvgandhi/sixdegrees/internal/query"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to a YAML config file (env vars still override)")
		moviesPath  = flag.String("movies", "", "Path to movies.csv (overrides config)")
		ratingsPath = flag.String("ratings", "", "Path to ratings.csv (overrides config)")
		samples     = flag.Int("samples", 0, "Number of movie identifiers to sample (overrides config)")
		workers     = flag.Int("workers", 0, "Number of concurrent shortest-path queries (overrides config)")
		seed        = flag.Int64("seed", 0, "Random seed for sampling (overrides config; 0 means time-based)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg, *moviesPath, *ratingsPath, *samples, *workers, *seed)

	logger := logging.New(cfg.Logging).With("component", "sixdegrees")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	movies, ratings, err := loadRecords(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to load records", "error", err)
		os.Exit(1)
	}
	logger.Info("records loaded", "movies", len(movies), "ratings", len(ratings))

	start := time.Now()
	g := moviegraph.Build(movies, ratings)
	logger.Info("graph built",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", time.Since(start).String(),
	)

	querySeed := cfg.Query.Seed
	if querySeed == 0 {
		querySeed = time.Now().UnixNano()
	}
	driver := query.New(g, movies, rand.New(rand.NewSource(querySeed)), query.Config{
		SampleSize: cfg.Query.SampleSize,
		Workers:    cfg.Query.Workers,
	})

	results, err := driver.Run(ctx)
	if err != nil {
		logger.Error("query run failed", "error", err)
		os.Exit(1)
	}

	query.Report(os.Stdout, len(movies), len(ratings), g, results)
	logger.Info("analysis complete", "pairs", len(results), "duration", time.Since(start).String())
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func applyFlags(cfg *config.Config, moviesPath, ratingsPath string, samples, workers int, seed int64) {
	if moviesPath != "" {
		cfg.Source.MoviesPath = moviesPath
	}
	if ratingsPath != "" {
		cfg.Source.RatingsPath = ratingsPath
	}
	if samples > 0 {
		cfg.Query.SampleSize = samples
	}
	if workers > 0 {
		cfg.Query.Workers = workers
	}
	if seed != 0 {
		cfg.Query.Seed = seed
	}
}

func loadRecords(ctx context.Context, logger *slog.Logger, cfg config.Config) ([]domain.MovieRecord, []domain.RatingRecord, error) {
	limits := ingest.Limits{
		MaxMovies:       cfg.Source.MaxMovies,
		MaxRatedMovieID: uint32(cfg.Source.MaxRatedMovieID),
	}

	switch cfg.Source.Kind {
	case "neo4j":
		client, err := buildGraphClient(ctx, logger, cfg)
		if err != nil {
			return nil, nil, err
		}
		defer func() {
			if err := client.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}()

		source := ingest.NewNeo4jSource(client, limits, logger)
		movies, err := source.Movies(ctx)
		if err != nil {
			return nil, nil, err
		}
		ratings, err := source.Ratings(ctx)
		if err != nil {
			return nil, nil, err
		}
		return movies, ratings, nil

	default:
		movies, err := ingest.LoadMovies(cfg.Source.MoviesPath, limits, logger)
		if err != nil {
			return nil, nil, err
		}
		ratings, err := ingest.LoadRatings(cfg.Source.RatingsPath, limits, logger)
		if err != nil {
			return nil, nil, err
		}
		return movies, ratings, nil
	}
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	client, err := graph.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}
