package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dhruvgandhi/sixdegrees/internal/config"
	"github.com/dhruvgandhi/sixdegrees/internal/domain"
	"github.com/dhruvgandhi/sixdegrees/internal/graph"
	"github.com/dhruvgandhi/sixdegrees/internal/ingest"
	"github.com/dhruvgandhi/sixdegrees/internal/logging"
	"github.com/dhruvgandhi/sixdegrees/internal/moviegraph"
	"github.com/dhruvgandhi/sixdegrees/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (env vars still override)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	movies, ratings, err := loadRecords(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to load records", "error", err)
		os.Exit(1)
	}

	// The graph is built once and served read-only for the process lifetime.
	g := moviegraph.Build(movies, ratings)
	logger.Info("graph built", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	apiHandlers := server.NewAPIHandlers(logger, g, server.Stats{
		Movies:  len(movies),
		Ratings: len(ratings),
	})

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.GraphHealthService{Graph: g},
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func loadRecords(ctx context.Context, logger *slog.Logger, cfg config.Config) ([]domain.MovieRecord, []domain.RatingRecord, error) {
	limits := ingest.Limits{
		MaxMovies:       cfg.Source.MaxMovies,
		MaxRatedMovieID: uint32(cfg.Source.MaxRatedMovieID),
	}

	switch cfg.Source.Kind {
	case "neo4j":
		client, err := graph.NewNeo4jClient(ctx, graph.Options{
			URI:            cfg.Graph.URI,
			Database:       cfg.Graph.Database,
			Username:       cfg.Graph.Username,
			Password:       cfg.Graph.Password,
			MaxConnections: cfg.Graph.MaxConnections,
		})
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

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
