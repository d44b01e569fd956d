package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dhruvgandhi/sixdegrees/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		movies    = flag.Int("movies", cfg.NumMovies, "number of movies to generate")
		ratings   = flag.Int("ratings", cfg.NumRatings, "number of ratings to generate")
		maxUser   = flag.Uint("max-user-id", uint(cfg.MaxUserID), "highest user identifier assigned to ratings")
		seed      = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir = flag.String("output-dir", "data", "directory to write movies.csv and ratings.csv")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumMovies:  *movies,
		NumRatings: *ratings,
		MaxUserID:  uint32(*maxUser),
		Seed:       *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d movies and %d ratings into %s\n", len(dataset.Movies), len(dataset.Ratings), *outputDir)
}
