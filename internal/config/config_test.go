package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source.Kind != "csv" {
		t.Fatalf("expected csv source kind, got %q", cfg.Source.Kind)
	}
	if cfg.Source.MaxMovies != 2000 || cfg.Source.MaxRatedMovieID != 100 {
		t.Fatalf("unexpected source limits: %+v", cfg.Source)
	}
	if cfg.Query.SampleSize != 20 {
		t.Fatalf("expected sample size 20, got %d", cfg.Query.SampleSize)
	}
	if cfg.HTTP.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.HTTP.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SOURCE_KIND", "neo4j")
	t.Setenv("GRAPH_URI", "bolt://localhost:7687")
	t.Setenv("QUERY_SAMPLE_SIZE", "5")
	t.Setenv("QUERY_SEED", "42")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source.Kind != "neo4j" {
		t.Fatalf("expected neo4j, got %q", cfg.Source.Kind)
	}
	if cfg.Graph.URI != "bolt://localhost:7687" {
		t.Fatalf("unexpected graph uri: %q", cfg.Graph.URI)
	}
	if cfg.Query.SampleSize != 5 || cfg.Query.Seed != 42 {
		t.Fatalf("unexpected query config: %+v", cfg.Query)
	}
	if cfg.HTTP.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", cfg.HTTP.ShutdownTimeout)
	}
}

func TestLoadInvalidSeed(t *testing.T) {
	t.Setenv("QUERY_SEED", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid seed")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestLoadFileWithEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
source:
  kind: neo4j
  movies_path: /srv/movies.csv
query:
  sample_size: 12
  workers: 8
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("QUERY_SAMPLE_SIZE", "3") // env wins over the file

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source.Kind != "neo4j" || cfg.Source.MoviesPath != "/srv/movies.csv" {
		t.Fatalf("unexpected source config: %+v", cfg.Source)
	}
	if cfg.Query.SampleSize != 3 {
		t.Fatalf("expected env override 3, got %d", cfg.Query.SampleSize)
	}
	if cfg.Query.Workers != 8 {
		t.Fatalf("expected workers 8 from file, got %d", cfg.Query.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Source.RatingsPath != "data/ratings.csv" {
		t.Fatalf("expected default ratings path, got %q", cfg.Source.RatingsPath)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
