package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values. Values are read from
// an optional YAML file first, then overridden by environment variables.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Graph   GraphConfig   `yaml:"graph"`
	Query   QueryConfig   `yaml:"query"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig describes where movie and rating records come from.
type SourceConfig struct {
	Kind            string `yaml:"kind"` // csv|neo4j
	MoviesPath      string `yaml:"movies_path"`
	RatingsPath     string `yaml:"ratings_path"`
	MaxMovies       int    `yaml:"max_movies"`
	MaxRatedMovieID int    `yaml:"max_rated_movie_id"`
}

// GraphConfig describes connectivity to the movie catalog graph database,
// used only when the source kind is neo4j.
type GraphConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int    `yaml:"max_connections"`
}

// QueryConfig governs the sampling query driver.
type QueryConfig struct {
	SampleSize int   `yaml:"sample_size"`
	Workers    int   `yaml:"workers"`
	Seed       int64 `yaml:"seed"` // zero means time-based
}

// HTTPConfig governs the query API server.
type HTTPConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	AllowedOriginsCSV string        `yaml:"allowed_origins"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // text|json
	IncludeCaller bool   `yaml:"include_caller"`
}

const (
	defaultSourceKind      = "csv"
	defaultMoviesPath      = "data/movies.csv"
	defaultRatingsPath     = "data/ratings.csv"
	defaultMaxMovies       = 2000
	defaultMaxRatedMovieID = 100
	defaultSampleSize      = 20
	defaultWorkers         = 1
	defaultHost            = "0.0.0.0"
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"
	defaultGraphSessions   = 10
)

func defaults() Config {
	return Config{
		Source: SourceConfig{
			Kind:            defaultSourceKind,
			MoviesPath:      defaultMoviesPath,
			RatingsPath:     defaultRatingsPath,
			MaxMovies:       defaultMaxMovies,
			MaxRatedMovieID: defaultMaxRatedMovieID,
		},
		Graph: GraphConfig{
			MaxConnections: defaultGraphSessions,
		},
		Query: QueryConfig{
			SampleSize: defaultSampleSize,
			Workers:    defaultWorkers,
		},
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
	}
}

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := defaults()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML configuration file, then applies environment
// overrides on top of it.
func LoadFile(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Source.Kind = valueOrDefault("SOURCE_KIND", cfg.Source.Kind)
	cfg.Source.MoviesPath = valueOrDefault("MOVIES_PATH", cfg.Source.MoviesPath)
	cfg.Source.RatingsPath = valueOrDefault("RATINGS_PATH", cfg.Source.RatingsPath)
	cfg.Source.MaxMovies = parseIntWithDefault("MOVIE_LIMIT", cfg.Source.MaxMovies)
	cfg.Source.MaxRatedMovieID = parseIntWithDefault("RATED_MOVIE_ID_MAX", cfg.Source.MaxRatedMovieID)

	cfg.Graph.URI = valueOrDefault("GRAPH_URI", cfg.Graph.URI)
	cfg.Graph.Database = valueOrDefault("GRAPH_DATABASE", cfg.Graph.Database)
	cfg.Graph.Username = valueOrDefault("GRAPH_USERNAME", cfg.Graph.Username)
	cfg.Graph.Password = valueOrDefault("GRAPH_PASSWORD", cfg.Graph.Password)
	cfg.Graph.MaxConnections = parseIntWithDefault("GRAPH_MAX_CONNECTIONS", cfg.Graph.MaxConnections)

	cfg.Query.SampleSize = parseIntWithDefault("QUERY_SAMPLE_SIZE", cfg.Query.SampleSize)
	cfg.Query.Workers = parseIntWithDefault("QUERY_WORKERS", cfg.Query.Workers)
	if v := os.Getenv("QUERY_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid QUERY_SEED value %q: %w", v, err)
		}
		cfg.Query.Seed = seed
	}

	cfg.HTTP.Host = valueOrDefault("SERVER_HOST", cfg.HTTP.Host)
	port, err := parsePort("SERVER_PORT", cfg.HTTP.Port)
	if err != nil {
		return err
	}
	cfg.HTTP.Port = port

	for _, override := range []struct {
		key    string
		target *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
	} {
		if v := os.Getenv(override.key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", override.key, err)
			}
			*override.target = d
		}
	}
	cfg.HTTP.AllowedOriginsCSV = valueOrDefault("SERVER_ALLOWED_ORIGINS", cfg.HTTP.AllowedOriginsCSV)

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)

	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
