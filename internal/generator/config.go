package generator

// Config drives the synthetic dataset generator.
type Config struct {
	NumMovies  int
	NumRatings int
	MaxUserID  uint32
	Seed       int64
}

// DefaultConfig returns dataset sizes matching what the analysis loads.
func DefaultConfig() Config {
	return Config{
		NumMovies:  2000,
		NumRatings: 20000,
		MaxUserID:  500,
		Seed:       42,
	}
}
