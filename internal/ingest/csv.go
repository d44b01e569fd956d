// Package ingest loads movie and rating records from their external
// sources. Malformed rows are logged and skipped so a partially corrupt
// dataset still produces a usable record sequence; only a missing or
// unreadable source is an error.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/dhruvgandhi/sixdegrees/internal/domain"
)

// Limits bound how much of each dataset is loaded.
type Limits struct {
	// MaxMovies stops movie loading after this many rows have been
	// consumed, well-formed or not. Zero or negative means unlimited.
	MaxMovies int
	// MaxRatedMovieID keeps only ratings whose movie identifier is at or
	// below this value. Zero means unlimited.
	MaxRatedMovieID uint32
}

// DefaultLimits mirrors the dataset sizes the analysis was tuned for.
func DefaultLimits() Limits {
	return Limits{MaxMovies: 2000, MaxRatedMovieID: 100}
}

// LoadMovies reads headerless id,title rows from the CSV file at path.
func LoadMovies(path string, limits Limits, logger *slog.Logger) ([]domain.MovieRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open movies %s: %w", path, err)
	}
	defer file.Close()
	return ReadMovies(file, limits, logger)
}

// LoadRatings reads headerless user_id,movie_id,score rows from the CSV
// file at path.
func LoadRatings(path string, limits Limits, logger *slog.Logger) ([]domain.RatingRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratings %s: %w", path, err)
	}
	defer file.Close()
	return ReadRatings(file, limits, logger)
}

// ReadMovies parses movie rows from r, stopping at EOF or the movie cap.
func ReadMovies(r io.Reader, limits Limits, logger *slog.Logger) ([]domain.MovieRecord, error) {
	reader := newRowReader(r)

	var movies []domain.MovieRecord
	for line := 1; limits.MaxMovies <= 0 || line <= limits.MaxMovies; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("skipping unreadable movie row", "line", line, "error", err)
			continue
		}
		if len(row) < 2 {
			logger.Warn("skipping short movie row", "line", line, "fields", len(row))
			continue
		}
		id, err := strconv.ParseUint(row[0], 10, 32)
		if err != nil {
			logger.Warn("skipping movie row with bad id", "line", line, "value", row[0])
			continue
		}
		movies = append(movies, domain.MovieRecord{ID: uint32(id), Title: row[1]})
	}
	return movies, nil
}

// ReadRatings parses rating rows from r, keeping only rows whose movie
// identifier passes the rated-movie filter.
func ReadRatings(r io.Reader, limits Limits, logger *slog.Logger) ([]domain.RatingRecord, error) {
	reader := newRowReader(r)

	var ratings []domain.RatingRecord
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("skipping unreadable rating row", "line", line, "error", err)
			continue
		}
		if len(row) < 3 {
			logger.Warn("skipping short rating row", "line", line, "fields", len(row))
			continue
		}
		userID, err := strconv.ParseUint(row[0], 10, 32)
		if err != nil {
			logger.Warn("skipping rating row with bad user id", "line", line, "value", row[0])
			continue
		}
		movieID, err := strconv.ParseUint(row[1], 10, 32)
		if err != nil {
			logger.Warn("skipping rating row with bad movie id", "line", line, "value", row[1])
			continue
		}
		score, err := strconv.ParseFloat(row[2], 32)
		if err != nil {
			logger.Warn("skipping rating row with bad score", "line", line, "value", row[2])
			continue
		}
		if limits.MaxRatedMovieID > 0 && uint32(movieID) > limits.MaxRatedMovieID {
			continue
		}
		ratings = append(ratings, domain.RatingRecord{
			UserID:  uint32(userID),
			MovieID: uint32(movieID),
			Score:   float32(score),
		})
	}
	return ratings, nil
}

func newRowReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader
}
