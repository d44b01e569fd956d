package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteDataset serializes the dataset into movies.csv and ratings.csv
// under the provided directory, headerless to match the loader.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	moviesPath := filepath.Join(dir, "movies.csv")
	movieRows := make([][]string, len(dataset.Movies))
	for i, m := range dataset.Movies {
		movieRows[i] = []string{
			strconv.FormatUint(uint64(m.ID), 10),
			m.Title,
		}
	}
	if err := writeCSV(moviesPath, movieRows); err != nil {
		return err
	}

	ratingsPath := filepath.Join(dir, "ratings.csv")
	ratingRows := make([][]string, len(dataset.Ratings))
	for i, r := range dataset.Ratings {
		ratingRows[i] = []string{
			strconv.FormatUint(uint64(r.UserID), 10),
			strconv.FormatUint(uint64(r.MovieID), 10),
			strconv.FormatFloat(float64(r.Score), 'f', 1, 32),
		}
	}
	return writeCSV(ratingsPath, ratingRows)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}
