// Package seed loads catalogue seed data and applies it through the
// repositories and the tag reconciler.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Data is the shape of a seed file. Products reference their category and
// tags by name so the file stays free of generated ids.
type Data struct {
	Categories []CategorySeed `json:"categories"`
	Tags       []TagSeed      `json:"tags"`
	Products   []ProductSeed  `json:"products"`
}

// CategorySeed seeds one category.
type CategorySeed struct {
	CategoryName string `json:"category_name"`
}

// TagSeed seeds one tag.
type TagSeed struct {
	TagName string `json:"tag_name"`
}

// ProductSeed seeds one product with optional category and tag references.
type ProductSeed struct {
	ProductName string   `json:"product_name"`
	Price       float64  `json:"price"`
	Stock       int32    `json:"stock"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Loader reads a seed file from some source.
type Loader interface {
	// Load reads and parses the seed data at the given path or key.
	Load(ctx context.Context, path string) (*Data, error)
}

// fileLoader implements Loader for local seed files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a JSON seed file from the local file system.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Data, error) {
	l.logger.Info().Str("file", filePath).Msg("loading seed file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", filePath, err)
	}
	defer file.Close()

	var data Data
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to parse seed file")
		return nil, fmt.Errorf("failed to parse seed file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("categories", len(data.Categories)).
		Int("tags", len(data.Tags)).
		Int("products", len(data.Products)).
		Msg("seed file loaded successfully")

	return &data, nil
}
