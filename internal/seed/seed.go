package seed

import (
	"context"
	"fmt"

	"github.com/Sam-Cowman/E-Commerce/internal/model"
	"github.com/Sam-Cowman/E-Commerce/internal/repository"

	"github.com/rs/zerolog"
)

// Reconciler applies a product's desired tag set.
type Reconciler interface {
	Reconcile(ctx context.Context, productID int64, desiredTagIDs []int64) error
}

// Seeder applies seed data through the repositories so that seeded rows go
// through the same write paths as API traffic.
type Seeder struct {
	categories repository.CategoryRepository
	tags       repository.TagRepository
	products   repository.ProductRepository
	reconciler Reconciler
	logger     zerolog.Logger
}

// NewSeeder creates a new Seeder.
func NewSeeder(
	categories repository.CategoryRepository,
	tags repository.TagRepository,
	products repository.ProductRepository,
	reconciler Reconciler,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		categories: categories,
		tags:       tags,
		products:   products,
		reconciler: reconciler,
		logger:     logger.With().Str("component", "seeder").Logger(),
	}
}

// Apply inserts the seed data. Categories and tags go in first so products
// can reference them by name.
func (s *Seeder) Apply(ctx context.Context, data *Data) error {
	categoryIDs := make(map[string]int64, len(data.Categories))
	for _, c := range data.Categories {
		created, err := s.categories.Create(ctx, c.CategoryName)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.CategoryName, err)
		}
		categoryIDs[created.CategoryName] = created.ID
	}
	s.logger.Info().Int("count", len(data.Categories)).Msg("seeded categories")

	tagIDs := make(map[string]int64, len(data.Tags))
	for _, t := range data.Tags {
		created, err := s.tags.Create(ctx, t.TagName)
		if err != nil {
			return fmt.Errorf("failed to seed tag %q: %w", t.TagName, err)
		}
		tagIDs[created.TagName] = created.ID
	}
	s.logger.Info().Int("count", len(data.Tags)).Msg("seeded tags")

	for _, p := range data.Products {
		product := &model.Product{
			ProductName: p.ProductName,
			Price:       p.Price,
			Stock:       p.Stock,
		}
		if product.Stock == 0 {
			product.Stock = model.DefaultStock
		}
		if p.Category != "" {
			id, ok := categoryIDs[p.Category]
			if !ok {
				return fmt.Errorf("product %q references unknown category %q", p.ProductName, p.Category)
			}
			product.CategoryID = &id
		}

		created, err := s.products.Create(ctx, product)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.ProductName, err)
		}

		if len(p.Tags) > 0 {
			desired := make([]int64, 0, len(p.Tags))
			for _, name := range p.Tags {
				id, ok := tagIDs[name]
				if !ok {
					return fmt.Errorf("product %q references unknown tag %q", p.ProductName, name)
				}
				desired = append(desired, id)
			}
			if err := s.reconciler.Reconcile(ctx, created.ID, desired); err != nil {
				return fmt.Errorf("failed to seed tags for product %q: %w", p.ProductName, err)
			}
		}
	}
	s.logger.Info().Int("count", len(data.Products)).Msg("seeded products")

	return nil
}
