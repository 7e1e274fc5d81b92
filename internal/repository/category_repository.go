package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sam-Cowman/E-Commerce/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// List retrieves all categories with their products expanded.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, category_name
		FROM categories
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.CategoryName); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Products = []model.Product{}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	productsByCategory, err := r.productsByCategory(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if ps, ok := productsByCategory[categories[i].ID]; ok {
			categories[i].Products = ps
		}
	}

	return categories, nil
}

// GetByID retrieves a single category with its products expanded.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `
		SELECT id, category_name
		FROM categories
		WHERE id = $1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.CategoryName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	productsByCategory, err := r.productsByCategory(ctx, &id)
	if err != nil {
		return nil, err
	}
	c.Products = productsByCategory[id]
	if c.Products == nil {
		c.Products = []model.Product{}
	}

	return &c, nil
}

// Create inserts a new category.
func (r *categoryRepository) Create(ctx context.Context, name string) (*model.Category, error) {
	query := `
		INSERT INTO categories (category_name)
		VALUES ($1)
		RETURNING id, category_name
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, name).Scan(&c.ID, &c.CategoryName)
	if err != nil {
		r.logger.Error().Err(err).Str("category_name", name).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", translateError(err))
	}

	r.logger.Debug().Int64("category_id", c.ID).Msg("category created successfully")
	return &c, nil
}

// Update renames a category and returns the number of rows affected.
func (r *categoryRepository) Update(ctx context.Context, id int64, name string) (int64, error) {
	query := `
		UPDATE categories
		SET category_name = $1
		WHERE id = $2
	`

	tag, err := r.pool.Exec(ctx, query, name, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to update category")
		return 0, fmt.Errorf("failed to update category: %w", translateError(err))
	}

	return tag.RowsAffected(), nil
}

// Delete removes a category. Products referencing it keep their rows with
// category_id set to NULL by the schema.
func (r *categoryRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM categories WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return 0, fmt.Errorf("failed to delete category: %w", translateError(err))
	}

	return tag.RowsAffected(), nil
}

// productsByCategory loads products grouped by category id. With a non-nil
// id it restricts the query to that category.
func (r *categoryRepository) productsByCategory(ctx context.Context, categoryID *int64) (map[int64][]model.Product, error) {
	query := `
		SELECT id, product_name, price, stock, category_id
		FROM products
		WHERE category_id IS NOT NULL
	`
	args := []any{}
	if categoryID != nil {
		query += ` AND category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query category products")
		return nil, fmt.Errorf("failed to query category products: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]model.Product)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		grouped[*p.CategoryID] = append(grouped[*p.CategoryID], p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return grouped, nil
}
