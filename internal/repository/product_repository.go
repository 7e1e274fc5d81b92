package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sam-Cowman/E-Commerce/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// List retrieves all products with category and tags expanded.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT p.id, p.product_name, p.price, p.stock, p.category_id,
		       c.category_name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProductWithCategory(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	tagsByProduct, err := r.tagsByProduct(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if ts, ok := tagsByProduct[products[i].ID]; ok {
			products[i].Tags = ts
		}
	}

	return products, nil
}

// GetByID retrieves a single product with category and tags expanded.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT p.id, p.product_name, p.price, p.stock, p.category_id,
		       c.category_name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanProductWithCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	tagsByProduct, err := r.tagsByProduct(ctx, &id)
	if err != nil {
		return nil, err
	}
	p.Tags = tagsByProduct[id]
	if p.Tags == nil {
		p.Tags = []model.Tag{}
	}

	return p, nil
}

// Create inserts a new product row. Tag associations are written separately
// by the reconciler.
func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `
		INSERT INTO products (product_name, price, stock, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_name, price, stock, category_id
	`

	var created model.Product
	err := r.pool.QueryRow(ctx, query,
		product.ProductName, product.Price, product.Stock, product.CategoryID,
	).Scan(&created.ID, &created.ProductName, &created.Price, &created.Stock, &created.CategoryID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_name", product.ProductName).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", translateError(err))
	}

	r.logger.Debug().Int64("product_id", created.ID).Msg("product created successfully")
	return &created, nil
}

// Update applies the non-nil fields of upd and returns the number of rows
// affected.
func (r *productRepository) Update(ctx context.Context, id int64, upd ProductUpdate) (int64, error) {
	var (
		set  []string
		args []any
	)
	argID := 1

	if upd.ProductName != nil {
		set = append(set, fmt.Sprintf("product_name = $%d", argID))
		args = append(args, *upd.ProductName)
		argID++
	}
	if upd.Price != nil {
		set = append(set, fmt.Sprintf("price = $%d", argID))
		args = append(args, *upd.Price)
		argID++
	}
	if upd.Stock != nil {
		set = append(set, fmt.Sprintf("stock = $%d", argID))
		args = append(args, *upd.Stock)
		argID++
	}
	if upd.CategoryID != nil {
		set = append(set, fmt.Sprintf("category_id = $%d", argID))
		args = append(args, *upd.CategoryID)
		argID++
	}

	if len(set) == 0 {
		return 0, fmt.Errorf("no product fields to update")
	}

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(set, ", "), argID)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return 0, fmt.Errorf("failed to update product: %w", translateError(err))
	}

	return tag.RowsAffected(), nil
}

// Delete removes a product along with its product_tags rows (ON DELETE CASCADE).
func (r *productRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM products WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return 0, fmt.Errorf("failed to delete product: %w", translateError(err))
	}

	return tag.RowsAffected(), nil
}

// tagsByProduct loads associated tags grouped by product id. With a non-nil
// id it restricts the query to that product.
func (r *productRepository) tagsByProduct(ctx context.Context, productID *int64) (map[int64][]model.Tag, error) {
	query := `
		SELECT pt.product_id, t.id, t.tag_name
		FROM product_tags pt
		JOIN tags t ON t.id = pt.tag_id
	`
	args := []any{}
	if productID != nil {
		query += ` WHERE pt.product_id = $1`
		args = append(args, *productID)
	}
	query += ` ORDER BY pt.product_id, t.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query product tags")
		return nil, fmt.Errorf("failed to query product tags: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]model.Tag)
	for rows.Next() {
		var (
			productID int64
			t         model.Tag
		)
		if err := rows.Scan(&productID, &t.ID, &t.TagName); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product tag row")
			return nil, fmt.Errorf("failed to scan product tag: %w", err)
		}
		grouped[productID] = append(grouped[productID], t)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product tag rows")
		return nil, fmt.Errorf("error iterating product tags: %w", err)
	}

	return grouped, nil
}

// scanProductWithCategory scans a product row joined with its category.
func scanProductWithCategory(row pgx.Row) (*model.Product, error) {
	var (
		p            model.Product
		categoryName *string
	)
	if err := row.Scan(&p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID, &categoryName); err != nil {
		return nil, err
	}
	if p.CategoryID != nil && categoryName != nil {
		p.Category = &model.Category{ID: *p.CategoryID, CategoryName: *categoryName}
	}
	p.Tags = []model.Tag{}
	return &p, nil
}
