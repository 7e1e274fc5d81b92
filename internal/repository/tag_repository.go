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

// tagRepository implements the TagRepository interface using PostgreSQL.
type tagRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTagRepository creates a new PostgreSQL-backed tag repository.
func NewTagRepository(pool *pgxpool.Pool, logger zerolog.Logger) TagRepository {
	return &tagRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "tag").Logger(),
	}
}

// List retrieves all tags with their associated products expanded.
func (r *tagRepository) List(ctx context.Context) ([]model.Tag, error) {
	query := `
		SELECT id, tag_name
		FROM tags
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query tags")
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.TagName); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan tag row")
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		t.Products = []model.Product{}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating tag rows")
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	productsByTag, err := r.productsByTag(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range tags {
		if ps, ok := productsByTag[tags[i].ID]; ok {
			tags[i].Products = ps
		}
	}

	return tags, nil
}

// GetByID retrieves a single tag with its associated products expanded.
func (r *tagRepository) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	query := `
		SELECT id, tag_name
		FROM tags
		WHERE id = $1
	`

	var t model.Tag
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.TagName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("tag_id", id).Msg("tag not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to query tag")
		return nil, fmt.Errorf("failed to query tag: %w", err)
	}

	productsByTag, err := r.productsByTag(ctx, &id)
	if err != nil {
		return nil, err
	}
	t.Products = productsByTag[id]
	if t.Products == nil {
		t.Products = []model.Product{}
	}

	return &t, nil
}

// Create inserts a new tag.
func (r *tagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	query := `
		INSERT INTO tags (tag_name)
		VALUES ($1)
		RETURNING id, tag_name
	`

	var t model.Tag
	err := r.pool.QueryRow(ctx, query, name).Scan(&t.ID, &t.TagName)
	if err != nil {
		r.logger.Error().Err(err).Str("tag_name", name).Msg("failed to create tag")
		return nil, fmt.Errorf("failed to create tag: %w", translateError(err))
	}

	r.logger.Debug().Int64("tag_id", t.ID).Msg("tag created successfully")
	return &t, nil
}

// Update renames a tag and returns the number of rows affected.
func (r *tagRepository) Update(ctx context.Context, id int64, name string) (int64, error) {
	query := `
		UPDATE tags
		SET tag_name = $1
		WHERE id = $2
	`

	tag, err := r.pool.Exec(ctx, query, name, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to update tag")
		return 0, fmt.Errorf("failed to update tag: %w", translateError(err))
	}

	return tag.RowsAffected(), nil
}

// Delete removes a tag along with its product_tags rows (ON DELETE CASCADE).
func (r *tagRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM tags WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to delete tag")
		return 0, fmt.Errorf("failed to delete tag: %w", translateError(err))
	}

	return tag.RowsAffected(), nil
}

// productsByTag loads associated products grouped by tag id. With a non-nil
// id it restricts the query to that tag.
func (r *tagRepository) productsByTag(ctx context.Context, tagID *int64) (map[int64][]model.Product, error) {
	query := `
		SELECT pt.tag_id, p.id, p.product_name, p.price, p.stock, p.category_id
		FROM product_tags pt
		JOIN products p ON p.id = pt.product_id
	`
	args := []any{}
	if tagID != nil {
		query += ` WHERE pt.tag_id = $1`
		args = append(args, *tagID)
	}
	query += ` ORDER BY pt.tag_id, p.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query tag products")
		return nil, fmt.Errorf("failed to query tag products: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]model.Product)
	for rows.Next() {
		var (
			tagID int64
			p     model.Product
		)
		if err := rows.Scan(&tagID, &p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan tag product row")
			return nil, fmt.Errorf("failed to scan tag product: %w", err)
		}
		grouped[tagID] = append(grouped[tagID], p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating tag product rows")
		return nil, fmt.Errorf("error iterating tag products: %w", err)
	}

	return grouped, nil
}
