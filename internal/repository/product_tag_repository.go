package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productTagRepository implements the ProductTagRepository interface using
// PostgreSQL.
type productTagRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductTagRepository creates a new PostgreSQL-backed product_tags
// repository.
func NewProductTagRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductTagRepository {
	return &productTagRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product_tag").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *productTagRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// LockProduct takes a row lock on the product until the transaction ends and
// reports whether the product exists. Holding the lock serialises concurrent
// reconciliations for the same product; other products are unaffected.
func (r *productTagRepository) LockProduct(ctx context.Context, tx pgx.Tx, productID int64) (bool, error) {
	query := `SELECT id FROM products WHERE id = $1 FOR UPDATE`

	var id int64
	err := tx.QueryRow(ctx, query, productID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to lock product")
		return false, fmt.Errorf("failed to lock product: %w", err)
	}

	return true, nil
}

// ListTagIDs returns the tag ids currently associated with the product.
func (r *productTagRepository) ListTagIDs(ctx context.Context, tx pgx.Tx, productID int64) ([]int64, error) {
	query := `
		SELECT tag_id
		FROM product_tags
		WHERE product_id = $1
		ORDER BY tag_id
	`

	rows, err := tx.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to query product tag ids")
		return nil, fmt.Errorf("failed to query product tag ids: %w", err)
	}
	defer rows.Close()

	var tagIDs []int64
	for rows.Next() {
		var tagID int64
		if err := rows.Scan(&tagID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan tag id")
			return nil, fmt.Errorf("failed to scan tag id: %w", err)
		}
		tagIDs = append(tagIDs, tagID)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating tag id rows")
		return nil, fmt.Errorf("error iterating tag ids: %w", err)
	}

	return tagIDs, nil
}

// DeleteByTagIDs removes the product's associations with the given tag ids.
func (r *productTagRepository) DeleteByTagIDs(ctx context.Context, tx pgx.Tx, productID int64, tagIDs []int64) (int64, error) {
	if len(tagIDs) == 0 {
		return 0, nil
	}

	query := `
		DELETE FROM product_tags
		WHERE product_id = $1 AND tag_id = ANY($2)
	`

	tag, err := tx.Exec(ctx, query, productID, tagIDs)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("product_id", productID).
			Int("tag_count", len(tagIDs)).
			Msg("failed to delete product tags")
		return 0, fmt.Errorf("failed to delete product tags: %w", err)
	}

	r.logger.Debug().
		Int64("product_id", productID).
		Int64("deleted", tag.RowsAffected()).
		Msg("product tags deleted")

	return tag.RowsAffected(), nil
}

// BulkInsert creates one association row per tag id. The queued inserts run
// on the transaction, so a failure on any of them fails the whole
// reconciliation.
func (r *productTagRepository) BulkInsert(ctx context.Context, tx pgx.Tx, productID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO product_tags (product_id, tag_id)
		VALUES ($1, $2)
	`

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(query, productID, tagID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(tagIDs); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int64("product_id", productID).
				Int64("tag_id", tagIDs[i]).
				Msg("failed to insert product tag")
			return fmt.Errorf("failed to insert product tag: %w", translateError(err))
		}
	}

	r.logger.Debug().
		Int64("product_id", productID).
		Int("count", len(tagIDs)).
		Msg("product tags created")

	return nil
}
