package repository

import (
	"context"
	"errors"

	"github.com/Sam-Cowman/E-Commerce/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// List retrieves all categories with their products expanded.
	List(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category with its products expanded.
	// Returns (nil, nil) when no category has the given id.
	GetByID(ctx context.Context, id int64) (*model.Category, error)

	// Create inserts a new category and returns the stored row.
	Create(ctx context.Context, name string) (*model.Category, error)

	// Update renames a category and returns the number of rows affected.
	Update(ctx context.Context, id int64, name string) (int64, error)

	// Delete removes a category and returns the number of rows affected.
	Delete(ctx context.Context, id int64) (int64, error)
}

// TagRepository defines the interface for tag data access operations.
type TagRepository interface {
	// List retrieves all tags with their associated products expanded.
	List(ctx context.Context) ([]model.Tag, error)

	// GetByID retrieves a single tag with its associated products expanded.
	// Returns (nil, nil) when no tag has the given id.
	GetByID(ctx context.Context, id int64) (*model.Tag, error)

	// Create inserts a new tag and returns the stored row.
	Create(ctx context.Context, name string) (*model.Tag, error)

	// Update renames a tag and returns the number of rows affected.
	Update(ctx context.Context, id int64, name string) (int64, error)

	// Delete removes a tag and returns the number of rows affected.
	// Its product_tags rows go with it (ON DELETE CASCADE).
	Delete(ctx context.Context, id int64) (int64, error)
}

// ProductUpdate carries the scalar product fields of an update. Nil fields
// are left unchanged.
type ProductUpdate struct {
	ProductName *string
	Price       *float64
	Stock       *int32
	CategoryID  *int64
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves all products with category and tags expanded.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product with category and tags expanded.
	// Returns (nil, nil) when no product has the given id.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create inserts a new product row and returns the stored row. Tag
	// associations are not written here; that is the reconciler's job.
	Create(ctx context.Context, product *model.Product) (*model.Product, error)

	// Update applies the non-nil fields of upd and returns the number of
	// rows affected.
	Update(ctx context.Context, id int64, upd ProductUpdate) (int64, error)

	// Delete removes a product and returns the number of rows affected.
	// Its product_tags rows go with it (ON DELETE CASCADE).
	Delete(ctx context.Context, id int64) (int64, error)
}

// ProductTagRepository defines the transactional operations on the
// product_tags join table used by the reconciler. All row operations take
// an explicit pgx.Tx so a whole reconciliation commits or rolls back as one
// unit.
type ProductTagRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// LockProduct takes a row lock on the product for the duration of the
	// transaction and reports whether the product exists. The lock
	// serialises concurrent reconciliations for the same product.
	LockProduct(ctx context.Context, tx pgx.Tx, productID int64) (bool, error)

	// ListTagIDs returns the tag ids currently associated with the product,
	// read within the transaction.
	ListTagIDs(ctx context.Context, tx pgx.Tx, productID int64) ([]int64, error)

	// DeleteByTagIDs removes the product's associations with the given tag
	// ids within the transaction.
	DeleteByTagIDs(ctx context.Context, tx pgx.Tx, productID int64, tagIDs []int64) (int64, error)

	// BulkInsert creates one association row per tag id within the
	// transaction. A tag id that references no tag surfaces as a
	// referential error.
	BulkInsert(ctx context.Context, tx pgx.Tx, productID int64, tagIDs []int64) error
}

// Postgres error codes worth translating into domain errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// translateError maps Postgres constraint violations onto domain errors so
// callers never have to inspect driver internals. Other errors pass through
// unchanged.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		return model.ErrReferentialViolation
	case pgUniqueViolation:
		return model.ErrDuplicateAssociation
	}
	return err
}
