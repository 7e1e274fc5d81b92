package service

import (
	"context"

	"github.com/Sam-Cowman/E-Commerce/internal/model"
)

// CategoryService defines operations for category management.
type CategoryService interface {
	// List retrieves all categories with their products.
	List(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category with its products.
	GetByID(ctx context.Context, id int64) (*model.Category, error)

	// Create creates a new category.
	Create(ctx context.Context, in *model.CategoryInput) (*model.Category, error)

	// Update renames a category and returns the updated row.
	Update(ctx context.Context, id int64, in *model.CategoryInput) (*model.Category, error)

	// Delete removes a category.
	Delete(ctx context.Context, id int64) error
}

// TagService defines operations for tag management.
type TagService interface {
	// List retrieves all tags with their associated products.
	List(ctx context.Context) ([]model.Tag, error)

	// GetByID retrieves a single tag with its associated products.
	GetByID(ctx context.Context, id int64) (*model.Tag, error)

	// Create creates a new tag.
	Create(ctx context.Context, in *model.TagInput) (*model.Tag, error)

	// Update renames a tag and returns the updated row.
	Update(ctx context.Context, id int64, in *model.TagInput) (*model.Tag, error)

	// Delete removes a tag.
	Delete(ctx context.Context, id int64) error
}

// ProductService defines operations for product management, including tag
// association reconciliation on create and update.
type ProductService interface {
	// List retrieves all products with category and tags.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product with category and tags.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create creates a product and, when tag ids were supplied, its tag
	// associations.
	Create(ctx context.Context, in *model.ProductCreateInput) (*model.Product, error)

	// Update applies scalar field changes and, when tag ids were supplied,
	// reconciles the tag associations to match them.
	Update(ctx context.Context, id int64, in *model.ProductUpdateInput) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error
}

// TagReconciler reconciles a product's persisted tag associations with a
// desired tag-id set. Implemented by reconcile.Reconciler.
type TagReconciler interface {
	Reconcile(ctx context.Context, productID int64, desiredTagIDs []int64) error
}
