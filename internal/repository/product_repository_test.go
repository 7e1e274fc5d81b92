package repository

import (
	"context"
	"testing"

	"github.com/Sam-Cowman/E-Commerce/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_CreateAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)
	ctx := context.Background()

	categoryID := insertCategory(t, pool, "Shirts")

	created, err := repo.Create(ctx, &model.Product{
		ProductName: "Plain T-Shirt",
		Price:       14.99,
		Stock:       14,
		CategoryID:  &categoryID,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	blue := insertTag(t, pool, "blue")
	insertProductTag(t, pool, created.ID, blue)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Plain T-Shirt", got.ProductName)
	assert.Equal(t, 14.99, got.Price)
	assert.Equal(t, int32(14), got.Stock)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Shirts", got.Category.CategoryName)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "blue", got.Tags[0].TagName)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	got, err := repo.GetByID(context.Background(), 99999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepository_Create_UnknownCategory(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	badCategory := int64(99999)
	_, err := repo.Create(context.Background(), &model.Product{
		ProductName: "Orphan Product",
		Price:       5.00,
		Stock:       1,
		CategoryID:  &badCategory,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrReferentialViolation)
}

func TestProductRepository_List(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)
	ctx := context.Background()

	categoryID := insertCategory(t, pool, "Shoes")
	first := insertProduct(t, pool, "Running Sneakers", 90.00, 25, &categoryID)
	second := insertProduct(t, pool, "Cargo Shorts", 29.99, 22, nil)

	gold := insertTag(t, pool, "gold")
	insertProductTag(t, pool, first, gold)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, first, products[0].ID)
	require.NotNil(t, products[0].Category)
	assert.Equal(t, "Shoes", products[0].Category.CategoryName)
	require.Len(t, products[0].Tags, 1)

	assert.Equal(t, second, products[1].ID)
	assert.Nil(t, products[1].Category)
	assert.Empty(t, products[1].Tags)
}

func TestProductRepository_Update_PartialFields(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)
	ctx := context.Background()

	id := insertProduct(t, pool, "Plain T-Shirt", 14.99, 10, nil)

	price := 19.99
	affected, err := repo.Update(ctx, id, ProductUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 19.99, got.Price)
	// Untouched fields keep their values.
	assert.Equal(t, "Plain T-Shirt", got.ProductName)
	assert.Equal(t, int32(10), got.Stock)
}

func TestProductRepository_Update_NoRows(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	name := "Ghost Product"
	affected, err := repo.Update(context.Background(), 99999, ProductUpdate{ProductName: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestProductRepository_Delete_CascadesAssociations(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)
	ctx := context.Background()

	id := insertProduct(t, pool, "Plain T-Shirt", 14.99, 10, nil)
	blue := insertTag(t, pool, "blue")
	insertProductTag(t, pool, id, blue)

	affected, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var count int
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM product_tags WHERE product_id = $1`, id).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}
