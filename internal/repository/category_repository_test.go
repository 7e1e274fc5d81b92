package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_CreateAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewCategoryRepository(pool, logger)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Shirts")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, "Shirts", created.CategoryName)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Shirts", got.CategoryName)
	assert.NotNil(t, got.Products)
	assert.Empty(t, got.Products)
}

func TestCategoryRepository_GetByID_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewCategoryRepository(pool, logger)

	got, err := repo.GetByID(context.Background(), 99999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategoryRepository_List_WithProducts(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewCategoryRepository(pool, logger)
	ctx := context.Background()

	shirts := insertCategory(t, pool, "Shirts")
	insertCategory(t, pool, "Music")
	insertProduct(t, pool, "Plain T-Shirt", 14.99, 14, &shirts)
	insertProduct(t, pool, "Band T-Shirt", 19.99, 8, &shirts)

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, "Shirts", categories[0].CategoryName)
	assert.Len(t, categories[0].Products, 2)

	assert.Equal(t, "Music", categories[1].CategoryName)
	assert.Empty(t, categories[1].Products)
}

func TestCategoryRepository_Update(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewCategoryRepository(pool, logger)
	ctx := context.Background()

	id := insertCategory(t, pool, "Hats")

	affected, err := repo.Update(ctx, id, "Headwear")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Update(ctx, 99999, "Nothing")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestCategoryRepository_Delete_DetachesProducts(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewCategoryRepository(pool, logger)
	ctx := context.Background()

	id := insertCategory(t, pool, "Shoes")
	productID := insertProduct(t, pool, "Running Sneakers", 90.00, 25, &id)

	affected, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// The product survives with its category reference cleared.
	var categoryID *int64
	err = pool.QueryRow(ctx, `SELECT category_id FROM products WHERE id = $1`, productID).Scan(&categoryID)
	require.NoError(t, err)
	assert.Nil(t, categoryID)
}
