package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Create schema
	createSchema(t, pool)

	// Cleanup function
	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createSchema creates the catalogue schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			category_name VARCHAR(255) NOT NULL
		);
		CREATE TABLE IF NOT EXISTS tags (
			id BIGSERIAL PRIMARY KEY,
			tag_name VARCHAR(255) NOT NULL
		);
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			product_name VARCHAR(255) NOT NULL,
			price DECIMAL(10, 2) NOT NULL CHECK (price >= 0),
			stock INTEGER NOT NULL DEFAULT 10 CHECK (stock >= 0),
			category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL
		);
		CREATE TABLE IF NOT EXISTS product_tags (
			id BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			UNIQUE (product_id, tag_id)
		);
	`

	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err)
}

// insertCategory inserts a category directly and returns its id.
func insertCategory(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO categories (category_name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// insertTag inserts a tag directly and returns its id.
func insertTag(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO tags (tag_name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// insertProduct inserts a product directly and returns its id.
func insertProduct(t *testing.T, pool *pgxpool.Pool, name string, price float64, stock int32, categoryID *int64) int64 {
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO products (product_name, price, stock, category_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		name, price, stock, categoryID).Scan(&id)
	require.NoError(t, err)
	return id
}

// insertProductTag associates a product with a tag directly.
func insertProductTag(t *testing.T, pool *pgxpool.Pool, productID, tagID int64) {
	_, err := pool.Exec(context.Background(),
		`INSERT INTO product_tags (product_id, tag_id) VALUES ($1, $2)`, productID, tagID)
	require.NoError(t, err)
}
