// Command seed creates the catalogue schema and loads the seed data set.
// It drops existing catalogue tables first, so it is only meant for
// development and test databases.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Sam-Cowman/E-Commerce/internal/config"
	"github.com/Sam-Cowman/E-Commerce/internal/database"
	"github.com/Sam-Cowman/E-Commerce/internal/reconcile"
	"github.com/Sam-Cowman/E-Commerce/internal/repository"
	"github.com/Sam-Cowman/E-Commerce/internal/seed"
)

const schemaFile = "db/schema.sql"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting catalogue seed run")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Recreate the schema before seeding
	schema, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", schemaFile, err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info().Str("file", schemaFile).Msg("schema applied")

	fileLoader := seed.NewFileLoader(logger)
	loader := fileLoader
	seedPath := cfg.Seed.File

	if cfg.Seed.S3Enabled {
		s3Loader, err := seed.NewS3Loader(ctx, cfg.Seed.S3Region, cfg.Seed.S3Bucket, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 seed loader, falling back to local file system only")
		} else {
			loader = seed.NewFallbackLoader(s3Loader, fileLoader, cfg.Seed.File, logger)
			seedPath = cfg.Seed.S3Key
		}
	}

	data, err := loader.Load(ctx, seedPath)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	categoryRepo := repository.NewCategoryRepository(pool, logger)
	tagRepo := repository.NewTagRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	productTagRepo := repository.NewProductTagRepository(pool, logger)
	reconciler := reconcile.New(productTagRepo, logger)

	seeder := seed.NewSeeder(categoryRepo, tagRepo, productRepo, reconciler, logger)
	if err := seeder.Apply(ctx, data); err != nil {
		return fmt.Errorf("failed to apply seed data: %w", err)
	}

	logger.Info().Msg("seed run completed")
	return nil
}
