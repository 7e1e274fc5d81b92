package service

import (
	"context"
	"fmt"

	"github.com/Sam-Cowman/E-Commerce/internal/model"
	"github.com/Sam-Cowman/E-Commerce/internal/repository"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// List retrieves all categories with their products.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if categories == nil {
		categories = []model.Category{}
	}

	s.logger.Debug().Int("count", len(categories)).Msg("retrieved categories")
	return categories, nil
}

// GetByID retrieves a single category with its products.
func (s *categoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to get category")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	return category, nil
}

// Create creates a new category.
func (s *categoryService) Create(ctx context.Context, in *model.CategoryInput) (*model.Category, error) {
	category, err := s.categoryRepo.Create(ctx, in.CategoryName)
	if err != nil {
		s.logger.Error().Err(err).Str("category_name", in.CategoryName).Msg("failed to create category")
		return nil, err
	}

	s.logger.Info().Int64("category_id", category.ID).Msg("category created")
	return category, nil
}

// Update renames a category. Zero rows affected means the category does not
// exist.
func (s *categoryService) Update(ctx context.Context, id int64, in *model.CategoryInput) (*model.Category, error) {
	affected, err := s.categoryRepo.Update(ctx, id, in.CategoryName)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to update category")
		return nil, err
	}
	if affected == 0 {
		return nil, model.ErrCategoryNotFound
	}

	return s.GetByID(ctx, id)
}

// Delete removes a category. Zero rows affected means the category does not
// exist.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	affected, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return err
	}
	if affected == 0 {
		return model.ErrCategoryNotFound
	}

	s.logger.Info().Int64("category_id", id).Msg("category deleted")
	return nil
}
