package service

import (
	"context"
	"fmt"

	"github.com/Sam-Cowman/E-Commerce/internal/model"
	"github.com/Sam-Cowman/E-Commerce/internal/repository"

	"github.com/rs/zerolog"
)

// tagService implements TagService.
type tagService struct {
	tagRepo repository.TagRepository
	logger  zerolog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(tagRepo repository.TagRepository, logger zerolog.Logger) TagService {
	return &tagService{
		tagRepo: tagRepo,
		logger:  logger.With().Str("service", "tag").Logger(),
	}
}

// List retrieves all tags with their associated products.
func (s *tagService) List(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list tags")
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	if tags == nil {
		tags = []model.Tag{}
	}

	s.logger.Debug().Int("count", len(tags)).Msg("retrieved tags")
	return tags, nil
}

// GetByID retrieves a single tag with its associated products.
func (s *tagService) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to get tag")
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	if tag == nil {
		return nil, model.ErrTagNotFound
	}

	return tag, nil
}

// Create creates a new tag.
func (s *tagService) Create(ctx context.Context, in *model.TagInput) (*model.Tag, error) {
	tag, err := s.tagRepo.Create(ctx, in.TagName)
	if err != nil {
		s.logger.Error().Err(err).Str("tag_name", in.TagName).Msg("failed to create tag")
		return nil, err
	}

	s.logger.Info().Int64("tag_id", tag.ID).Msg("tag created")
	return tag, nil
}

// Update renames a tag. Zero rows affected means the tag does not exist.
func (s *tagService) Update(ctx context.Context, id int64, in *model.TagInput) (*model.Tag, error) {
	affected, err := s.tagRepo.Update(ctx, id, in.TagName)
	if err != nil {
		s.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to update tag")
		return nil, err
	}
	if affected == 0 {
		return nil, model.ErrTagNotFound
	}

	return s.GetByID(ctx, id)
}

// Delete removes a tag. Zero rows affected means the tag does not exist.
func (s *tagService) Delete(ctx context.Context, id int64) error {
	affected, err := s.tagRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to delete tag")
		return err
	}
	if affected == 0 {
		return model.ErrTagNotFound
	}

	s.logger.Info().Int64("tag_id", id).Msg("tag deleted")
	return nil
}
