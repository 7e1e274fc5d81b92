package service

import (
	"context"
	"fmt"

	"github.com/Sam-Cowman/E-Commerce/internal/model"
	"github.com/Sam-Cowman/E-Commerce/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	reconciler  TagReconciler
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	reconciler TagReconciler,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		reconciler:  reconciler,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves all products with category and tags.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")
	return products, nil
}

// GetByID retrieves a single product with category and tags.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create creates the product row, then reconciles its tag associations when
// tag ids were supplied. The two steps are not one transaction: if the
// reconciliation fails the product row stays persisted without tags, and the
// reconciliation error is surfaced to the caller.
func (s *productService) Create(ctx context.Context, in *model.ProductCreateInput) (*model.Product, error) {
	stock := int32(model.DefaultStock)
	if in.Stock != nil {
		stock = *in.Stock
	}

	product := &model.Product{
		ProductName: in.ProductName,
		Price:       in.Price,
		Stock:       stock,
		CategoryID:  in.CategoryID,
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_name", in.ProductName).Msg("failed to create product")
		return nil, err
	}

	// Omitted tagIds is a valid request meaning "no associations".
	if len(in.TagIDs) > 0 {
		if err := s.reconciler.Reconcile(ctx, created.ID, in.TagIDs); err != nil {
			s.logger.Error().
				Err(err).
				Int64("product_id", created.ID).
				Msg("product created but tag association failed")
			return nil, err
		}
	}

	s.logger.Info().
		Int64("product_id", created.ID).
		Int("tag_count", len(in.TagIDs)).
		Msg("product created")

	return s.GetByID(ctx, created.ID)
}

// Update applies scalar field changes, then reconciles tag associations when
// the request carried a tagIds list. A nil list leaves associations alone;
// an explicit empty list removes them all.
func (s *productService) Update(ctx context.Context, id int64, in *model.ProductUpdateInput) (*model.Product, error) {
	if in.HasScalarChanges() {
		upd := repository.ProductUpdate{
			ProductName: in.ProductName,
			Price:       in.Price,
			Stock:       in.Stock,
			CategoryID:  in.CategoryID,
		}

		affected, err := s.productRepo.Update(ctx, id, upd)
		if err != nil {
			s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
			return nil, err
		}
		if affected == 0 {
			return nil, model.ErrProductNotFound
		}
	} else {
		// No scalar changes: still verify the product exists so a
		// tag-only update against a missing id is a clean not-found.
		if _, err := s.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	if in.TagIDs != nil {
		if err := s.reconciler.Reconcile(ctx, id, in.TagIDs); err != nil {
			s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to reconcile product tags")
			return nil, err
		}
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return s.GetByID(ctx, id)
}

// Delete removes a product. Zero rows affected means the product does not
// exist.
func (s *productService) Delete(ctx context.Context, id int64) error {
	affected, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return err
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
