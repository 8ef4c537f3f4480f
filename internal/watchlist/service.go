package watchlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercaline/mercaline-backend/internal/catalog"
	"github.com/mercaline/mercaline-backend/pkg/db/models"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
	"github.com/mercaline/mercaline-backend/pkg/pagination"
)

// ToggleResultDTO reports the watch state after a toggle.
type ToggleResultDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Watched   bool      `json:"watched"`
}

// PageDTO is one page of watched products with their catalog summaries.
type PageDTO struct {
	Items []catalog.SummaryDTO `json:"items"`
	Meta  pagination.PageMeta  `json:"meta"`
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes business rules for watchlist management.
type Service interface {
	Toggle(ctx context.Context, userID, productID uuid.UUID) (*ToggleResultDTO, error)
	List(ctx context.Context, userID uuid.UUID, page pagination.Params) (*PageDTO, error)
}

type service struct {
	repo     *Repository
	products productFinder
}

// ServiceParams groups dependencies for the watchlist service.
type ServiceParams struct {
	WatchlistRepo *Repository
	ProductRepo   productFinder
}

// NewService builds a watchlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WatchlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "watchlist repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		repo:     params.WatchlistRepo,
		products: params.ProductRepo,
	}, nil
}

// Toggle flips the watch state for the product: watching when it was not
// watched, unwatching when it was.
func (s *service) Toggle(ctx context.Context, userID, productID uuid.UUID) (*ToggleResultDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	watched, err := s.repo.Toggle(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: toggle watchlist")
	}
	return &ToggleResultDTO{ProductID: productID, Watched: watched}, nil
}

// List returns one page of watched products joined with catalog summaries.
// Products removed from the catalog since being watched are skipped.
func (s *service) List(ctx context.Context, userID uuid.UUID, page pagination.Params) (*PageDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity required")
	}

	params := page.Normalize()
	ids, total, err := s.repo.ListProductIDs(ctx, userID, params.Limit, page.Offset())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list watchlist")
	}

	items := make([]catalog.SummaryDTO, 0, len(ids))
	for _, id := range ids {
		product, err := s.products.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load watched product")
		}
		items = append(items, catalog.NewSummaryDTO(product))
	}

	return &PageDTO{
		Items: items,
		Meta:  pagination.MetaFor(page, total),
	}, nil
}
