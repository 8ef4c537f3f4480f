package dashboard

import (
	"context"
	"fmt"

	"github.com/mercaline/mercaline-backend/internal/catalog"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
)

const recentProductsLimit = 10

// StatsDTO is the admin overview: row counts plus the newest products.
type StatsDTO struct {
	ProductCount   int64                `json:"product_count"`
	UserCount      int64                `json:"user_count"`
	CategoryCount  int64                `json:"category_count"`
	BannerCount    int64                `json:"banner_count"`
	RecentProducts []catalog.SummaryDTO `json:"recent_products"`
}

type counter interface {
	Count(ctx context.Context) (int64, error)
}

// Service assembles the admin dashboard from the feature repositories.
type Service interface {
	Stats(ctx context.Context) (*StatsDTO, error)
}

// ServiceParams groups the repositories the dashboard reads from.
type ServiceParams struct {
	Products   *catalog.Repository
	Users      counter
	Categories counter
	Banners    counter
}

type service struct {
	products   *catalog.Repository
	users      counter
	categories counter
	banners    counter
}

// NewService constructs the dashboard service.
func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Categories == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	if params.Banners == nil {
		return nil, fmt.Errorf("banners repository required")
	}
	return &service{
		products:   params.Products,
		users:      params.Users,
		categories: params.Categories,
		banners:    params.Banners,
	}, nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	stats := &StatsDTO{}

	var err error
	if stats.ProductCount, err = s.products.CountProducts(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
	}
	if stats.UserCount, err = s.users.Count(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count users")
	}
	if stats.CategoryCount, err = s.categories.Count(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count categories")
	}
	if stats.BannerCount, err = s.banners.Count(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count banners")
	}

	recent, err := s.products.ListRecent(ctx, recentProductsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list recent products")
	}
	stats.RecentProducts = make([]catalog.SummaryDTO, len(recent))
	for i := range recent {
		stats.RecentProducts[i] = catalog.NewSummaryDTO(&recent[i])
	}

	return stats, nil
}
