package banners

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
)

// CreateBannerInput is the validated payload to create a banner.
type CreateBannerInput struct {
	Title    string
	ImageURL string
	LinkURL  *string
	Position *int
	IsActive *bool
}

// UpdateBannerInput holds optional mutation values for a banner.
type UpdateBannerInput struct {
	Title    *string
	ImageURL *string
	LinkURL  *string
	Position *int
	IsActive *bool
}

// BannerDTO is a banner projection.
type BannerDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	LinkURL   *string   `json:"link_url,omitempty"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBannerDTO maps one banner row.
func NewBannerDTO(b *models.Banner) *BannerDTO {
	return &BannerDTO{
		ID:        b.ID,
		Title:     b.Title,
		ImageURL:  b.ImageURL,
		LinkURL:   b.LinkURL,
		Position:  b.Position,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// Repository exposes banner persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a banners repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new banner.
func (r *Repository) Create(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

// FindByID loads one banner.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

// ListActive returns active banners ordered by position.
func (r *Repository) ListActive(ctx context.Context) ([]models.Banner, error) {
	var rows []models.Banner
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListAll returns every banner ordered by position.
func (r *Repository) ListAll(ctx context.Context) ([]models.Banner, error) {
	var rows []models.Banner
	err := r.db.WithContext(ctx).Order("position ASC").Find(&rows).Error
	return rows, err
}

// Update persists the banner row.
func (r *Repository) Update(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Save(banner).Error
}

// Delete removes a banner row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Banner{}).Error
}

// Count returns the number of banners.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Banner{}).Count(&count).Error
	return count, err
}

// Service exposes banner management operations.
type Service interface {
	Create(ctx context.Context, input CreateBannerInput) (*BannerDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*BannerDTO, error)
	ListActive(ctx context.Context) ([]BannerDTO, error)
	ListAll(ctx context.Context) ([]BannerDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBannerInput) (*BannerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService constructs a banners service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("banners repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateBannerInput) (*BannerDTO, error) {
	title := strings.TrimSpace(input.Title)
	imageURL := strings.TrimSpace(input.ImageURL)
	if title == "" || imageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and image_url are required")
	}

	banner := &models.Banner{
		Title:    title,
		ImageURL: imageURL,
		LinkURL:  input.LinkURL,
		IsActive: true,
	}
	if input.Position != nil {
		banner.Position = *input.Position
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}

	if _, err := s.repo.Create(ctx, banner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert banner")
	}
	return NewBannerDTO(banner), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*BannerDTO, error) {
	banner, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewBannerDTO(banner), nil
}

func (s *service) ListActive(ctx context.Context) ([]BannerDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list banners")
	}
	return mapBanners(rows), nil
}

func (s *service) ListAll(ctx context.Context) ([]BannerDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list banners")
	}
	return mapBanners(rows), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateBannerInput) (*BannerDTO, error) {
	banner, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		banner.Title = title
	}
	if input.ImageURL != nil {
		imageURL := strings.TrimSpace(*input.ImageURL)
		if imageURL == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "image_url cannot be empty")
		}
		banner.ImageURL = imageURL
	}
	if input.LinkURL != nil {
		banner.LinkURL = input.LinkURL
	}
	if input.Position != nil {
		banner.Position = *input.Position
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, banner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update banner")
	}
	return NewBannerDTO(banner), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete banner")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load banner")
	}
	return banner, nil
}

func mapBanners(rows []models.Banner) []BannerDTO {
	dtos := make([]BannerDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewBannerDTO(&rows[i])
	}
	return dtos
}
