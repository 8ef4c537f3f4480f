package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercaline/mercaline-backend/pkg/db"
	"github.com/mercaline/mercaline-backend/pkg/db/models"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
)

// Service exposes category and subcategory management operations.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*CategoryDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CreateSubcategory(ctx context.Context, input CreateSubcategoryInput) (*SubcategoryDTO, error)
	UpdateSubcategory(ctx context.Context, id uuid.UUID, input UpdateSubcategoryInput) (*SubcategoryDTO, error)
	DeleteSubcategory(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService constructs a categories service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	category := &models.Category{
		Name:        name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if _, err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "idx_categories_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	return NewCategoryDTO(category), nil
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewCategoryDTO(category), nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	dtos := make([]CategoryDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewCategoryDTO(&rows[i])
	}
	return dtos, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.ImageURL != nil {
		category.ImageURL = input.ImageURL
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "idx_categories_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}
	return NewCategoryDTO(category), nil
}

// DeleteCategory refuses to remove a category that still has subcategories.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadCategory(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountSubcategories(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count subcategories")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category has subcategories").
			WithDetails(map[string]any{"subcategory_count": count})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}
	return nil
}

func (s *service) CreateSubcategory(ctx context.Context, input CreateSubcategoryInput) (*SubcategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if _, err := s.loadCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	sub := &models.Subcategory{
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: input.Description,
	}
	if _, err := s.repo.CreateSubcategory(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert subcategory")
	}
	dto := NewSubcategoryDTO(sub)
	return &dto, nil
}

func (s *service) UpdateSubcategory(ctx context.Context, id uuid.UUID, input UpdateSubcategoryInput) (*SubcategoryDTO, error) {
	sub, err := s.repo.FindSubcategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subcategory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load subcategory")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		sub.Name = name
	}
	if input.Description != nil {
		sub.Description = input.Description
	}

	if err := s.repo.UpdateSubcategory(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update subcategory")
	}
	dto := NewSubcategoryDTO(sub)
	return &dto, nil
}

func (s *service) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindSubcategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "subcategory not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load subcategory")
	}
	if err := s.repo.DeleteSubcategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete subcategory")
	}
	return nil
}

func (s *service) loadCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return category, nil
}
