package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
)

// CreateCategoryInput is the validated payload to create a category.
type CreateCategoryInput struct {
	Name        string
	Description *string
	ImageURL    *string
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	ImageURL    *string
}

// CreateSubcategoryInput is the validated payload to create a subcategory.
type CreateSubcategoryInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description *string
}

// UpdateSubcategoryInput holds optional mutation values for a subcategory.
type UpdateSubcategoryInput struct {
	Name        *string
	Description *string
}

// SubcategoryDTO is a subcategory projection.
type SubcategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryDTO is a category with its subcategories.
type CategoryDTO struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Description   *string          `json:"description,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
	Subcategories []SubcategoryDTO `json:"subcategories"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NewCategoryDTO maps a category row with its preloaded subcategories.
func NewCategoryDTO(c *models.Category) *CategoryDTO {
	dto := &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	dto.Subcategories = make([]SubcategoryDTO, len(c.Subcategories))
	for i, sub := range c.Subcategories {
		dto.Subcategories[i] = NewSubcategoryDTO(&sub)
	}
	return dto
}

// NewSubcategoryDTO maps one subcategory row.
func NewSubcategoryDTO(s *models.Subcategory) SubcategoryDTO {
	return SubcategoryDTO{
		ID:          s.ID,
		CategoryID:  s.CategoryID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
