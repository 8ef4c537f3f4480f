package models

import (
	"time"

	"github.com/google/uuid"
)

// ColorImage groups a product's gallery images under one color name.
type ColorImage struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID      `gorm:"column:product_id;type:uuid;not null;index"`
	Color        string         `gorm:"column:color;not null"`
	ColorCode    *string        `gorm:"column:color_code"`
	PrimaryImage *string        `gorm:"column:primary_image"`
	Thumbnail    *string        `gorm:"column:thumbnail"`
	Images       []ProductImage `gorm:"foreignKey:ColorImageID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
