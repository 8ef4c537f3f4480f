package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mercaline/mercaline-backend/pkg/enums"
)

// ProductImage is a single gallery asset inside a color group.
type ProductImage struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ColorImageID uuid.UUID       `gorm:"column:color_image_id;type:uuid;not null;index"`
	URL          string          `gorm:"column:url;not null"`
	AltText      *string         `gorm:"column:alt_text"`
	ImageType    enums.ImageType `gorm:"column:image_type;not null;default:main"`
	IsPrimary    bool            `gorm:"column:is_primary;not null;default:false"`
	SortOrder    int             `gorm:"column:sort_order;not null;default:0"`
	Width        *int            `gorm:"column:width"`
	Height       *int            `gorm:"column:height"`
	FileSize     *int64          `gorm:"column:file_size"`
	Format       *string         `gorm:"column:format"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
