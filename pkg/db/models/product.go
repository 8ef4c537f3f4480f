package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	dbtypes "github.com/mercaline/mercaline-backend/pkg/db/types"
	"github.com/mercaline/mercaline-backend/pkg/enums"
)

// Product is the catalog aggregate root. The derived columns (total stock,
// price range, inventory status, available colors/sizes, thumbnail) are never
// written directly; the catalog service recomputes them before every save.
type Product struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string                 `gorm:"column:name;not null"`
	Slug             string                 `gorm:"column:slug;not null;uniqueIndex:idx_products_slug"`
	Description      string                 `gorm:"column:description;not null"`
	ShortDescription *string                `gorm:"column:short_description"`
	Category         string                 `gorm:"column:category;not null"`
	Subcategory      *string                `gorm:"column:subcategory"`
	Brand            string                 `gorm:"column:brand;not null"`
	BasePrice        decimal.Decimal        `gorm:"column:base_price;type:numeric(12,2);not null"`
	MetaTitle        *string                `gorm:"column:meta_title"`
	MetaDescription  *string                `gorm:"column:meta_description"`
	Tags             pq.StringArray         `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	Status           enums.ProductStatus    `gorm:"column:status;not null;default:active"`
	ViewCount        int                    `gorm:"column:view_count;not null;default:0"`
	LockVersion      int                    `gorm:"column:lock_version;not null;default:0"`
	TotalStock       int                    `gorm:"column:total_stock;not null;default:0"`
	MinPrice         *decimal.Decimal       `gorm:"column:min_price;type:numeric(12,2)"`
	MaxPrice         *decimal.Decimal       `gorm:"column:max_price;type:numeric(12,2)"`
	InventoryStatus  enums.InventoryStatus  `gorm:"column:inventory_status;not null;default:out_of_stock"`
	AvailableColors  dbtypes.ColorSummaries `gorm:"column:available_colors;type:jsonb;not null;default:'[]'"`
	AvailableSizes   dbtypes.SizeSummaries  `gorm:"column:available_sizes;type:jsonb;not null;default:'[]'"`
	Thumbnail        *string                `gorm:"column:thumbnail"`
	Variants         []ProductVariant       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ColorImages      []ColorImage           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
