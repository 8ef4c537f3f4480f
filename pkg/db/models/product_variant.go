package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercaline/mercaline-backend/pkg/enums"
)

// ProductVariant is a single sellable size/color combination of a product.
type ProductVariant struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID         uuid.UUID           `gorm:"column:product_id;type:uuid;not null;index"`
	SKU               string              `gorm:"column:sku;not null;uniqueIndex:idx_variants_sku"`
	Size              string              `gorm:"column:size;not null"`
	Color             string              `gorm:"column:color;not null"`
	Price             decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null"`
	CompareAtPrice    *decimal.Decimal    `gorm:"column:compare_at_price;type:numeric(12,2)"`
	StockQuantity     int                 `gorm:"column:stock_quantity;not null;default:0"`
	ReservedQuantity  int                 `gorm:"column:reserved_quantity;not null;default:0"`
	LowStockThreshold int                 `gorm:"column:low_stock_threshold;not null;default:5"`
	Status            enums.VariantStatus `gorm:"column:status;not null;default:active"`
	WeightGrams       *float64            `gorm:"column:weight_grams;type:numeric(10,2)"`
	LengthCM          *float64            `gorm:"column:length_cm;type:numeric(10,2)"`
	WidthCM           *float64            `gorm:"column:width_cm;type:numeric(10,2)"`
	HeightCM          *float64            `gorm:"column:height_cm;type:numeric(10,2)"`
	LastStockUpdate   *time.Time          `gorm:"column:last_stock_update"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
