package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
	dbtypes "github.com/mercaline/mercaline-backend/pkg/db/types"
	"github.com/mercaline/mercaline-backend/pkg/enums"
)

const (
	lowStockProductThreshold = 10
	defaultSizeType          = "US"
)

// Recompute rebuilds the product's derived fields from its current variant
// set and color image gallery. Pure and idempotent; every aggregate write
// path calls it immediately before persisting, so persisted derived state can
// never drift from the owned collections.
func Recompute(p *models.Product) {
	p.AvailableColors = availableColors(p.ColorImages)
	p.AvailableSizes = availableSizes(p.Variants)
	p.TotalStock = totalStock(p.Variants)
	p.MinPrice, p.MaxPrice = priceRange(p.Variants)
	p.InventoryStatus = inventoryStatus(p.TotalStock)
	p.Thumbnail = productThumbnail(p.ColorImages)
}

func availableColors(entries []models.ColorImage) dbtypes.ColorSummaries {
	colors := make(dbtypes.ColorSummaries, 0, len(entries))
	for _, entry := range entries {
		primary := entry.PrimaryImage
		if primary == nil && len(entry.Images) > 0 {
			url := entry.Images[0].URL
			primary = &url
		}
		colors = append(colors, dbtypes.ColorSummary{
			Color:        entry.Color,
			ColorCode:    entry.ColorCode,
			PrimaryImage: primary,
			ImageCount:   len(entry.Images),
		})
	}
	return colors
}

func availableSizes(variants []models.ProductVariant) dbtypes.SizeSummaries {
	seen := make(map[string]bool, len(variants))
	sizes := make(dbtypes.SizeSummaries, 0, len(variants))
	for _, v := range variants {
		if v.Size == "" || seen[v.Size] {
			continue
		}
		seen[v.Size] = true
		sizes = append(sizes, dbtypes.SizeSummary{Size: v.Size, SizeType: defaultSizeType})
	}
	return sizes
}

func totalStock(variants []models.ProductVariant) int {
	total := 0
	for _, v := range variants {
		total += v.StockQuantity
	}
	return total
}

// priceRange returns nil bounds for an empty variant set. Creation rejects
// empty sets upstream, so nil only shows up on aggregates that never had
// variants persisted.
func priceRange(variants []models.ProductVariant) (*decimal.Decimal, *decimal.Decimal) {
	if len(variants) == 0 {
		return nil, nil
	}

	min := variants[0].Price
	max := variants[0].Price
	for _, v := range variants[1:] {
		if v.Price.LessThan(min) {
			min = v.Price
		}
		if v.Price.GreaterThan(max) {
			max = v.Price
		}
	}
	return &min, &max
}

func inventoryStatus(total int) enums.InventoryStatus {
	switch {
	case total <= 0:
		return enums.InventoryStatusOutOfStock
	case total <= lowStockProductThreshold:
		return enums.InventoryStatusLowStock
	default:
		return enums.InventoryStatusInStock
	}
}

func productThumbnail(entries []models.ColorImage) *string {
	for _, entry := range entries {
		if entry.PrimaryImage != nil {
			url := *entry.PrimaryImage
			return &url
		}
		if len(entry.Images) > 0 {
			url := entry.Images[0].URL
			return &url
		}
	}
	return nil
}
