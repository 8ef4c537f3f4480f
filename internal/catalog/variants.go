package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
	"github.com/mercaline/mercaline-backend/pkg/enums"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
)

const defaultLowStockThreshold = 5

// ProcessVariants validates the raw variant payloads and turns them into
// persistable rows. Stock defaults to 0 and the status is derived from it:
// out_of_stock at zero, active otherwise, unless the caller explicitly set
// inactive or discontinued. Duplicate SKUs inside the submission are not
// checked here; the catalog-wide unique index surfaces those on insert.
func ProcessVariants(inputs []VariantInput) ([]models.ProductVariant, error) {
	if len(inputs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one variant is required")
	}

	now := time.Now().UTC()
	variants := make([]models.ProductVariant, 0, len(inputs))
	for i, in := range inputs {
		missing := missingVariantFields(in)
		if len(missing) > 0 {
			return nil, pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("variants[%d]: missing required fields: %s", i, strings.Join(missing, ", ")),
			).WithDetails(map[string]any{"index": i, "missing": missing})
		}

		stock := 0
		if in.StockQuantity != nil {
			stock = *in.StockQuantity
		}
		if stock < 0 {
			return nil, pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("variants[%d]: stock_quantity cannot be negative", i),
			).WithDetails(map[string]any{"index": i})
		}

		threshold := defaultLowStockThreshold
		if in.LowStockThreshold != nil && *in.LowStockThreshold > 0 {
			threshold = *in.LowStockThreshold
		}

		status, err := deriveVariantStatus(in.Status, stock, i)
		if err != nil {
			return nil, err
		}

		variant := models.ProductVariant{
			SKU:               strings.TrimSpace(in.SKU),
			Size:              strings.TrimSpace(in.Size),
			Color:             strings.TrimSpace(in.Color),
			Price:             *in.Price,
			CompareAtPrice:    in.CompareAtPrice,
			StockQuantity:     stock,
			LowStockThreshold: threshold,
			Status:            status,
			WeightGrams:       in.WeightGrams,
			LengthCM:          in.LengthCM,
			WidthCM:           in.WidthCM,
			HeightCM:          in.HeightCM,
			LastStockUpdate:   &now,
		}
		variants = append(variants, variant)
	}

	return variants, nil
}

func missingVariantFields(in VariantInput) []string {
	var missing []string
	if strings.TrimSpace(in.SKU) == "" {
		missing = append(missing, "sku")
	}
	if strings.TrimSpace(in.Size) == "" {
		missing = append(missing, "size")
	}
	if strings.TrimSpace(in.Color) == "" {
		missing = append(missing, "color")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	return missing
}

func deriveVariantStatus(requested *string, stock, index int) (enums.VariantStatus, error) {
	if requested != nil && *requested != "" {
		status, err := enums.ParseVariantStatus(*requested)
		if err != nil {
			return "", pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("variants[%d]: %s", index, err.Error()),
			).WithDetails(map[string]any{"index": index})
		}
		// Explicit inactive/discontinued wins; active/out_of_stock still
		// follow the stock level at creation time.
		if status == enums.VariantStatusInactive || status == enums.VariantStatusDiscontinued {
			return status, nil
		}
	}

	if stock <= 0 {
		return enums.VariantStatusOutOfStock, nil
	}
	return enums.VariantStatusActive, nil
}
