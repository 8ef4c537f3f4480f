package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mercaline/mercaline-backend/pkg/enums"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
)

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestProcessVariantsRejectsEmptySet(t *testing.T) {
	_, err := ProcessVariants(nil)
	if err == nil {
		t.Fatal("expected error for empty variant set")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProcessVariantsReportsMissingFieldsWithIndex(t *testing.T) {
	_, err := ProcessVariants([]VariantInput{
		{SKU: "TS-1", Size: "M", Color: "Red", Price: decPtr("20")},
		{SKU: "TS-2", Color: "Blue"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(typed.Message(), "variants[1]") {
		t.Fatalf("error should name the offending index: %s", typed.Message())
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["index"] != 1 {
		t.Fatalf("details should carry the index, got %v", typed.Details())
	}
}

func TestProcessVariantsDefaultsStockAndStatus(t *testing.T) {
	variants, err := ProcessVariants([]VariantInput{
		{SKU: "A1", Size: "M", Color: "Red", Price: decPtr("20")},
		{SKU: "A2", Size: "L", Color: "Red", Price: decPtr("22"), StockQuantity: intPtr(7)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if variants[0].StockQuantity != 0 {
		t.Fatalf("stock should default to 0, got %d", variants[0].StockQuantity)
	}
	if variants[0].Status != enums.VariantStatusOutOfStock {
		t.Fatalf("zero stock should derive out_of_stock, got %s", variants[0].Status)
	}
	if variants[0].LowStockThreshold != 5 {
		t.Fatalf("threshold should default to 5, got %d", variants[0].LowStockThreshold)
	}
	if variants[1].Status != enums.VariantStatusActive {
		t.Fatalf("stocked variant should be active, got %s", variants[1].Status)
	}
	if variants[1].LastStockUpdate == nil {
		t.Fatal("last stock update should be set at creation")
	}
}

func TestProcessVariantsExplicitStatusWins(t *testing.T) {
	variants, err := ProcessVariants([]VariantInput{
		{SKU: "A1", Size: "M", Color: "Red", Price: decPtr("20"), StockQuantity: intPtr(5), Status: strPtr("discontinued")},
		{SKU: "A2", Size: "L", Color: "Red", Price: decPtr("20"), StockQuantity: intPtr(5), Status: strPtr("inactive")},
		{SKU: "A3", Size: "S", Color: "Red", Price: decPtr("20"), Status: strPtr("active")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variants[0].Status != enums.VariantStatusDiscontinued {
		t.Fatalf("explicit discontinued should win, got %s", variants[0].Status)
	}
	if variants[1].Status != enums.VariantStatusInactive {
		t.Fatalf("explicit inactive should win, got %s", variants[1].Status)
	}
	// Requested active with zero stock still derives out_of_stock.
	if variants[2].Status != enums.VariantStatusOutOfStock {
		t.Fatalf("zero stock overrides requested active, got %s", variants[2].Status)
	}
}

func TestProcessVariantsRejectsNegativeStock(t *testing.T) {
	_, err := ProcessVariants([]VariantInput{
		{SKU: "A1", Size: "M", Color: "Red", Price: decPtr("20"), StockQuantity: intPtr(-1)},
	})
	if err == nil {
		t.Fatal("expected error for negative stock")
	}
}

func TestProcessVariantsRejectsUnknownStatus(t *testing.T) {
	_, err := ProcessVariants([]VariantInput{
		{SKU: "A1", Size: "M", Color: "Red", Price: decPtr("20"), Status: strPtr("paused")},
	})
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
}
