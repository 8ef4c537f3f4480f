package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
	"github.com/mercaline/mercaline-backend/pkg/enums"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
)

type fakeProductLoader struct {
	products map[uuid.UUID]*models.Product
	variants map[string]*models.ProductVariant
}

func (f *fakeProductLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductLoader) FindVariantBySKU(ctx context.Context, productID uuid.UUID, sku string) (*models.ProductVariant, error) {
	if v, ok := f.variants[sku]; ok && v.ProductID == productID {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestAddItemValidation(t *testing.T) {
	activeID := uuid.New()
	draftID := uuid.New()
	price := decimal.NewFromInt(80)

	svc := &service{
		products: &fakeProductLoader{
			products: map[uuid.UUID]*models.Product{
				activeID: {ID: activeID, Status: enums.ProductStatusActive},
				draftID:  {ID: draftID, Status: enums.ProductStatusDraft},
			},
			variants: map[string]*models.ProductVariant{
				"IN-STOCK": {ProductID: activeID, SKU: "IN-STOCK", Price: price, StockQuantity: 4, Status: enums.VariantStatusActive},
				"EMPTY":    {ProductID: activeID, SKU: "EMPTY", Price: price, StockQuantity: 0, Status: enums.VariantStatusOutOfStock},
			},
		},
	}
	ctx := context.Background()

	cases := []struct {
		name  string
		input AddItemInput
		code  pkgerrors.Code
	}{
		{"zero quantity", AddItemInput{ProductID: activeID, VariantSKU: "IN-STOCK", Quantity: 0}, pkgerrors.CodeValidation},
		{"excessive quantity", AddItemInput{ProductID: activeID, VariantSKU: "IN-STOCK", Quantity: 100}, pkgerrors.CodeValidation},
		{"unknown product", AddItemInput{ProductID: uuid.New(), VariantSKU: "IN-STOCK", Quantity: 1}, pkgerrors.CodeNotFound},
		{"inactive product", AddItemInput{ProductID: draftID, VariantSKU: "IN-STOCK", Quantity: 1}, pkgerrors.CodeValidation},
		{"unknown variant", AddItemInput{ProductID: activeID, VariantSKU: "MISSING", Quantity: 1}, pkgerrors.CodeNotFound},
		{"out of stock variant", AddItemInput{ProductID: activeID, VariantSKU: "EMPTY", Quantity: 1}, pkgerrors.CodeValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, uuid.New(), tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestNewCartDTOTotals(t *testing.T) {
	productID := uuid.New()
	thumbnail := "/public/images/thumb.jpg"
	cart := &models.Cart{
		ID: uuid.New(),
		Items: []models.CartItem{
			{ID: uuid.New(), ProductID: productID, VariantSKU: "A", Quantity: 2, UnitPrice: decimal.RequireFromString("19.99")},
			{ID: uuid.New(), ProductID: productID, VariantSKU: "B", Quantity: 1, UnitPrice: decimal.RequireFromString("5.50")},
		},
	}
	products := map[uuid.UUID]*models.Product{
		productID: {ID: productID, Name: "Air Runner", Thumbnail: &thumbnail},
	}

	dto := NewCartDTO(cart, products)

	if dto.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", dto.ItemCount)
	}
	if !dto.Items[0].LineTotal.Equal(decimal.RequireFromString("39.98")) {
		t.Fatalf("expected line total 39.98, got %s", dto.Items[0].LineTotal)
	}
	if !dto.Total.Equal(decimal.RequireFromString("45.48")) {
		t.Fatalf("expected cart total 45.48, got %s", dto.Total)
	}
	if dto.Items[0].ProductName != "Air Runner" {
		t.Fatalf("expected product name on line, got %q", dto.Items[0].ProductName)
	}
	if dto.Items[0].Thumbnail == nil || *dto.Items[0].Thumbnail != thumbnail {
		t.Fatalf("expected thumbnail on line, got %v", dto.Items[0].Thumbnail)
	}
}

func TestNewCartDTOEmptyCart(t *testing.T) {
	dto := NewCartDTO(&models.Cart{ID: uuid.New()}, nil)
	if dto.ItemCount != 0 || len(dto.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", dto)
	}
	if !dto.Total.Equal(decimal.Zero) {
		t.Fatalf("expected zero total, got %s", dto.Total)
	}
}
