package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
	"github.com/mercaline/mercaline-backend/pkg/enums"
)

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Repo Tester",
		Email:        fmt.Sprintf("mcl_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Role:         enums.UserRoleUser,
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, status enums.ProductStatus) *models.Product {
	t.Helper()

	now := time.Now().UTC()
	price := decimal.NewFromInt(120)
	product := &models.Product{
		Name:        fmt.Sprintf("Test Product %s", uuid.NewString()),
		Slug:        fmt.Sprintf("test-product-%s", uuid.NewString()),
		Description: "repo test product",
		Category:    "sneakers",
		Brand:       "Mercaline",
		BasePrice:   price,
		Status:      status,
		Variants: []models.ProductVariant{
			{
				SKU:             fmt.Sprintf("SKU-%s", uuid.NewString()),
				Size:            "9",
				Color:           "Black",
				Price:           price,
				StockQuantity:   12,
				Status:          enums.VariantStatusActive,
				LastStockUpdate: &now,
			},
		},
		ColorImages: []models.ColorImage{
			{
				Color: "Black",
				Images: []models.ProductImage{
					{URL: "/public/images/black-1.jpg", ImageType: enums.ImageTypeMain, IsPrimary: true, SortOrder: 1},
					{URL: "/public/images/black-2.jpg", ImageType: enums.ImageTypeSide, SortOrder: 2},
				},
			},
		},
	}
	Recompute(product)

	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
