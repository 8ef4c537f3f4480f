package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
)

type fakeUserLoader struct {
	rows map[uuid.UUID]*models.User
}

func (f *fakeUserLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if row, ok := f.rows[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestValidateCreateInput(t *testing.T) {
	price := decimal.NewFromInt(50)

	valid := CreateProductInput{
		Name:      "Air Runner",
		Category:  "sneakers",
		Brand:     "Mercaline",
		BasePrice: &price,
		Variants:  []VariantInput{{SKU: "AR-9-BLK", Size: "9", Color: "Black", Price: &price}},
	}
	if err := validateCreateInput(valid); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	t.Run("missing fields", func(t *testing.T) {
		err := validateCreateInput(CreateProductInput{Brand: "Mercaline"})
		if err == nil {
			t.Fatal("expected validation error")
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation code, got %v", err)
		}
		details, ok := typed.Details().(map[string]any)
		if !ok {
			t.Fatalf("expected details map, got %T", typed.Details())
		}
		missing, ok := details["missing"].([]string)
		if !ok || len(missing) != 4 {
			t.Fatalf("expected 4 missing fields, got %v", details["missing"])
		}
	})

	t.Run("negative base price", func(t *testing.T) {
		negative := decimal.NewFromInt(-1)
		input := valid
		input.BasePrice = &negative
		err := validateCreateInput(input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestResolveProductStatus(t *testing.T) {
	status, err := resolveProductStatus(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(status) != "active" {
		t.Fatalf("expected active default, got %s", status)
	}

	draft := "draft"
	status, err = resolveProductStatus(&draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(status) != "draft" {
		t.Fatalf("expected draft, got %s", status)
	}

	bogus := "retired"
	if _, err := resolveProductStatus(&bogus); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestEnsureUser(t *testing.T) {
	activeID := uuid.New()
	disabledID := uuid.New()
	svc := &service{
		userRepo: &fakeUserLoader{
			rows: map[uuid.UUID]*models.User{
				activeID:   {ID: activeID, IsActive: true},
				disabledID: {ID: disabledID, IsActive: false},
			},
		},
	}

	t.Run("active user", func(t *testing.T) {
		if err := svc.ensureUser(context.Background(), activeID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("nil user id", func(t *testing.T) {
		err := svc.ensureUser(context.Background(), uuid.Nil)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.ensureUser(context.Background(), uuid.New())
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("disabled user", func(t *testing.T) {
		err := svc.ensureUser(context.Background(), disabledID)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})
}

func TestDeleteImageScopedToNamedColor(t *testing.T) {
	redImageID := uuid.New()
	blueImageID := uuid.New()
	product := &models.Product{
		ColorImages: []models.ColorImage{
			{Color: "Red", Images: []models.ProductImage{{ID: redImageID, URL: "/public/images/red.jpg"}}},
			{Color: "Blue", Images: []models.ProductImage{{ID: blueImageID, URL: "/public/images/blue.jpg"}}},
		},
	}

	entry := findColorEntry(product, "Blue")
	if entry == nil {
		t.Fatal("expected blue entry")
	}

	// An image id belonging to another color must not resolve here.
	_, err := DeleteImage(entry, redImageID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(product.ColorImages[0].Images) != 1 {
		t.Fatal("red gallery must be untouched by a blue-scoped delete")
	}

	if findColorEntry(product, "Green") != nil {
		t.Fatal("expected nil entry for a color the product does not have")
	}
}

func TestFindColorEntry(t *testing.T) {
	product := &models.Product{
		ColorImages: []models.ColorImage{
			{Color: "Black"},
			{Color: "Royal Blue"},
		},
	}

	entry := findColorEntry(product, "royal blue")
	if entry == nil || entry.Color != "Royal Blue" {
		t.Fatalf("expected case-insensitive match, got %v", entry)
	}
	if findColorEntry(product, "Red") != nil {
		t.Fatal("expected nil for unknown color")
	}
}
