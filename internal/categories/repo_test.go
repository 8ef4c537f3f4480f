package categories

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("MERCALINE_DB_DSN")
	if dsn == "" {
		t.Skip("MERCALINE_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func TestCategoryLifecycle(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	svc, err := NewService(NewRepository(tx))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	ctx := context.Background()

	name := fmt.Sprintf("Sneakers %s", uuid.NewString())
	category, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: name})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	_, err = svc.CreateCategory(ctx, CreateCategoryInput{Name: name})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate name, got %v", err)
	}

	sub, err := svc.CreateSubcategory(ctx, CreateSubcategoryInput{
		CategoryID: category.ID,
		Name:       "Running",
	})
	if err != nil {
		t.Fatalf("create subcategory: %v", err)
	}

	err = svc.DeleteCategory(ctx, category.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict deleting category with subcategories, got %v", err)
	}

	if err := svc.DeleteSubcategory(ctx, sub.ID); err != nil {
		t.Fatalf("delete subcategory: %v", err)
	}
	if err := svc.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	_, err = svc.GetCategory(ctx, category.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
