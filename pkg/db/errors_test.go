package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationNil(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error reported as unique violation")
	}
}

func TestIsUniqueViolationPgError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_products_slug",
	})

	if !IsUniqueViolation(err, "") {
		t.Error("unique violation not detected without constraint filter")
	}
	if !IsUniqueViolation(err, "idx_products_slug") {
		t.Error("unique violation not detected for matching constraint")
	}
	if IsUniqueViolation(err, "idx_variants_sku") {
		t.Error("unique violation reported for the wrong constraint")
	}
}

func TestIsUniqueViolationOtherPgCode(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "fk_products_category"}
	if IsUniqueViolation(err, "") {
		t.Fatal("foreign key violation reported as unique violation")
	}
}

func TestIsUniqueViolationMessageFallback(t *testing.T) {
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: products.slug"), "") {
		t.Error("sqlite unique violation message not detected")
	}
	if !IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "idx_products_slug"`), "idx_products_slug") {
		t.Error("postgres duplicate key message not detected")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Error("unrelated error reported as unique violation")
	}
}
