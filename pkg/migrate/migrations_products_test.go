package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mercaline/mercaline-backend/pkg/migrate"
)

func TestProductsMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_products_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no product migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS product_variants",
		"CREATE TABLE IF NOT EXISTS color_images",
		"CREATE TABLE IF NOT EXISTS product_images",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_products_slug",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_variants_sku",
		"CREATE INDEX IF NOT EXISTS idx_product_images_color_sort",
		"lock_version INTEGER NOT NULL DEFAULT 0",
		"available_colors JSONB NOT NULL DEFAULT '[]'",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
