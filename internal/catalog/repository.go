package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
	"github.com/mercaline/mercaline-backend/pkg/enums"
	"github.com/mercaline/mercaline-backend/pkg/pagination"
)

// ErrVersionConflict signals that another writer updated the product between
// our read and our save.
var ErrVersionConflict = errors.New("product was modified concurrently")

// Repository wires together the catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct inserts the aggregate with its variants and gallery in one go.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SlugExists reports whether any product already claims the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("slug = ?", slug).
		Count(&count).
		Error
	return count > 0, err
}

// GetAggregate loads the full product with variants and the ordered gallery.
func (r *Repository) GetAggregate(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("ColorImages").
		Preload("ColorImages.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// IncrementViewCount bumps the view counter without touching anything else.
func (r *Repository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).
		Error
}

// SaveDerivedVersioned persists the product's derived columns guarded by the
// optimistic lock. Returns ErrVersionConflict when another writer won.
func (r *Repository) SaveDerivedVersioned(ctx context.Context, product *models.Product) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND lock_version = ?", product.ID, product.LockVersion).
		Updates(map[string]any{
			"total_stock":      product.TotalStock,
			"min_price":        product.MinPrice,
			"max_price":        product.MaxPrice,
			"inventory_status": product.InventoryStatus,
			"available_colors": product.AvailableColors,
			"available_sizes":  product.AvailableSizes,
			"thumbnail":        product.Thumbnail,
			"lock_version":     gorm.Expr("lock_version + 1"),
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	product.LockVersion++
	return nil
}

// SaveColorImage upserts the gallery entry row (not its images).
func (r *Repository) SaveColorImage(ctx context.Context, entry *models.ColorImage) error {
	return r.db.WithContext(ctx).
		Omit("Images").
		Save(entry).
		Error
}

// CreateImages inserts new image rows for a color entry.
func (r *Repository) CreateImages(ctx context.Context, images []models.ProductImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

// UpdateImageOrders writes the sort_order of each image row.
func (r *Repository) UpdateImageOrders(ctx context.Context, images []models.ProductImage) error {
	for _, img := range images {
		err := r.db.WithContext(ctx).
			Model(&models.ProductImage{}).
			Where("id = ?", img.ID).
			UpdateColumn("sort_order", img.SortOrder).
			Error
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteImage removes one image row.
func (r *Repository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ProductImage{}).
		Error
}

// ListSummaries returns one page of active-product summaries plus the total
// row count for the filter set.
func (r *Repository) ListSummaries(ctx context.Context, input ListInput) ([]models.Product, int64, error) {
	order, err := orderClause(input.SortBy, input.SortOrder)
	if err != nil {
		return nil, 0, err
	}

	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("status = ?", enums.ProductStatusActive)

	filters := input.Filters
	if filters.Category != nil {
		qb = qb.Where("category = ?", *filters.Category)
	}
	if filters.Brand != nil {
		qb = qb.Where("brand ILIKE ?", "%"+*filters.Brand+"%")
	}
	if filters.MinPrice != nil {
		qb = qb.Where("base_price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		qb = qb.Where("base_price <= ?", *filters.MaxPrice)
	}
	if filters.InStockOnly {
		qb = qb.Where("inventory_status IN ?", []enums.InventoryStatus{
			enums.InventoryStatusInStock,
			enums.InventoryStatusLowStock,
		})
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := input.Pagination.Normalize()
	var rows []models.Product
	err = qb.
		Order(order).
		Limit(params.Limit).
		Offset(input.Pagination.Offset()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// CountProducts returns the catalog size regardless of status.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

// ListRecent returns the newest products for the dashboard.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pagination.NormalizeLimit(limit)).
		Find(&rows).
		Error
	return rows, err
}

// FindByID loads the product row without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindVariantBySKU loads a variant of the product by its SKU.
func (r *Repository) FindVariantBySKU(ctx context.Context, productID uuid.UUID, sku string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		First(&variant, "product_id = ? AND sku = ?", productID, sku).
		Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}
