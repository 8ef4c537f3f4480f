package watchlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
)

// Repository exposes watchlist persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a watchlist repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Toggle inserts the entry when absent and deletes it when present. Returns
// true when the product ends up watched.
func (r *Repository) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var existing models.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).
		Error
	switch {
	case err == nil:
		if err := r.db.WithContext(ctx).Delete(&existing).Error; err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := models.WatchlistItem{UserID: userID, ProductID: productID}
		if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// ListProductIDs returns one page of watched product ids, newest first, plus
// the total count.
func (r *Repository) ListProductIDs(ctx context.Context, userID uuid.UUID, limit, offset int) ([]uuid.UUID, int64, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.WatchlistItem{}).
		Where("user_id = ?", userID)

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uuid.UUID
	err := qb.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Pluck("product_id", &ids).
		Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

// IsWatched reports whether the user watches the product.
func (r *Repository) IsWatched(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WatchlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).
		Error
	return count > 0, err
}
