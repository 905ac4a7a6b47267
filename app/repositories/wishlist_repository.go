package repositories

import (
	"context"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error)
	Exists(ctx context.Context, userID, productID string) (bool, error)
	Create(ctx context.Context, item *models.WishlistItem) error
	Delete(ctx context.Context, userID, productID string) (bool, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	RecordView(ctx context.Context, userID, productID string, at time.Time) error
	RecentlyViewed(ctx context.Context, userID string, limit int) ([]models.RecentlyViewed, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).Preload("Product").Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *wishlistRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).Count(&count).Error
	return count > 0, err
}

func (r *wishlistRepository) Create(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Omit("Product").Create(item).Error
}

func (r *wishlistRepository) Delete(ctx context.Context, userID, productID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
	return res.RowsAffected > 0, res.Error
}

func (r *wishlistRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WishlistItem{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// RecordView upserts the (user, product) view row with a fresh timestamp.
func (r *wishlistRepository) RecordView(ctx context.Context, userID, productID string, at time.Time) error {
	view := &models.RecentlyViewed{UserID: userID, ProductID: productID, ViewedAt: at}
	return r.db.WithContext(ctx).Omit("Product").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"viewed_at"}),
	}).Create(view).Error
}

func (r *wishlistRepository) RecentlyViewed(ctx context.Context, userID string, limit int) ([]models.RecentlyViewed, error) {
	var views []models.RecentlyViewed
	err := r.db.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&views).Error
	return views, err
}
