package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	FindByUserAndProduct(ctx context.Context, tx *gorm.DB, userID, productID string) (*models.CartItem, error)
	FindForUser(ctx context.Context, id, userID string) (*models.CartItem, error)
	Create(ctx context.Context, tx *gorm.DB, item *models.CartItem) error
	IncrementQuantity(ctx context.Context, tx *gorm.DB, id string, qty int) error
	UpdateQuantity(ctx context.Context, id, userID string, qty int) (bool, error)
	SetSelected(ctx context.Context, id, userID string, selected bool) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	ClearByUser(ctx context.Context, tx *gorm.DB, userID string) error
	SetDiscount(ctx context.Context, tx *gorm.DB, userID, productID string, amount decimal.Decimal) error
	DiscountsByUser(ctx context.Context, tx *gorm.DB, userID string) (map[string]decimal.Decimal, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db}
}

func (r *cartRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *cartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *cartRepository) FindByUserAndProduct(ctx context.Context, tx *gorm.DB, userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.conn(tx).WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindForUser(ctx context.Context, id, userID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Preload("Product").Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Create(ctx context.Context, tx *gorm.DB, item *models.CartItem) error {
	return r.conn(tx).WithContext(ctx).Omit("Product").Create(item).Error
}

func (r *cartRepository) IncrementQuantity(ctx context.Context, tx *gorm.DB, id string, qty int) error {
	return r.conn(tx).WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty)).Error
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id, userID string, qty int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", qty)
	return r.matched(ctx, res, id, userID)
}

func (r *cartRepository) SetSelected(ctx context.Context, id, userID string, selected bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("selected", selected)
	return r.matched(ctx, res, id, userID)
}

// matched reports whether an owner-scoped update hit a row. MySQL counts only
// changed rows unless clientFoundRows is set, so a no-op update falls back to
// an existence check.
func (r *cartRepository) matched(ctx context.Context, res *gorm.DB, id, userID string) (bool, error) {
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *cartRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.CartItem{})
	return res.RowsAffected > 0, res.Error
}

func (r *cartRepository) ClearByUser(ctx context.Context, tx *gorm.DB, userID string) error {
	return r.conn(tx).WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (r *cartRepository) SetDiscount(ctx context.Context, tx *gorm.DB, userID, productID string, amount decimal.Decimal) error {
	return r.conn(tx).WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("discount_amount", amount).Error
}

func (r *cartRepository) DiscountsByUser(ctx context.Context, tx *gorm.DB, userID string) (map[string]decimal.Decimal, error) {
	var items []models.CartItem
	if err := r.conn(tx).WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		out[it.ProductID] = it.DiscountAmount
	}
	return out, nil
}

func (r *cartRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
