package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"gorm.io/gorm"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, tx *gorm.DB, code string) (*models.Coupon, error)
	FindByID(ctx context.Context, id string) (*models.Coupon, error)
	ListActive(ctx context.Context) ([]models.Coupon, error)
	ListAll(ctx context.Context) ([]models.Coupon, error)
	CodeExists(ctx context.Context, code, excludeID string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, coupon *models.Coupon, productIDs []string) error
	Update(ctx context.Context, tx *gorm.DB, coupon *models.Coupon, productIDs []string) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	IncrementUsage(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// FindByCode looks the coupon up case-insensitively with its product scope loaded.
func (r *couponRepository) FindByCode(ctx context.Context, tx *gorm.DB, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.conn(tx).WithContext(ctx).
		Preload("Products").
		Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindByID(ctx context.Context, id string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).Preload("Products").First(&coupon, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) ListActive(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db.WithContext(ctx).Preload("Products").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&coupons).Error
	return coupons, err
}

func (r *couponRepository) ListAll(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db.WithContext(ctx).Preload("Products").Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}

func (r *couponRepository) CodeExists(ctx context.Context, code, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Coupon{}).Where("UPPER(code) = ?", strings.ToUpper(code))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *couponRepository) Create(ctx context.Context, tx *gorm.DB, coupon *models.Coupon, productIDs []string) error {
	if err := tx.WithContext(ctx).Omit("Products").Create(coupon).Error; err != nil {
		return err
	}
	return r.replaceProducts(ctx, tx, coupon, productIDs)
}

func (r *couponRepository) Update(ctx context.Context, tx *gorm.DB, coupon *models.Coupon, productIDs []string) error {
	if err := tx.WithContext(ctx).Omit("Products", "created_at", "times_used").Save(coupon).Error; err != nil {
		return err
	}
	return r.replaceProducts(ctx, tx, coupon, productIDs)
}

func (r *couponRepository) replaceProducts(ctx context.Context, tx *gorm.DB, coupon *models.Coupon, productIDs []string) error {
	products := make([]models.Product, 0, len(productIDs))
	if len(productIDs) > 0 {
		if err := tx.WithContext(ctx).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return err
		}
	}
	if err := tx.WithContext(ctx).Model(coupon).Association("Products").Replace(products); err != nil {
		return err
	}
	coupon.Products = products
	return coupon.AfterFind(tx)
}

func (r *couponRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	coupon := &models.Coupon{ID: id}
	if err := tx.WithContext(ctx).Model(coupon).Association("Products").Clear(); err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&models.Coupon{}, "id = ?", id).Error
}

// IncrementUsage bumps times_used unless the usage limit is already reached,
// so concurrent redemptions cannot overshoot the limit.
func (r *couponRepository) IncrementUsage(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	res := tx.WithContext(ctx).Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit IS NULL OR times_used < usage_limit)", id).
		UpdateColumn("times_used", gorm.Expr("times_used + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
