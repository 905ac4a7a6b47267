package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	ParentID    *string `json:"parent_id"`
}

// CouponInput is used for create and update. On update, nil fields keep the
// stored value and a nil ProductIDs keeps the product scope.
type CouponInput struct {
	Code              string           `json:"code"`
	Description       *string          `json:"description"`
	DiscountType      string           `json:"discount_type" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue     *decimal.Decimal `json:"discount_value"`
	MinPurchaseAmount *decimal.Decimal `json:"min_purchase_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	StartDate         *time.Time       `json:"start_date"`
	EndDate           *time.Time       `json:"end_date"`
	UsageLimit        *int             `json:"usage_limit" validate:"omitempty,min=0"`
	IsActive          *bool            `json:"is_active"`
	ProductIDs        []string         `json:"product_ids"`
}

type AdminService struct {
	db           *gorm.DB
	reportRepo   repositories.ReportRepository
	categoryRepo repositories.CategoryRepository
	couponRepo   repositories.CouponRepository
}

func NewAdminService(db *gorm.DB, reportRepo repositories.ReportRepository, categoryRepo repositories.CategoryRepository, couponRepo repositories.CouponRepository) *AdminService {
	return &AdminService{db: db, reportRepo: reportRepo, categoryRepo: categoryRepo, couponRepo: couponRepo}
}

func (s *AdminService) Stats(ctx context.Context) (*repositories.DashboardStats, error) {
	stats, err := s.reportRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return stats, nil
}

func (s *AdminService) Users(ctx context.Context) ([]repositories.UserSpend, error) {
	users, err := s.reportRepo.UsersWithSpend(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

func (s *AdminService) ProductAnalytics(ctx context.Context) ([]repositories.ProductAnalytics, error) {
	rows, err := s.reportRepo.ProductAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load product analytics: %w", err)
	}
	for i := range rows {
		rows[i].AverageRating = roundRating(rows[i].AverageRating)
	}
	return rows, nil
}

func (s *AdminService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("Category name is required")
	}
	exists, err := s.categoryRepo.NameExists(ctx, name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("Category name already exists")
	}
	if err := s.checkParent(ctx, in.ParentID, ""); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Description: in.Description, ImageURL: in.ImageURL, ParentID: emptyToNil(in.ParentID)}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func emptyToNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func (s *AdminService) checkParent(ctx context.Context, parentID *string, selfID string) error {
	if parentID == nil || *parentID == "" {
		return nil
	}
	if *parentID == selfID {
		return apperr.Validation("A category cannot be its own parent")
	}
	parent, err := s.categoryRepo.GetByID(ctx, *parentID)
	if err != nil {
		return fmt.Errorf("failed to load parent category: %w", err)
	}
	if parent == nil {
		return apperr.Validation("Parent category not found")
	}
	return nil
}

// UpdateCategory always rewrites parent_id, so omitting it detaches the
// category from its parent.
func (s *AdminService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return nil, apperr.NotFound("Category not found")
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		exists, err := s.categoryRepo.NameExists(ctx, name, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		if exists {
			return nil, apperr.Conflict("Category name already exists")
		}
		category.Name = name
	}
	if err := s.checkParent(ctx, in.ParentID, id); err != nil {
		return nil, err
	}
	if in.Description != "" {
		category.Description = in.Description
	}
	if in.ImageURL != "" {
		category.ImageURL = in.ImageURL
	}
	category.ParentID = emptyToNil(in.ParentID)
	category.Parent = nil

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return apperr.NotFound("Category not found")
	}
	children, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count subcategories: %w", err)
	}
	if children > 0 {
		return apperr.Validation("Cannot delete category with existing subcategories")
	}
	products, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if products > 0 {
		return apperr.Validation("Cannot delete category with existing products")
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *AdminService) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.couponRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

func applyCouponInput(c *models.Coupon, in CouponInput) {
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.DiscountType != "" {
		c.DiscountType = in.DiscountType
	}
	if in.DiscountValue != nil {
		c.DiscountValue = *in.DiscountValue
	}
	if in.MinPurchaseAmount != nil {
		c.MinPurchaseAmount = *in.MinPurchaseAmount
	}
	if in.MaxDiscountAmount != nil {
		c.MaxDiscountAmount = decimal.NewNullDecimal(*in.MaxDiscountAmount)
	}
	if in.StartDate != nil {
		c.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		c.EndDate = *in.EndDate
	}
	if in.UsageLimit != nil {
		limit := *in.UsageLimit
		c.UsageLimit = &limit
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
}

func validateCoupon(c *models.Coupon) error {
	if c.DiscountType != models.DiscountTypePercentage && c.DiscountType != models.DiscountTypeFixed {
		return apperr.Validation("Discount type must be percentage or fixed")
	}
	if !c.DiscountValue.IsPositive() {
		return apperr.Validation("Discount value must be greater than zero")
	}
	if c.DiscountType == models.DiscountTypePercentage && c.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return apperr.Validation("Percentage discount cannot exceed 100")
	}
	if c.MinPurchaseAmount.IsNegative() {
		return apperr.Validation("Minimum purchase amount cannot be negative")
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return apperr.Validation("Start and end dates are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return apperr.Validation("End date must be after start date")
	}
	return nil
}

func (s *AdminService) CreateCoupon(ctx context.Context, in CouponInput) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return nil, apperr.Validation("Coupon code is required")
	}
	coupon := &models.Coupon{Code: code, IsActive: true, MinPurchaseAmount: decimal.Zero}
	applyCouponInput(coupon, in)
	if err := validateCoupon(coupon); err != nil {
		return nil, err
	}

	exists, err := s.couponRepo.CodeExists(ctx, code, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check coupon code: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("Coupon code already exists")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.couponRepo.Create(ctx, tx, coupon, in.ProductIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

func (s *AdminService) UpdateCoupon(ctx context.Context, id string, in CouponInput) (*models.Coupon, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load coupon: %w", err)
	}
	if coupon == nil {
		return nil, apperr.NotFound("Coupon not found")
	}

	if code := strings.ToUpper(strings.TrimSpace(in.Code)); code != "" && code != coupon.Code {
		exists, err := s.couponRepo.CodeExists(ctx, code, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check coupon code: %w", err)
		}
		if exists {
			return nil, apperr.Conflict("Coupon code already exists")
		}
		coupon.Code = code
	}
	applyCouponInput(coupon, in)
	if err := validateCoupon(coupon); err != nil {
		return nil, err
	}

	productIDs := in.ProductIDs
	if productIDs == nil {
		productIDs = coupon.ProductIDs
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.couponRepo.Update(ctx, tx, coupon, productIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}
	return coupon, nil
}

func (s *AdminService) DeleteCoupon(ctx context.Context, id string) error {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load coupon: %w", err)
	}
	if coupon == nil {
		return apperr.NotFound("Coupon not found")
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.couponRepo.Delete(ctx, tx, id)
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	return nil
}
