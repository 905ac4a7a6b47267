package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/Rakhulsr/go-cosmetics/app/metrics"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/Rakhulsr/go-cosmetics/app/utils/calc"
	"github.com/Rakhulsr/go-cosmetics/app/utils/format"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

type LineDiscount struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Discount  decimal.Decimal `json:"discount"`
}

type CouponQuote struct {
	Coupon         *models.Coupon  `json:"-"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	EligibleAmount decimal.Decimal `json:"eligible_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Lines          []LineDiscount  `json:"items"`
}

type CouponService struct {
	db          *gorm.DB
	couponRepo  repositories.CouponRepository
	productRepo repositories.ProductRepository
	cartRepo    repositories.CartRepository
	now         func() time.Time
}

func NewCouponService(db *gorm.DB, couponRepo repositories.CouponRepository, productRepo repositories.ProductRepository, cartRepo repositories.CartRepository) *CouponService {
	return &CouponService{
		db:          db,
		couponRepo:  couponRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		now:         time.Now,
	}
}

// List returns coupons a customer can currently redeem.
func (s *CouponService) List(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.couponRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	now := s.now()
	available := make([]models.Coupon, 0, len(coupons))
	for _, c := range coupons {
		if c.InWindow(now) && !c.UsageExhausted() {
			available = append(available, c)
		}
	}
	return available, nil
}

// priceLines resolves the current price of each line. Lines whose product no
// longer exists are dropped.
func (s *CouponService) priceLines(ctx context.Context, lines []CartLine) ([]LineDiscount, error) {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	priced := make([]LineDiscount, 0, len(lines))
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok || l.Quantity < 1 {
			continue
		}
		priced = append(priced, LineDiscount{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Amount:    p.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
			Discount:  decimal.Zero,
		})
	}
	return priced, nil
}

func checkRedeemable(c *models.Coupon, now time.Time) error {
	if c == nil {
		return apperr.NotFound("Invalid coupon code")
	}
	if !c.IsActive {
		return apperr.Validation("This coupon is no longer active")
	}
	if !c.InWindow(now) {
		return apperr.Validation("This coupon has expired")
	}
	if c.UsageExhausted() {
		return apperr.Validation("This coupon has reached its usage limit")
	}
	return nil
}

// quote computes the discount and its per-line split for already priced lines.
func quote(c *models.Coupon, lines []LineDiscount) (*CouponQuote, error) {
	total := decimal.Zero
	eligible := decimal.Zero
	eligibleAmounts := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		total = total.Add(l.Amount)
		if c.AppliesTo(l.ProductID) {
			eligible = eligible.Add(l.Amount)
			eligibleAmounts[i] = l.Amount
		} else {
			eligibleAmounts[i] = decimal.Zero
		}
	}

	if total.LessThan(c.MinPurchaseAmount) {
		return nil, apperr.Validation(fmt.Sprintf("Minimum purchase amount of %s required", format.INR(c.MinPurchaseAmount)))
	}

	discount := calc.CouponDiscount(c.DiscountType, c.DiscountValue, eligible, c.MaxDiscountAmount)
	parts := calc.AllocateDiscount(discount, eligibleAmounts)
	for i := range lines {
		lines[i].Discount = parts[i]
	}

	return &CouponQuote{
		Coupon:         c,
		TotalAmount:    total,
		EligibleAmount: eligible,
		DiscountAmount: discount,
		Lines:          lines,
	}, nil
}

func (s *CouponService) Validate(ctx context.Context, code string, lines []CartLine) (*CouponQuote, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, nil, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load coupon: %w", err)
	}
	if err := checkRedeemable(coupon, s.now()); err != nil {
		return nil, err
	}

	priced, err := s.priceLines(ctx, lines)
	if err != nil {
		return nil, err
	}
	return quote(coupon, priced)
}

// Apply redeems the coupon against the caller's cart: per-line discounts are
// written to the cart rows and the usage counter is bumped in one transaction.
func (s *CouponService) Apply(ctx context.Context, userID, code string, lines []CartLine) (*CouponQuote, error) {
	priced, err := s.priceLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	var result *CouponQuote
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		coupon, err := s.couponRepo.FindByCode(ctx, tx, code)
		if err != nil {
			return fmt.Errorf("failed to load coupon: %w", err)
		}
		if err := checkRedeemable(coupon, s.now()); err != nil {
			return err
		}

		q, err := quote(coupon, priced)
		if err != nil {
			return err
		}

		for _, l := range q.Lines {
			if err := s.cartRepo.SetDiscount(ctx, tx, userID, l.ProductID, l.Discount); err != nil {
				return fmt.Errorf("failed to store cart discount: %w", err)
			}
		}

		ok, err := s.couponRepo.IncrementUsage(ctx, tx, coupon.ID)
		if err != nil {
			return fmt.Errorf("failed to update coupon usage: %w", err)
		}
		if !ok {
			return apperr.Validation("This coupon has reached its usage limit")
		}

		result = q
		return nil
	})
	if err != nil {
		var ae *apperr.Error
		if !errors.As(err, &ae) {
			logger.WithCtx(ctx).Error("CouponService.Apply: transaction rolled back", "code", code, "error", err)
		}
		return nil, err
	}

	metrics.CouponRedemptions.Inc()
	return result, nil
}
