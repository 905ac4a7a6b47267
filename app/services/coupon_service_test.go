package services

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/Rakhulsr/go-cosmetics/app/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

type couponFixture struct {
	db      *gorm.DB
	svc     *CouponService
	cart    *CartService
	coupons repositories.CouponRepository
	carts   repositories.CartRepository
	now     time.Time
}

func newCouponFixture(t *testing.T) *couponFixture {
	t.Helper()
	db := testutil.NewDB(t)
	products := repositories.NewProductRepository(db)
	f := &couponFixture{
		db:      db,
		coupons: repositories.NewCouponRepository(db),
		carts:   repositories.NewCartRepository(db),
		now:     time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewCouponService(db, f.coupons, products, f.carts)
	f.svc.now = func() time.Time { return f.now }
	f.cart = NewCartService(db, f.carts, products)
	return f
}

func (f *couponFixture) addCoupon(t *testing.T, c models.Coupon, productIDs ...string) *models.Coupon {
	t.Helper()
	if c.StartDate.IsZero() {
		c.StartDate = f.now.Add(-24 * time.Hour)
	}
	if c.EndDate.IsZero() {
		c.EndDate = f.now.Add(24 * time.Hour)
	}
	require.NoError(t, f.db.Transaction(func(tx *gorm.DB) error {
		return f.coupons.Create(context.Background(), tx, &c, productIDs)
	}))
	return &c
}

func TestValidatePercentageCoupon(t *testing.T) {
	f := newCouponFixture(t)
	a := testutil.CreateProduct(t, f.db, "A", 100, 10, nil)
	f.addCoupon(t, models.Coupon{
		Code: "SAVE10", DiscountType: models.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10), MinPurchaseAmount: decimal.NewFromInt(50), IsActive: true,
	})

	q, err := f.svc.Validate(context.Background(), "save10", []CartLine{{ProductID: a.ID, Quantity: 2}})
	require.NoError(t, err)
	assertDecimal(t, "20", q.DiscountAmount)
	assertDecimal(t, "200", q.TotalAmount)
}

func TestValidateRejections(t *testing.T) {
	f := newCouponFixture(t)
	ctx := context.Background()
	a := testutil.CreateProduct(t, f.db, "A", 100, 10, nil)
	lines := []CartLine{{ProductID: a.ID, Quantity: 1}}

	f.addCoupon(t, models.Coupon{Code: "OFF", DiscountType: models.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(5), IsActive: false})
	f.addCoupon(t, models.Coupon{
		Code: "OLD", DiscountType: models.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(5), IsActive: true,
		StartDate: f.now.Add(-48 * time.Hour), EndDate: f.now.Add(-24 * time.Hour),
	})
	limit := 1
	used := f.addCoupon(t, models.Coupon{Code: "ONCE", DiscountType: models.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(5), IsActive: true, UsageLimit: &limit})
	require.NoError(t, f.db.Model(used).UpdateColumn("times_used", 1).Error)
	f.addCoupon(t, models.Coupon{Code: "BIG", DiscountType: models.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(5), MinPurchaseAmount: decimal.NewFromInt(500), IsActive: true})

	_, err := f.svc.Validate(ctx, "NOPE", lines)
	assertKind(t, err, apperr.KindNotFound, "Invalid coupon code")
	_, err = f.svc.Validate(ctx, "OFF", lines)
	assertKind(t, err, apperr.KindValidation, "This coupon is no longer active")
	_, err = f.svc.Validate(ctx, "OLD", lines)
	assertKind(t, err, apperr.KindValidation, "This coupon has expired")
	_, err = f.svc.Validate(ctx, "ONCE", lines)
	assertKind(t, err, apperr.KindValidation, "This coupon has reached its usage limit")
	_, err = f.svc.Validate(ctx, "BIG", lines)
	assertKind(t, err, apperr.KindValidation, "Minimum purchase amount of ₹500.00 required")

	available, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, "BIG", available[0].Code)
}

func TestApplyFixedCouponSplitsAcrossEligibleLines(t *testing.T) {
	f := newCouponFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "Asha", "asha@example.com")
	a := testutil.CreateProduct(t, f.db, "A", 100, 10, nil)
	b := testutil.CreateProduct(t, f.db, "B", 50, 10, nil)
	c := testutil.CreateProduct(t, f.db, "C", 200, 10, nil)
	for _, p := range []*models.Product{a, b, c} {
		_, err := f.cart.Add(ctx, user.ID, p.ID, 1)
		require.NoError(t, err)
	}
	coupon := f.addCoupon(t, models.Coupon{Code: "FLAT30", DiscountType: models.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(30), IsActive: true}, a.ID, b.ID)

	lines := []CartLine{{ProductID: a.ID, Quantity: 1}, {ProductID: b.ID, Quantity: 1}, {ProductID: c.ID, Quantity: 1}}
	q, err := f.svc.Apply(ctx, user.ID, "flat30", lines)
	require.NoError(t, err)
	assertDecimal(t, "30", q.DiscountAmount)
	assertDecimal(t, "150", q.EligibleAmount)

	discounts, err := f.carts.DiscountsByUser(ctx, nil, user.ID)
	require.NoError(t, err)
	assertDecimal(t, "20", discounts[a.ID])
	assertDecimal(t, "10", discounts[b.ID])
	assertDecimal(t, "0", discounts[c.ID])

	reloaded, err := f.coupons.FindByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.TimesUsed)
}

func TestApplyRespectsUsageLimit(t *testing.T) {
	f := newCouponFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "Ravi", "ravi@example.com")
	a := testutil.CreateProduct(t, f.db, "A", 100, 10, nil)
	_, err := f.cart.Add(ctx, user.ID, a.ID, 1)
	require.NoError(t, err)
	limit := 1
	f.addCoupon(t, models.Coupon{Code: "ONE", DiscountType: models.DiscountTypePercentage, DiscountValue: decimal.NewFromInt(10), IsActive: true, UsageLimit: &limit})

	lines := []CartLine{{ProductID: a.ID, Quantity: 1}}
	_, err = f.svc.Apply(ctx, user.ID, "ONE", lines)
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, user.ID, "ONE", lines)
	assertKind(t, err, apperr.KindValidation, "This coupon has reached its usage limit")
}

func TestApplyRollsBackOnMinimumPurchase(t *testing.T) {
	f := newCouponFixture(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, f.db, "Meera", "meera@example.com")
	a := testutil.CreateProduct(t, f.db, "A", 100, 10, nil)
	_, err := f.cart.Add(ctx, user.ID, a.ID, 1)
	require.NoError(t, err)
	coupon := f.addCoupon(t, models.Coupon{Code: "MIN1K", DiscountType: models.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(50), MinPurchaseAmount: decimal.NewFromInt(1000), IsActive: true})

	_, err = f.svc.Apply(ctx, user.ID, "MIN1K", []CartLine{{ProductID: a.ID, Quantity: 1}})
	assertKind(t, err, apperr.KindValidation, "Minimum purchase amount of ₹1,000.00 required")

	reloaded, err := f.coupons.FindByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.TimesUsed)
}
