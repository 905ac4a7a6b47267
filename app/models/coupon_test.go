package models_test

import (
	"testing"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/stretchr/testify/assert"
)

func TestCouponAppliesTo(t *testing.T) {
	all := &models.Coupon{}
	assert.True(t, all.AppliesTo("any-product"))

	scoped := &models.Coupon{ProductIDs: []string{"p1", "p2"}}
	assert.True(t, scoped.AppliesTo("p2"))
	assert.False(t, scoped.AppliesTo("p3"))
}

func TestCouponWindowAndUsage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := &models.Coupon{
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}
	assert.True(t, c.InWindow(now))
	assert.False(t, c.InWindow(now.Add(2*time.Hour)))
	assert.False(t, c.InWindow(now.Add(-2*time.Hour)))

	assert.False(t, c.UsageExhausted())
	limit := 2
	c.UsageLimit = &limit
	c.TimesUsed = 2
	assert.True(t, c.UsageExhausted())
}

func TestProductSetConcerns(t *testing.T) {
	p := &models.Product{ID: "p1"}
	p.SetConcerns([]string{"acne", "", "dryness", "acne"})

	assert.Equal(t, []string{"acne", "dryness"}, p.ConcernList)
	assert.Len(t, p.Concerns, 2)
	assert.Equal(t, "p1", p.Concerns[0].ProductID)
}

func TestPaymentMethodDisplay(t *testing.T) {
	assert.Equal(t, "Cash on Delivery", models.PaymentMethodDisplay(models.PaymentMethodCOD))
	assert.Equal(t, "Online Payment", models.PaymentMethodDisplay(models.PaymentMethodOnline))
}
