package calc

import (
	"testing"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCouponDiscountPercentage(t *testing.T) {
	got := CouponDiscount(models.DiscountTypePercentage, d("10"), d("200"), decimal.NullDecimal{})
	assert.True(t, d("20").Equal(got), got.String())

	capped := CouponDiscount(models.DiscountTypePercentage, d("50"), d("1000"), decimal.NewNullDecimal(d("150")))
	assert.True(t, d("150").Equal(capped), capped.String())
}

func TestCouponDiscountFixed(t *testing.T) {
	got := CouponDiscount(models.DiscountTypeFixed, d("100"), d("250"), decimal.NullDecimal{})
	assert.True(t, d("100").Equal(got))

	limited := CouponDiscount(models.DiscountTypeFixed, d("500"), d("250"), decimal.NullDecimal{})
	assert.True(t, d("250").Equal(limited))
}

func TestCouponDiscountNeverExceedsBounds(t *testing.T) {
	eligibles := []string{"0", "0.01", "49.99", "100", "12345.67"}
	values := []string{"1", "33.33", "99", "100", "250"}
	caps := []decimal.NullDecimal{{}, decimal.NewNullDecimal(d("10")), decimal.NewNullDecimal(d("5000"))}

	for _, e := range eligibles {
		for _, v := range values {
			for _, c := range caps {
				pct := CouponDiscount(models.DiscountTypePercentage, d(v).Mod(d("100")).Add(d("1")), d(e), c)
				if c.Valid {
					assert.True(t, pct.LessThanOrEqual(c.Decimal), "cap %s eligible %s value %s got %s", c.Decimal, e, v, pct)
				}
				assert.True(t, pct.LessThanOrEqual(d(e)))

				fixed := CouponDiscount(models.DiscountTypeFixed, d(v), d(e), c)
				assert.True(t, fixed.LessThanOrEqual(d(e)))
			}
		}
	}
}

func TestCouponDiscountUnknownType(t *testing.T) {
	assert.True(t, CouponDiscount("bogo", d("10"), d("100"), decimal.NullDecimal{}).IsZero())
}

func TestAllocateDiscountSumsToTotal(t *testing.T) {
	lines := []decimal.Decimal{d("100"), d("0"), d("33.33"), d("66.67")}
	parts := AllocateDiscount(d("10"), lines)

	sum := decimal.Zero
	for _, p := range parts {
		sum = sum.Add(p)
	}
	assert.True(t, d("10").Equal(sum), sum.String())
	assert.True(t, parts[1].IsZero())
	assert.True(t, d("5").Equal(parts[0]), parts[0].String())
}

func TestAllocateDiscountClampsToLineSum(t *testing.T) {
	parts := AllocateDiscount(d("500"), []decimal.Decimal{d("100"), d("50")})
	assert.True(t, d("100").Equal(parts[0]))
	assert.True(t, d("50").Equal(parts[1]))
}

func TestAllocateDiscountTinyTotalOverManyLines(t *testing.T) {
	lines := []decimal.Decimal{d("1"), d("1"), d("1"), d("1"), d("1")}
	parts := AllocateDiscount(d("0.03"), lines)

	sum := decimal.Zero
	for i, p := range parts {
		assert.False(t, p.IsNegative(), "part %d: %s", i, p)
		assert.True(t, p.LessThanOrEqual(lines[i]), "part %d: %s", i, p)
		sum = sum.Add(p)
	}
	assert.True(t, d("0.03").Equal(sum), sum.String())
}

func TestAllocateDiscountSmallLastLine(t *testing.T) {
	lines := []decimal.Decimal{d("0.05"), d("0.05"), d("0.05"), d("0.01")}
	parts := AllocateDiscount(d("0.16"), lines)

	sum := decimal.Zero
	for i, p := range parts {
		assert.True(t, p.LessThanOrEqual(lines[i]), "part %d: %s", i, p)
		sum = sum.Add(p)
	}
	assert.True(t, d("0.16").Equal(sum), sum.String())
}

func TestAllocateDiscountNoEligibleLines(t *testing.T) {
	parts := AllocateDiscount(d("10"), []decimal.Decimal{d("0")})
	assert.True(t, parts[0].IsZero())
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(49999), ToMinorUnits(d("499.99")))
	assert.Equal(t, int64(100), ToMinorUnits(d("1")))
}
