package calc

import (
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func CalculateDiscount(baseTotal, discountPercent decimal.Decimal) decimal.Decimal {
	return baseTotal.Mul(discountPercent).Div(hundred)
}

// CouponDiscount is the discount a coupon grants on the eligible amount.
// Percentage coupons are capped by maxDiscount when it is set; fixed coupons
// never exceed the eligible amount. The result is rounded to paise.
func CouponDiscount(discountType string, value, eligible decimal.Decimal, maxDiscount decimal.NullDecimal) decimal.Decimal {
	if !eligible.IsPositive() || !value.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch discountType {
	case models.DiscountTypePercentage:
		discount = CalculateDiscount(eligible, value)
		if maxDiscount.Valid && discount.GreaterThan(maxDiscount.Decimal) {
			discount = maxDiscount.Decimal
		}
	case models.DiscountTypeFixed:
		discount = decimal.Min(value, eligible)
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(eligible) {
		discount = eligible
	}
	return discount.Round(2)
}

// AllocateDiscount splits total across lines in proportion to each line
// amount. Shares are floored to paise and the last positive line takes the
// remainder, so parts are never negative, never exceed their line and always
// sum to total.
func AllocateDiscount(total decimal.Decimal, lines []decimal.Decimal) []decimal.Decimal {
	parts := make([]decimal.Decimal, len(lines))
	for i := range parts {
		parts[i] = decimal.Zero
	}

	sum := decimal.Zero
	last := -1
	for i, l := range lines {
		if l.IsPositive() {
			sum = sum.Add(l)
			last = i
		}
	}
	if last < 0 || !total.IsPositive() {
		return parts
	}
	if total.GreaterThan(sum) {
		total = sum
	}

	allocated := decimal.Zero
	for i, l := range lines {
		if !l.IsPositive() || i == last {
			continue
		}
		share := decimal.Min(total.Mul(l).Div(sum).RoundFloor(2), total.Sub(allocated))
		parts[i] = share
		allocated = allocated.Add(share)
	}

	// The remainder can exceed a small last line; hand the excess back to
	// earlier lines that still have room.
	rest := total.Sub(allocated)
	if rest.GreaterThan(lines[last]) {
		excess := rest.Sub(lines[last])
		rest = lines[last]
		for i, l := range lines {
			if !excess.IsPositive() {
				break
			}
			if i == last || !l.IsPositive() {
				continue
			}
			room := decimal.Min(l.Sub(parts[i]), excess)
			if room.IsPositive() {
				parts[i] = parts[i].Add(room)
				excess = excess.Sub(room)
			}
		}
	}
	parts[last] = rest
	return parts
}

// ToMinorUnits converts rupees to paise for the payment gateway.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
