package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var inr = accounting.Accounting{Symbol: "₹", Precision: 2, Thousand: ",", Decimal: "."}

// INR formats an amount like ₹1,499.00.
func INR(amount decimal.Decimal) string {
	return inr.FormatMoneyDecimal(amount)
}
