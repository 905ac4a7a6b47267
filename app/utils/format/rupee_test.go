package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestINR(t *testing.T) {
	assert.Equal(t, "₹500.00", INR(decimal.NewFromInt(500)))
	assert.Equal(t, "₹1,499.50", INR(decimal.RequireFromString("1499.5")))
}
