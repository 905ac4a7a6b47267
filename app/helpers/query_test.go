package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductFilterFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?category=Skincare&min_price=500&max_price=abc&concerns=acne,%20dryness,&page=2&limit=5", nil)
	f := ProductFilterFromQuery(r)

	assert.Equal(t, "Skincare", f.Category)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, "500", f.MinPrice.String())
	assert.Nil(t, f.MaxPrice)
	assert.Equal(t, []string{"acne", "dryness"}, f.Concerns)
	assert.Nil(t, f.SkinTypes)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 5, f.Limit)
}
