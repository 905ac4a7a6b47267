package helpers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/shopspring/decimal"
)

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func queryDecimal(v string) *decimal.Decimal {
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}

// ProductFilterFromQuery reads the catalog filters from the query string.
// Malformed numbers are ignored.
func ProductFilterFromQuery(r *http.Request) repositories.ProductFilter {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return repositories.ProductFilter{
		Category:     strings.TrimSpace(q.Get("category")),
		Search:       strings.TrimSpace(q.Get("search")),
		MinPrice:     queryDecimal(q.Get("min_price")),
		MaxPrice:     queryDecimal(q.Get("max_price")),
		ProductTypes: splitCSV(q.Get("product_types")),
		SkinTypes:    splitCSV(q.Get("skin_types")),
		Concerns:     splitCSV(q.Get("concerns")),
		Page:         page,
		Limit:        limit,
	}
}
