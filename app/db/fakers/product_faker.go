package fakers

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/shopspring/decimal"
)

var (
	brands       = []string{"Lumiere", "Velvet Bloom", "Aqua Ritual", "Rosewood", "Nalini", "Kesar & Co"}
	productTypes = []string{"Serum", "Moisturizer", "Cleanser", "Lipstick", "Foundation", "Shampoo", "Face Mask", "Sunscreen"}
	skinTypes    = []string{"all", "oily", "dry", "combination", "sensitive"}
	sizes        = []string{"15ml", "30ml", "50ml", "100ml", "200ml", "4g"}
	concerns     = []string{"acne", "dryness", "dullness", "pigmentation", "fine lines", "dark circles", "frizz", "sun damage"}
	ingredients  = []string{"niacinamide", "hyaluronic acid", "vitamin C", "retinol", "ceramides", "shea butter", "argan oil", "salicylic acid"}

	imagePaths = []string{
		"/uploads/products/demo-1.jpg",
		"/uploads/products/demo-2.jpg",
		"/uploads/products/demo-3.jpg",
	}
)

// ProductFaker builds an unsaved demo product in category. r drives every
// random choice so seeds are reproducible.
func ProductFaker(r *rand.Rand, category *models.Category) *models.Product {
	brand := pick(r, brands)
	kind := pick(r, productTypes)

	product := &models.Product{
		Name:              fmt.Sprintf("%s %s", brand, kind),
		Description:       fmt.Sprintf("A %s %s for everyday care.", brand, kind),
		Price:             decimal.NewFromFloat(fakePrice(r)),
		ImageURL:          pick(r, imagePaths),
		UsageInstructions: "Apply a small amount and massage gently.",
		Size:              pick(r, sizes),
		Benefits:          "Hydrates, soothes and protects.",
		Ingredients:       joinPicks(r, ingredients, 3),
		StockQuantity:     r.Intn(50) + 1,
		ProductType:       kind,
		SkinType:          pick(r, skinTypes),
	}
	if r.Intn(3) == 0 {
		product.OfferPercentage = (r.Intn(5) + 1) * 5
	}
	if category != nil {
		product.CategoryID = &category.ID
	}

	n := r.Intn(3) + 1
	picked := make([]string, 0, n)
	for i := 0; i < n; i++ {
		picked = append(picked, pick(r, concerns))
	}
	product.SetConcerns(picked)

	return product
}

func pick(r *rand.Rand, list []string) string {
	return list[r.Intn(len(list))]
}

func joinPicks(r *rand.Rand, list []string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ", "
		}
		out += pick(r, list)
	}
	return out
}

// fakePrice returns a rupee price between 99 and roughly 3000.
func fakePrice(r *rand.Rand) float64 {
	return precision(99+r.Float64()*2900, 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
