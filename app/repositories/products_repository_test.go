package repositories_test

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/Rakhulsr/go-cosmetics/app/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestProductListCategoryAndPriceFilter(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	skincare := testutil.CreateCategory(t, db, "Skincare", nil)
	serums := testutil.CreateCategory(t, db, "Serums", skincare)
	makeup := testutil.CreateCategory(t, db, "Makeup", nil)

	inRange := testutil.CreateProduct(t, db, "Vitamin C Serum", 750, 10, serums)
	direct := testutil.CreateProduct(t, db, "Night Cream", 500, 10, skincare)
	testutil.CreateProduct(t, db, "Luxury Oil", 1500, 10, skincare)
	testutil.CreateProduct(t, db, "Lipstick", 800, 10, makeup)

	repo := repositories.NewProductRepository(db)
	products, total, err := repo.List(ctx, repositories.ProductFilter{
		Category: "skincare",
		MinPrice: decPtr(500),
		MaxPrice: decPtr(1000),
		Page:     1,
		Limit:    10,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 2, total)
	ids := []string{}
	for _, p := range products {
		ids = append(ids, p.ID)
		assert.True(t, p.Price.GreaterThanOrEqual(decimal.NewFromInt(500)))
		assert.True(t, p.Price.LessThanOrEqual(decimal.NewFromInt(1000)))
	}
	assert.ElementsMatch(t, []string{inRange.ID, direct.ID}, ids)
}

func TestProductListSearchTypesAndConcerns(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repositories.NewProductRepository(db)

	acne := &models.Product{Name: "Clear Gel", Price: decimal.NewFromInt(300), ProductType: "Gel", SkinType: "Oily", Ingredients: "Salicylic acid"}
	acne.SetConcerns([]string{"Acne", "Pores"})
	require.NoError(t, repo.Create(ctx, acne))

	dry := &models.Product{Name: "Rich Balm", Price: decimal.NewFromInt(400), ProductType: "Balm", SkinType: "Dry"}
	dry.SetConcerns([]string{"Dryness"})
	require.NoError(t, repo.Create(ctx, dry))

	found, total, err := repo.List(ctx, repositories.ProductFilter{Search: "salicylic", Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, acne.ID, found[0].ID)
	assert.ElementsMatch(t, []string{"Acne", "Pores"}, found[0].ConcernList)

	found, _, err = repo.List(ctx, repositories.ProductFilter{ProductTypes: []string{"balm", "serum"}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, dry.ID, found[0].ID)

	found, _, err = repo.List(ctx, repositories.ProductFilter{SkinTypes: []string{"OILY"}, Concerns: []string{"acne", "wrinkles"}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, acne.ID, found[0].ID)
}

func TestProductListPagination(t *testing.T) {
	db := testutil.NewDB(t)
	for i := 0; i < 5; i++ {
		testutil.CreateProduct(t, db, "P", 100, 1, nil)
	}
	repo := repositories.NewProductRepository(db)

	page, total, err := repo.List(context.Background(), repositories.ProductFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 2)
}

func TestRatingStatsAndDecrementStock(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repositories.NewProductRepository(db)

	p := testutil.CreateProduct(t, db, "Toner", 250, 3, nil)
	u1 := testutil.CreateUser(t, db, "A", "a@example.com")
	u2 := testutil.CreateUser(t, db, "B", "b@example.com")
	require.NoError(t, db.Create(&models.Review{ProductID: p.ID, UserID: u1.ID, Rating: 5}).Error)
	require.NoError(t, db.Create(&models.Review{ProductID: p.ID, UserID: u2.ID, Rating: 4}).Error)

	stats, err := repo.RatingStats(ctx, []string{p.ID})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, stats[p.ID].AverageRating, 0.001)
	assert.EqualValues(t, 2, stats[p.ID].ReviewCount)

	ok, err := repo.DecrementStock(ctx, db, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementStock(ctx, db, p.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok, "only one unit left")

	reloaded, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.StockQuantity)
}

func TestProductUpdateReplacesConcerns(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repositories.NewProductRepository(db)

	p := &models.Product{Name: "Mask", Price: decimal.NewFromInt(100)}
	p.SetConcerns([]string{"dullness"})
	require.NoError(t, repo.Create(ctx, p))

	p.Name = "Clay Mask"
	p.SetConcerns([]string{"pores", "oiliness"})
	require.NoError(t, repo.Update(ctx, p))

	reloaded, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clay Mask", reloaded.Name)
	assert.ElementsMatch(t, []string{"pores", "oiliness"}, reloaded.ConcernList)
}
