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

func TestReportStatsIgnoreTemporaryOrders(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	buyer := testutil.CreateUser(t, db, "Buyer", "buyer@example.com")
	admin := &models.User{Name: "Admin", Email: "admin@example.com", Password: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(admin).Error)
	p := testutil.CreateProduct(t, db, "Serum", 200, 10, nil)

	final := &models.Order{UserID: buyer.ID, TotalAmount: decimal.NewFromInt(400), Status: models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodCOD, PaymentStatus: models.PaymentStatusPending}
	require.NoError(t, db.Create(final).Error)
	require.NoError(t, db.Create(&models.OrderItem{OrderID: final.ID, ProductID: p.ID, ProductName: p.Name, Quantity: 2, PriceAtTime: p.Price}).Error)

	temp := &models.Order{UserID: buyer.ID, TotalAmount: decimal.NewFromInt(999), Status: models.OrderStatusPendingPayment,
		PaymentMethod: models.PaymentMethodOnline, PaymentStatus: models.PaymentStatusPending, IsTemporary: true}
	require.NoError(t, db.Create(temp).Error)
	require.NoError(t, db.Create(&models.OrderItem{OrderID: temp.ID, ProductID: p.ID, ProductName: p.Name, Quantity: 5, PriceAtTime: p.Price}).Error)

	repo := repositories.NewReportRepository(db)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.TotalOrders)
	assert.True(t, decimal.NewFromInt(400).Equal(stats.TotalRevenue), stats.TotalRevenue.String())

	users, err := repo.UsersWithSpend(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.EqualValues(t, 1, users[0].TotalOrders)
	assert.True(t, decimal.NewFromInt(400).Equal(users[0].TotalSpent))

	analytics, err := repo.ProductAnalytics(ctx)
	require.NoError(t, err)
	require.Len(t, analytics, 1)
	assert.EqualValues(t, 2, analytics[0].UnitsSold)
	assert.EqualValues(t, 1, analytics[0].TotalOrders)
	assert.True(t, decimal.NewFromInt(400).Equal(analytics[0].Revenue), analytics[0].Revenue.String())
}
