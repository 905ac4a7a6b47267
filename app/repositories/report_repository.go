package repositories

import (
	"context"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalUsers    int64           `json:"total_users"`
	TotalProducts int64           `json:"total_products"`
	TotalOrders   int64           `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

type UserSpend struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Role        string          `json:"role"`
	IsVerified  bool            `json:"is_verified"`
	CreatedAt   time.Time       `json:"created_at"`
	TotalOrders int64           `json:"total_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}

type ProductAnalytics struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	TotalOrders   int64           `json:"total_orders"`
	UnitsSold     int64           `json:"units_sold"`
	Revenue       decimal.Decimal `json:"revenue"`
	AverageRating float64         `json:"average_rating"`
	ReviewCount   int64           `json:"review_count"`
	WishlistCount int64           `json:"wishlist_count"`
}

// ReportRepository serves the read-only admin aggregates. Temporary orders
// never count towards any figure.
type ReportRepository interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	UsersWithSpend(ctx context.Context) ([]UserSpend, error)
	ProductAnalytics(ctx context.Context) ([]ProductAnalytics, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Stats(ctx context.Context) (*DashboardStats, error) {
	db := r.db.WithContext(ctx)
	stats := &DashboardStats{TotalRevenue: decimal.Zero}

	if err := db.Model(&models.User{}).Where("role <> ?", models.RoleAdmin).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Where("is_temporary = ?", false).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	var revenue decimal.NullDecimal
	err := db.Model(&models.Order{}).
		Select("SUM(total_amount)").
		Where("is_temporary = ? AND status <> ?", false, models.OrderStatusCancelled).
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	}
	return stats, nil
}

func (r *reportRepository) UsersWithSpend(ctx context.Context) ([]UserSpend, error) {
	var rows []UserSpend
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.name, u.email, u.phone, u.role, u.is_verified, u.created_at,
			COUNT(o.id) AS total_orders,
			COALESCE(SUM(o.total_amount), 0) AS total_spent
		FROM users u
		LEFT JOIN orders o ON o.user_id = u.id AND o.is_temporary = ?
		WHERE u.role <> ?
		GROUP BY u.id, u.name, u.email, u.phone, u.role, u.is_verified, u.created_at
		ORDER BY u.created_at DESC`, false, models.RoleAdmin).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) ProductAnalytics(ctx context.Context) ([]ProductAnalytics, error) {
	var rows []ProductAnalytics
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.name, p.price, p.stock_quantity,
			(SELECT COUNT(DISTINCT oi.order_id) FROM order_items oi
				JOIN orders o ON o.id = oi.order_id AND o.is_temporary = ?
				WHERE oi.product_id = p.id) AS total_orders,
			(SELECT COALESCE(SUM(oi.quantity), 0) FROM order_items oi
				JOIN orders o ON o.id = oi.order_id AND o.is_temporary = ?
				WHERE oi.product_id = p.id) AS units_sold,
			(SELECT COALESCE(SUM(oi.quantity * oi.price_at_time - oi.discount_amount), 0) FROM order_items oi
				JOIN orders o ON o.id = oi.order_id AND o.is_temporary = ?
				WHERE oi.product_id = p.id) AS revenue,
			(SELECT COALESCE(AVG(rv.rating), 0) FROM reviews rv WHERE rv.product_id = p.id) AS average_rating,
			(SELECT COUNT(*) FROM reviews rv WHERE rv.product_id = p.id) AS review_count,
			(SELECT COUNT(*) FROM wishlist_items w WHERE w.product_id = p.id) AS wishlist_count
		FROM products p
		ORDER BY revenue DESC, p.name ASC`, false, false, false).
		Scan(&rows).Error
	return rows, err
}
