package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	FindForUser(ctx context.Context, id, userID string) (*models.Order, error)
	FindTemporaryForUser(ctx context.Context, tx *gorm.DB, id, userID string) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Delete(ctx context.Context, tx *gorm.DB, orderID string) error
	UpdateStatus(ctx context.Context, orderID, status string) error
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID, paymentID, gatewayOrderID string) error
	SetGatewayOrderID(ctx context.Context, orderID, gatewayOrderID string) error
	TemporaryOlderThan(ctx context.Context, cutoff time.Time) ([]models.Order, error)
	UserTotals(ctx context.Context, userID string) (int64, decimal.Decimal, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Omit("User").Create(order).Error
}

// FindForUser returns a finalized (non-temporary) order owned by userID.
func (r *gormOrderRepository) FindForUser(ctx context.Context, id, userID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ? AND is_temporary = ?", id, userID, false).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindTemporaryForUser(ctx context.Context, tx *gorm.DB, id, userID string) (*models.Order, error) {
	if tx == nil {
		tx = r.db
	}
	var order models.Order
	err := tx.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ? AND is_temporary = ?", id, userID, true).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("User").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND is_temporary = ?", userID, false).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		Where("is_temporary = ?", false).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Delete removes the order's items and then the order itself.
func (r *gormOrderRepository) Delete(ctx context.Context, tx *gorm.DB, orderID string) error {
	if err := tx.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&models.Order{}, "id = ?", orderID).Error
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error
}

func (r *gormOrderRepository) MarkPaid(ctx context.Context, tx *gorm.DB, orderID, paymentID, gatewayOrderID string) error {
	updates := map[string]interface{}{
		"status":         models.OrderStatusConfirmed,
		"payment_status": models.PaymentStatusPaid,
		"payment_id":     paymentID,
		"payment_method": models.PaymentMethodOnline,
		"is_temporary":   false,
		"updated_at":     time.Now(),
	}
	if gatewayOrderID != "" {
		updates["gateway_order_id"] = gatewayOrderID
	}
	return tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error
}

func (r *gormOrderRepository) SetGatewayOrderID(ctx context.Context, orderID, gatewayOrderID string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("gateway_order_id", gatewayOrderID).Error
}

func (r *gormOrderRepository) TemporaryOlderThan(ctx context.Context, cutoff time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Where("is_temporary = ? AND created_at < ?", true, cutoff).Find(&orders).Error
	return orders, err
}

// UserTotals returns the number of finalized orders and their summed total.
func (r *gormOrderRepository) UserTotals(ctx context.Context, userID string) (int64, decimal.Decimal, error) {
	var row struct {
		Total int64
		Spent decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COUNT(*) AS total, SUM(total_amount) AS spent").
		Where("user_id = ? AND is_temporary = ?", userID, false).
		Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	if !row.Spent.Valid {
		return row.Total, decimal.Zero, nil
	}
	return row.Total, row.Spent.Decimal, nil
}
