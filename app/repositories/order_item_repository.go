package repositories

import (
	"context"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error
	ListByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error)
}

type gormOrderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &gormOrderItemRepository{db: db}
}

func (r *gormOrderItemRepository) CreateBatch(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *gormOrderItemRepository) ListByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}
