package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"gorm.io/gorm"
)

type AddressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	FindForUser(ctx context.Context, tx *gorm.DB, id, userID string) (*models.Address, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, address *models.Address) error
	Update(ctx context.Context, tx *gorm.DB, address *models.Address) error
	Delete(ctx context.Context, id, userID string) (bool, error)
	UnsetDefault(ctx context.Context, tx *gorm.DB, userID, exceptID string) error
	SetDefault(ctx context.Context, tx *gorm.DB, id string) error
}

type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *GormAddressRepository) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("created_at DESC").
		Find(&addresses).Error
	return addresses, err
}

func (r *GormAddressRepository) FindForUser(ctx context.Context, tx *gorm.DB, id, userID string) (*models.Address, error) {
	var address models.Address
	err := r.conn(tx).WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

func (r *GormAddressRepository) CountByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *GormAddressRepository) Create(ctx context.Context, tx *gorm.DB, address *models.Address) error {
	return r.conn(tx).WithContext(ctx).Create(address).Error
}

func (r *GormAddressRepository) Update(ctx context.Context, tx *gorm.DB, address *models.Address) error {
	return r.conn(tx).WithContext(ctx).Omit("created_at").Save(address).Error
}

func (r *GormAddressRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{})
	return res.RowsAffected > 0, res.Error
}

func (r *GormAddressRepository) UnsetDefault(ctx context.Context, tx *gorm.DB, userID, exceptID string) error {
	q := r.conn(tx).WithContext(ctx).Model(&models.Address{}).Where("user_id = ?", userID)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	return q.Update("is_default", false).Error
}

func (r *GormAddressRepository) SetDefault(ctx context.Context, tx *gorm.DB, id string) error {
	return r.conn(tx).WithContext(ctx).Model(&models.Address{}).Where("id = ?", id).Update("is_default", true).Error
}
