package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
	ExistsForUser(ctx context.Context, productID, userID string) (bool, error)
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id string) (*models.Review, error)

	ListBrand(ctx context.Context) ([]models.BrandReview, error)
	BrandStats(ctx context.Context) (float64, int64, error)
	FindBrandByUser(ctx context.Context, userID string) (*models.BrandReview, error)
	FindBrandByID(ctx context.Context, id string) (*models.BrandReview, error)
	CreateBrand(ctx context.Context, review *models.BrandReview) error
	UpdateBrand(ctx context.Context, review *models.BrandReview) error
	DeleteBrand(ctx context.Context, id string) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	reviews := []models.Review{}
	if !r.db.Migrator().HasTable(&models.Review{}) {
		return reviews, nil
	}
	err := r.db.WithContext(ctx).Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ExistsForUser(ctx context.Context, productID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit("User").Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Preload("User").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListBrand(ctx context.Context) ([]models.BrandReview, error) {
	reviews := []models.BrandReview{}
	if !r.db.Migrator().HasTable(&models.BrandReview{}) {
		return reviews, nil
	}
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) BrandStats(ctx context.Context) (float64, int64, error) {
	if !r.db.Migrator().HasTable(&models.BrandReview{}) {
		return 0, 0, nil
	}
	var row struct {
		AverageRating *float64
		ReviewCount   int64
	}
	err := r.db.WithContext(ctx).Model(&models.BrandReview{}).
		Select("AVG(rating) AS average_rating, COUNT(*) AS review_count").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.AverageRating == nil {
		return 0, row.ReviewCount, nil
	}
	return *row.AverageRating, row.ReviewCount, nil
}

func (r *reviewRepository) FindBrandByUser(ctx context.Context, userID string) (*models.BrandReview, error) {
	var review models.BrandReview
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindBrandByID(ctx context.Context, id string) (*models.BrandReview, error) {
	var review models.BrandReview
	err := r.db.WithContext(ctx).Preload("User").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) CreateBrand(ctx context.Context, review *models.BrandReview) error {
	return r.db.WithContext(ctx).Omit("User").Create(review).Error
}

func (r *reviewRepository) UpdateBrand(ctx context.Context, review *models.BrandReview) error {
	return r.db.WithContext(ctx).Model(review).Select("rating", "comment").Updates(review).Error
}

func (r *reviewRepository) DeleteBrand(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.BrandReview{}, "id = ?", id).Error
}
