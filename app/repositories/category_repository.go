package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"gorm.io/gorm"
)

// CategorySummary is a category row with its parent's name and the number
// of products filed directly under it.
type CategorySummary struct {
	models.Category
	ParentName   *string `json:"parent_name"`
	ProductCount int64   `json:"product_count"`
}

type CategoryRepository interface {
	List(ctx context.Context) ([]CategorySummary, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	NameExists(ctx context.Context, name, excludeID string) (bool, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (int64, error)
	CountProducts(ctx context.Context, id string) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]CategorySummary, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Preload("Parent").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		CategoryID string
		Total      int64
	}
	var counts []countRow
	if err := r.db.WithContext(ctx).Model(&models.Product{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]int64, len(counts))
	for _, c := range counts {
		byID[c.CategoryID] = c.Total
	}

	summaries := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		s := CategorySummary{Category: c, ProductCount: byID[c.ID]}
		if c.Parent != nil {
			name := c.Parent.Name
			s.ParentName = &name
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Preload("Parent").First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Category{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Model(category).Select("name", "description", "image_url", "parent_id").Updates(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) CountChildren(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

func (r *categoryRepository) CountProducts(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}
