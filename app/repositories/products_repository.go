package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductFilter struct {
	CategoryID   string
	Category     string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	ProductTypes []string
	SkinTypes    []string
	Concerns     []string
	Page         int
	Limit        int
}

func (f ProductFilter) offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

type RatingStat struct {
	ProductID     string
	AverageRating float64
	ReviewCount   int64
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	RatingStats(ctx context.Context, ids []string) (map[string]RatingStat, error)
	OrderCounts(ctx context.Context, ids []string) (map[string]int64, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) filtered(ctx context.Context, f ProductFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Product{}).
		Joins("LEFT JOIN categories c ON c.id = products.category_id").
		Joins("LEFT JOIN categories pc ON pc.id = c.parent_id")

	if f.CategoryID != "" {
		q = q.Where("products.category_id = ?", f.CategoryID)
	}
	if f.Category != "" {
		q = q.Where("(LOWER(c.name) = LOWER(?) OR LOWER(pc.name) = LOWER(?))", f.Category, f.Category)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(`(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?
			OR LOWER(products.ingredients) LIKE ? OR LOWER(products.benefits) LIKE ?
			OR LOWER(products.product_details) LIKE ?)`, like, like, like, like, like)
	}
	if f.MinPrice != nil {
		q = q.Where("products.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("products.price <= ?", *f.MaxPrice)
	}
	if types := lowerAll(f.ProductTypes); len(types) > 0 {
		q = q.Where("LOWER(products.product_type) IN ?", types)
	}
	if skins := lowerAll(f.SkinTypes); len(skins) > 0 {
		q = q.Where("LOWER(products.skin_type) IN ?", skins)
	}
	if concerns := lowerAll(f.Concerns); len(concerns) > 0 {
		q = q.Where(`EXISTS (SELECT 1 FROM product_concerns pcn
			WHERE pcn.product_id = products.id AND LOWER(pcn.concern) IN ?)`, concerns)
	}
	return q
}

func (r *productRepository) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.filtered(ctx, f).
		Select("products.*").
		Preload("Category").
		Preload("Concerns").
		Order("products.created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.offset())
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Category").Preload("Concerns").First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	out := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update saves the scalar columns and replaces the concern rows.
func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Concerns", "Category", "created_at").Save(product).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductConcern{}).Error; err != nil {
			return err
		}
		if len(product.Concerns) > 0 {
			return tx.Create(&product.Concerns).Error
		}
		return nil
	})
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{
			&models.ProductConcern{}, &models.CartItem{}, &models.WishlistItem{},
			&models.RecentlyViewed{}, &models.Review{},
		} {
			if err := tx.Where("product_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM coupon_products WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
}

// RatingStats returns the review aggregate per product. Products without
// reviews are absent from the map; a missing reviews table yields an empty map.
func (r *productRepository) RatingStats(ctx context.Context, ids []string) (map[string]RatingStat, error) {
	out := make(map[string]RatingStat, len(ids))
	if len(ids) == 0 || !r.db.Migrator().HasTable(&models.Review{}) {
		return out, nil
	}

	var rows []RatingStat
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("product_id, AVG(rating) AS average_rating, COUNT(*) AS review_count").
		Where("product_id IN ?", ids).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ProductID] = row
	}
	return out, nil
}

// OrderCounts counts distinct finalized orders per product.
func (r *productRepository) OrderCounts(ctx context.Context, ids []string) (map[string]int64, error) {
	out := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	type row struct {
		ProductID string
		Total     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Table("order_items oi").
		Select("oi.product_id, COUNT(DISTINCT oi.order_id) AS total").
		Joins("JOIN orders o ON o.id = oi.order_id AND o.is_temporary = ?", false).
		Where("oi.product_id IN ?", ids).
		Group("oi.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		out[rw.ProductID] = rw.Total
	}
	return out, nil
}

// DecrementStock subtracts qty only when enough stock remains. It reports
// false, without error, when the guard rejects the update.
func (r *productRepository) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) (bool, error) {
	res := tx.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
