package migrations

import (
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductConcern{},
		&models.Review{},
		&models.BrandReview{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.RecentlyViewed{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.Address{},
	)
}
