package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"gorm.io/gorm"
)

type CartService struct {
	db          *gorm.DB
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

func NewCartService(db *gorm.DB, cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{db: db, cartRepo: cartRepo, productRepo: productRepo}
}

func (s *CartService) List(ctx context.Context, userID string) ([]models.CartItem, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return items, nil
}

// Add inserts the product into the cart or, when it is already there, adds
// quantity to the existing row.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperr.Validation("Quantity must be at least 1")
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, apperr.NotFound("Product not found")
	}

	var item *models.CartItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.cartRepo.FindByUserAndProduct(ctx, tx, userID, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := s.cartRepo.IncrementQuantity(ctx, tx, existing.ID, quantity); err != nil {
				return err
			}
		} else {
			created := &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity, Selected: true}
			if err := s.cartRepo.Create(ctx, tx, created); err != nil {
				return err
			}
		}
		item, err = s.cartRepo.FindByUserAndProduct(ctx, tx, userID, productID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	return item, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperr.Validation("Quantity must be at least 1")
	}
	ok, err := s.cartRepo.UpdateQuantity(ctx, itemID, userID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	if !ok {
		return nil, apperr.NotFound("Cart item not found")
	}
	return s.cartRepo.FindForUser(ctx, itemID, userID)
}

func (s *CartService) SetSelected(ctx context.Context, userID, itemID string, selected bool) (*models.CartItem, error) {
	ok, err := s.cartRepo.SetSelected(ctx, itemID, userID, selected)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	if !ok {
		return nil, apperr.NotFound("Cart item not found")
	}
	return s.cartRepo.FindForUser(ctx, itemID, userID)
}

func (s *CartService) Remove(ctx context.Context, userID, itemID string) error {
	ok, err := s.cartRepo.Delete(ctx, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if !ok {
		return apperr.NotFound("Cart item not found")
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.cartRepo.ClearByUser(ctx, nil, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return items, nil
}

func (s *WishlistService) Add(ctx context.Context, userID, productID string) (*models.WishlistItem, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, apperr.NotFound("Product not found")
	}

	exists, err := s.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check wishlist: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("Item already in wishlist")
	}

	item := &models.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.wishlistRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	item.Product = product
	return item, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	ok, err := s.wishlistRepo.Delete(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	if !ok {
		return apperr.NotFound("Item not found in wishlist")
	}
	return nil
}
