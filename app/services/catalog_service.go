package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ProductInput carries admin writes. On update, nil pointers, empty strings and
// a nil concern list leave the stored value unchanged.
type ProductInput struct {
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	CategoryID        string           `json:"category_id"`
	StockQuantity     *int             `json:"stock_quantity" validate:"omitempty,min=0"`
	OfferPercentage   *int             `json:"offer_percentage"`
	ImageURL          string           `json:"image_url"`
	ImageURL2         string           `json:"image_url2"`
	ImageURL3         string           `json:"image_url3"`
	UsageInstructions string           `json:"usage_instructions"`
	Size              string           `json:"size"`
	Benefits          string           `json:"benefits"`
	Ingredients       string           `json:"ingredients"`
	ProductDetails    string           `json:"product_details"`
	ProductType       string           `json:"product_type"`
	SkinType          string           `json:"skin_type"`
	Concerns          []string         `json:"concerns"`
}

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ProductDetail struct {
	*models.Product
	Reviews []models.Review `json:"reviews"`
}

type AdminProduct struct {
	models.Product
	OrderCount int64 `json:"order_count"`
}

type CategoryDetail struct {
	repositories.CategorySummary
	Products []models.Product `json:"products"`
}

type CatalogService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	reviewRepo   repositories.ReviewRepository
	userRepo     repositories.UserRepository
	wishlistRepo repositories.WishlistRepository
	now          func() time.Time
}

func NewCatalogService(
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	wishlistRepo repositories.WishlistRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		userRepo:     userRepo,
		wishlistRepo: wishlistRepo,
		now:          time.Now,
	}
}

func NormalizeFilter(f repositories.ProductFilter) repositories.ProductFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return f
}

func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *CatalogService) hydrateRatings(ctx context.Context, products []models.Product) error {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	stats, err := s.productRepo.RatingStats(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}
	for i := range products {
		if st, ok := stats[products[i].ID]; ok {
			products[i].AverageRating = roundRating(st.AverageRating)
			products[i].ReviewCount = st.ReviewCount
		}
	}
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context, f repositories.ProductFilter) ([]models.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, NormalizeFilter(f))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	if err := s.hydrateRatings(ctx, products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *CatalogService) ListAdminProducts(ctx context.Context, f repositories.ProductFilter) ([]AdminProduct, int64, error) {
	products, total, err := s.ListProducts(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	counts, err := s.productRepo.OrderCounts(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	out := make([]AdminProduct, 0, len(products))
	for _, p := range products {
		out = append(out, AdminProduct{Product: p, OrderCount: counts[p.ID]})
	}
	return out, total, nil
}

func (s *CatalogService) getProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, apperr.NotFound("Product not found")
	}
	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*ProductDetail, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	one := []models.Product{*product}
	if err := s.hydrateRatings(ctx, one); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return &ProductDetail{Product: &one[0], Reviews: reviews}, nil
}

func (s *CatalogService) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return reviews, nil
}

func (s *CatalogService) AddReview(ctx context.Context, userID, productID string, in ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperr.Validation("Rating must be between 1 and 5")
	}
	if _, err := s.getProduct(ctx, productID); err != nil {
		return nil, err
	}
	exists, err := s.reviewRepo.ExistsForUser(ctx, productID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reviews: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("You have already reviewed this product")
	}

	review := &models.Review{ProductID: productID, UserID: userID, Rating: in.Rating, Comment: strings.TrimSpace(in.Comment)}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil && user != nil {
		review.UserName = user.Name
	}
	return review, nil
}

func (s *CatalogService) RecordView(ctx context.Context, userID, productID string) error {
	if _, err := s.getProduct(ctx, productID); err != nil {
		return err
	}
	if err := s.wishlistRepo.RecordView(ctx, userID, productID, s.now()); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

func (s *CatalogService) checkCategory(ctx context.Context, id string) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return apperr.Validation("Invalid category ID")
	}
	return nil
}

func validOffer(p *int) bool {
	return p == nil || (*p >= 0 && *p <= 100)
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price == nil || in.CategoryID == "" {
		return nil, apperr.Validation("Name, price, and category are required")
	}
	if in.Price.IsNegative() {
		return nil, apperr.Validation("Invalid price format")
	}
	if !validOffer(in.OfferPercentage) {
		return nil, apperr.Validation("Invalid offer percentage. Must be between 0 and 100")
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		return nil, apperr.Validation("Invalid stock quantity format")
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	categoryID := in.CategoryID
	product := &models.Product{CategoryID: &categoryID, Price: *in.Price}
	applyProductInput(product, in)
	product.SetConcerns(in.Concerns)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return s.getProduct(ctx, product.ID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !validOffer(in.OfferPercentage) {
		return nil, apperr.Validation("Invalid offer percentage. Must be between 0 and 100")
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, apperr.Validation("Invalid price format")
		}
		product.Price = *in.Price
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		return nil, apperr.Validation("Invalid stock quantity format")
	}
	if in.CategoryID != "" {
		if err := s.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		categoryID := in.CategoryID
		product.CategoryID = &categoryID
		product.Category = nil
	}

	applyProductInput(product, in)
	if in.Concerns != nil {
		product.SetConcerns(in.Concerns)
	}
	for i := range product.Concerns {
		product.Concerns[i].ProductID = product.ID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return s.getProduct(ctx, id)
}

func applyProductInput(p *models.Product, in ProductInput) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Name, strings.TrimSpace(in.Name))
	set(&p.Description, in.Description)
	set(&p.ImageURL, in.ImageURL)
	set(&p.ImageURL2, in.ImageURL2)
	set(&p.ImageURL3, in.ImageURL3)
	set(&p.UsageInstructions, in.UsageInstructions)
	set(&p.Size, in.Size)
	set(&p.Benefits, in.Benefits)
	set(&p.Ingredients, in.Ingredients)
	set(&p.ProductDetails, in.ProductDetails)
	set(&p.ProductType, in.ProductType)
	set(&p.SkinType, in.SkinType)
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.OfferPercentage != nil {
		p.OfferPercentage = *in.OfferPercentage
	}
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.getProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]repositories.CategorySummary, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*CategoryDetail, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return nil, apperr.NotFound("Category not found")
	}
	products, _, err := s.productRepo.List(ctx, repositories.ProductFilter{CategoryID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	detail := &CategoryDetail{CategorySummary: repositories.CategorySummary{Category: *category, ProductCount: int64(len(products))}, Products: products}
	if category.Parent != nil {
		name := category.Parent.Name
		detail.ParentName = &name
	}
	return detail, nil
}
