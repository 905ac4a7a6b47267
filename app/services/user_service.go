package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/shopspring/decimal"
)

const dashboardRecentLimit = 5

var phonePattern = regexp.MustCompile(`^\d{10}$`)

type ProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type DashboardStats struct {
	TotalOrders   int64           `json:"totalOrders"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	WishlistCount int64           `json:"wishlistCount"`
	CartCount     int64           `json:"cartCount"`
}

type Dashboard struct {
	Profile        *models.User     `json:"profile"`
	Stats          DashboardStats   `json:"stats"`
	RecentOrders   []models.Order   `json:"recentOrders"`
	RecentlyViewed []models.Product `json:"recentlyViewed"`
}

// SyncSnapshot is the state a realtime client receives on sync_request.
type SyncSnapshot struct {
	Cart     []models.CartItem     `json:"cart"`
	Wishlist []models.WishlistItem `json:"wishlist"`
	Profile  *models.User          `json:"profile"`
}

type UserService struct {
	userRepo     repositories.UserRepository
	orderRepo    repositories.OrderRepository
	cartRepo     repositories.CartRepository
	wishlistRepo repositories.WishlistRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	wishlistRepo repositories.WishlistRepository,
) *UserService {
	return &UserService{userRepo: userRepo, orderRepo: orderRepo, cartRepo: cartRepo, wishlistRepo: wishlistRepo}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

// NormalizePhone strips spaces and dashes and requires exactly ten digits.
func NormalizePhone(phone string) (string, bool) {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	return cleaned, phonePattern.MatchString(cleaned)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" || !emailPattern.MatchString(email) {
			return nil, apperr.Validation("Invalid email format")
		}
		taken, err := s.userRepo.EmailTakenByOther(ctx, email, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, apperr.Conflict("Email already in use")
		}
		user.Email = email
	}
	if in.Phone != nil && *in.Phone != "" {
		phone, ok := NormalizePhone(*in.Phone)
		if !ok {
			return nil, apperr.Validation("Phone number must be 10 digits")
		}
		user.Phone = phone
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = strings.TrimSpace(*in.Name)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *UserService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalOrders, totalSpent, err := s.orderRepo.UserTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order totals: %w", err)
	}
	wishlistCount, err := s.wishlistRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count wishlist: %w", err)
	}
	cartCount, err := s.cartRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count cart: %w", err)
	}
	recent, err := s.orderRepo.ListByUser(ctx, userID, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	views, err := s.wishlistRepo.RecentlyViewed(ctx, userID, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recently viewed: %w", err)
	}
	viewed := make([]models.Product, 0, len(views))
	for _, v := range views {
		if v.Product != nil {
			viewed = append(viewed, *v.Product)
		}
	}

	return &Dashboard{
		Profile: user,
		Stats: DashboardStats{
			TotalOrders:   totalOrders,
			TotalSpent:    totalSpent,
			WishlistCount: wishlistCount,
			CartCount:     cartCount,
		},
		RecentOrders:   recent,
		RecentlyViewed: viewed,
	}, nil
}

func (s *UserService) Snapshot(ctx context.Context, userID string) (*SyncSnapshot, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	wishlist, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	return &SyncSnapshot{Cart: cart, Wishlist: wishlist, Profile: user}, nil
}
