package cmd

import (
	"context"
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/handlers"
	"github.com/Rakhulsr/go-cosmetics/app/handlers/admin"
	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/realtime"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/Rakhulsr/go-cosmetics/app/routes"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"gorm.io/gorm"
)

// Options are the collaborators that differ between production and tests.
type Options struct {
	JWTSecret   string
	Mailer      services.EmailSender
	Gateway     services.PaymentGateway
	OTPStore    services.OTPStore
	UploadDir   string
	CORSOrigins []string
}

// App is the fully wired server.
type App struct {
	Handler http.Handler
	Hub     *realtime.Hub
	Orders  *services.OrderService
	Tokens  *helpers.TokenManager
}

func NewApp(db *gorm.DB, opts Options) *App {
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)
	couponRepo := repositories.NewCouponRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	addressRepo := repositories.NewGormAddressRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	tokens := helpers.NewTokenManager(opts.JWTSecret)

	authSvc := services.NewAuthService(userRepo, opts.OTPStore, opts.Mailer, tokens)
	catalogSvc := services.NewCatalogService(productRepo, categoryRepo, reviewRepo, userRepo, wishlistRepo)
	cartSvc := services.NewCartService(db, cartRepo, productRepo)
	wishlistSvc := services.NewWishlistService(wishlistRepo, productRepo)
	couponSvc := services.NewCouponService(db, couponRepo, productRepo, cartRepo)
	orderSvc := services.NewOrderService(db, orderRepo, orderItemRepo, productRepo, cartRepo, userRepo, opts.Gateway, opts.Mailer)
	addressSvc := services.NewAddressService(db, addressRepo)
	brandSvc := services.NewBrandReviewService(reviewRepo, userRepo)
	userSvc := services.NewUserService(userRepo, orderRepo, cartRepo, wishlistRepo)
	adminSvc := services.NewAdminService(db, reportRepo, categoryRepo, couponRepo)

	hub := realtime.NewHub(tokens, userSvc)

	handler := routes.NewRouter(routes.Dependencies{
		Auth:         handlers.NewAuthHandler(authSvc),
		Products:     handlers.NewProductHandler(catalogSvc),
		Cart:         handlers.NewCartHandler(cartSvc, wishlistSvc),
		Coupons:      handlers.NewCouponHandler(couponSvc),
		Orders:       handlers.NewOrderHandler(orderSvc),
		Addresses:    handlers.NewAddressHandler(addressSvc),
		BrandReviews: handlers.NewBrandReviewHandler(brandSvc),
		Users:        handlers.NewUserHandler(userSvc, catalogSvc),
		Home:         handlers.NewHomeHandler(db),
		Admin:        admin.NewAdminHandler(adminSvc, catalogSvc, orderSvc),
		Tokens:       tokens,
		UserRepo:     userRepo,
		Realtime:     hub,
		UploadDir:    opts.UploadDir,
		CORSOrigins:  opts.CORSOrigins,
	})

	return &App{Handler: handler, Hub: hub, Orders: orderSvc, Tokens: tokens}
}

// Start runs the background workers owned by the app until ctx is done.
func (a *App) Start(ctx context.Context) {
	go a.Hub.Run(ctx)
}
