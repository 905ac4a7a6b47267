package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/handlers"
	"github.com/Rakhulsr/go-cosmetics/app/handlers/admin"
	"github.com/Rakhulsr/go-cosmetics/app/metrics"
	"github.com/Rakhulsr/go-cosmetics/app/middlewares"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/gorilla/mux"
)

type Dependencies struct {
	Auth         *handlers.AuthHandler
	Products     *handlers.ProductHandler
	Cart         *handlers.CartHandler
	Coupons      *handlers.CouponHandler
	Orders       *handlers.OrderHandler
	Addresses    *handlers.AddressHandler
	BrandReviews *handlers.BrandReviewHandler
	Users        *handlers.UserHandler
	Home         *handlers.HomeHandler
	Admin        *admin.AdminHandler

	Tokens   middlewares.TokenValidator
	UserRepo repositories.UserRepository
	Realtime http.Handler

	UploadDir   string
	CORSOrigins []string
}

// NewRouter builds the API router and wraps it in the process-wide
// middlewares. Metrics run inside the router so the matched route template is
// available for labels.
func NewRouter(d Dependencies) http.Handler {
	router := mux.NewRouter()
	router.Use(metrics.Middleware)

	auth := middlewares.AuthMiddleware(d.Tokens)
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return auth(middlewares.AdminAuthMiddleware(d.UserRepo)(h))
	}
	authed := func(h http.HandlerFunc) http.Handler { return auth(h) }

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", d.Home.Health).Methods("GET")
	api.HandleFunc("/test-db", d.Home.TestDB).Methods("GET")

	a := api.PathPrefix("/auth").Subrouter()
	a.HandleFunc("/request-signup-otp", d.Auth.RequestSignupOTP).Methods("POST")
	a.HandleFunc("/verify-signup-otp", d.Auth.VerifySignupOTP).Methods("POST")
	a.HandleFunc("/login", d.Auth.Login).Methods("POST")
	a.HandleFunc("/resend-otp", d.Auth.ResendOTP).Methods("POST")
	a.HandleFunc("/verify-account", d.Auth.VerifyAccount).Methods("POST")
	a.Handle("/me", authed(d.Auth.Me)).Methods("GET")

	p := api.PathPrefix("/products").Subrouter()
	p.HandleFunc("", d.Products.List).Methods("GET")
	p.Handle("", adminOnly(d.Admin.CreateProduct)).Methods("POST")
	p.HandleFunc("/{id}", d.Products.Get).Methods("GET")
	p.Handle("/{id}", adminOnly(d.Admin.UpdateProduct)).Methods("PUT")
	p.Handle("/{id}", adminOnly(d.Admin.DeleteProduct)).Methods("DELETE")
	p.HandleFunc("/{id}/reviews", d.Products.Reviews).Methods("GET")
	p.Handle("/{id}/reviews", authed(d.Products.AddReview)).Methods("POST")

	api.HandleFunc("/categories", d.Products.Categories).Methods("GET")
	api.HandleFunc("/categories/{id}", d.Products.Category).Methods("GET")

	c := api.PathPrefix("/cart").Subrouter()
	c.Handle("", authed(d.Cart.List)).Methods("GET")
	c.Handle("", authed(d.Cart.Add)).Methods("POST")
	c.Handle("/clear", authed(d.Cart.Clear)).Methods("DELETE")
	c.Handle("/{id}", authed(d.Cart.UpdateQuantity)).Methods("PUT")
	c.Handle("/{id}/select", authed(d.Cart.Select)).Methods("PUT")
	c.Handle("/{id}", authed(d.Cart.Remove)).Methods("DELETE")

	wl := api.PathPrefix("/wishlist").Subrouter()
	wl.Handle("", authed(d.Cart.Wishlist)).Methods("GET")
	wl.Handle("", authed(d.Cart.AddToWishlist)).Methods("POST")
	wl.Handle("/{productId}", authed(d.Cart.RemoveFromWishlist)).Methods("DELETE")

	cp := api.PathPrefix("/coupons").Subrouter()
	cp.HandleFunc("", d.Coupons.List).Methods("GET")
	cp.HandleFunc("/validate", d.Coupons.Validate).Methods("POST")
	cp.Handle("/apply", authed(d.Coupons.Apply)).Methods("POST")

	o := api.PathPrefix("/orders").Subrouter()
	o.Handle("", authed(d.Orders.Create)).Methods("POST")
	o.Handle("", authed(d.Orders.List)).Methods("GET")
	o.Handle("/{id}", authed(d.Orders.Get)).Methods("GET")
	o.Handle("/{id}/cancel-payment", authed(d.Orders.CancelPayment)).Methods("POST")
	o.Handle("/{id}/payment-success", authed(d.Orders.PaymentSuccess)).Methods("POST")

	api.Handle("/razorpay/create-order", authed(d.Orders.CreateGatewayOrder)).Methods("POST")
	api.Handle("/razorpay/verify-payment", authed(d.Orders.VerifyPayment)).Methods("POST")
	api.HandleFunc("/payments/payment-methods", d.Orders.PaymentMethods).Methods("GET")

	ad := api.PathPrefix("/addresses").Subrouter()
	ad.Handle("", authed(d.Addresses.List)).Methods("GET")
	ad.Handle("", authed(d.Addresses.Create)).Methods("POST")
	ad.Handle("/{id}", authed(d.Addresses.Update)).Methods("PUT")
	ad.Handle("/{id}", authed(d.Addresses.Delete)).Methods("DELETE")
	ad.Handle("/{id}/default", authed(d.Addresses.SetDefault)).Methods("PUT")

	br := api.PathPrefix("/brand-reviews").Subrouter()
	br.HandleFunc("", d.BrandReviews.List).Methods("GET")
	br.Handle("", authed(d.BrandReviews.Create)).Methods("POST")
	br.Handle("/{id}", authed(d.BrandReviews.Update)).Methods("PUT")
	br.Handle("/{id}", authed(d.BrandReviews.Delete)).Methods("DELETE")

	u := api.PathPrefix("/users").Subrouter()
	u.Handle("/profile", authed(d.Users.Profile)).Methods("GET")
	u.Handle("/profile", authed(d.Users.UpdateProfile)).Methods("PUT")
	u.Handle("/dashboard", authed(d.Users.Dashboard)).Methods("GET")
	u.Handle("/recently-viewed/{productId}", authed(d.Users.RecordView)).Methods("POST")

	adm := api.PathPrefix("/admin").Subrouter()
	adm.Handle("/stats", adminOnly(d.Admin.Stats)).Methods("GET")
	adm.Handle("/users", adminOnly(d.Admin.Users)).Methods("GET")
	adm.Handle("/products", adminOnly(d.Admin.Products)).Methods("GET")
	adm.Handle("/orders", adminOnly(d.Admin.Orders)).Methods("GET")
	adm.Handle("/orders/{id}/status", adminOnly(d.Admin.UpdateOrderStatus)).Methods("PUT")
	adm.Handle("/analytics/products", adminOnly(d.Admin.ProductAnalytics)).Methods("GET")
	adm.Handle("/categories", adminOnly(d.Admin.Categories)).Methods("GET")
	adm.Handle("/categories", adminOnly(d.Admin.CreateCategory)).Methods("POST")
	adm.Handle("/categories/{id}", adminOnly(d.Admin.UpdateCategory)).Methods("PUT")
	adm.Handle("/categories/{id}", adminOnly(d.Admin.DeleteCategory)).Methods("DELETE")
	adm.Handle("/coupons", adminOnly(d.Admin.Coupons)).Methods("GET")
	adm.Handle("/coupons", adminOnly(d.Admin.CreateCoupon)).Methods("POST")
	adm.Handle("/coupons/{id}", adminOnly(d.Admin.UpdateCoupon)).Methods("PUT")
	adm.Handle("/coupons/{id}", adminOnly(d.Admin.DeleteCoupon)).Methods("DELETE")

	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	if d.Realtime != nil {
		router.Handle("/ws", d.Realtime)
	}
	if d.UploadDir != "" {
		router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadDir))))
	}

	var h http.Handler = router
	h = middlewares.CORS(d.CORSOrigins)(h)
	h = middlewares.RequestLogger(h)
	h = middlewares.Recovery(h)
	return h
}
