package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mercaline/mercaline-backend/api/controllers"
	"github.com/mercaline/mercaline-backend/api/middleware"
	"github.com/mercaline/mercaline-backend/internal/auth"
	"github.com/mercaline/mercaline-backend/internal/banners"
	"github.com/mercaline/mercaline-backend/internal/cart"
	"github.com/mercaline/mercaline-backend/internal/catalog"
	"github.com/mercaline/mercaline-backend/internal/categories"
	"github.com/mercaline/mercaline-backend/internal/dashboard"
	"github.com/mercaline/mercaline-backend/internal/watchlist"
	"github.com/mercaline/mercaline-backend/pkg/auth/session"
	"github.com/mercaline/mercaline-backend/pkg/config"
	"github.com/mercaline/mercaline-backend/pkg/db"
	"github.com/mercaline/mercaline-backend/pkg/enums"
	"github.com/mercaline/mercaline-backend/pkg/logger"
	"github.com/mercaline/mercaline-backend/pkg/metrics"
	"github.com/mercaline/mercaline-backend/pkg/redis"
)

// Deps gathers everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	ImageDir    string

	AuthService      auth.Service
	RegisterService  auth.RegisterService
	PasswordReset    auth.PasswordResetService
	CatalogService   catalog.Service
	FormParser       *controllers.ProductFormParser
	CategoryService  categories.Service
	BannerService    banners.Service
	CartService      cart.Service
	WatchlistService watchlist.Service
	DashboardService dashboard.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	resetPolicy := middleware.NewAuthRateLimitPolicy(
		"reset",
		cfg.AuthRateLimit.ResetWindow,
		cfg.AuthRateLimit.ResetIPLimit,
		cfg.AuthRateLimit.ResetEmailLimit,
	)

	requireAuth := middleware.Auth(cfg.JWT, deps.Sessions, logg)
	requireAdmin := middleware.RequireRole(string(enums.UserRoleAdmin), logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	if deps.ImageDir != "" {
		fileServer := http.FileServer(http.Dir(deps.ImageDir))
		r.Handle("/public/images/*", http.StripPrefix("/public/images/", fileServer))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.With(requireAuth).Post("/logout", controllers.AuthLogout(deps.AuthService, logg))

		r.Route("/password", func(r chi.Router) {
			r.Use(middleware.AuthRateLimit(resetPolicy, deps.Redis, logg))
			r.Post("/forgot", controllers.ForgotPassword(deps.PasswordReset, logg))
			r.Post("/verify-otp", controllers.VerifyResetOTP(deps.PasswordReset, logg))
			r.Post("/reset", controllers.ResetPassword(deps.PasswordReset, logg))
		})
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AdminAuthLogin(deps.AuthService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.CatalogService, logg))
		r.Get("/{productId}", controllers.GetProduct(deps.CatalogService, logg))
		r.Get("/{productId}/colors/{color}/images", controllers.GetColorImages(deps.CatalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Post("/", controllers.CreateProduct(deps.CatalogService, deps.FormParser, logg))
			r.Post("/{productId}/colors/{color}/images", controllers.AddColorImages(deps.CatalogService, logg))
			r.Put("/{productId}/colors/{color}/images/order", controllers.ReorderColorImages(deps.CatalogService, logg))
			r.Delete("/{productId}/colors/{color}/images/{imageId}", controllers.DeleteColorImage(deps.CatalogService, logg))
		})
	})

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", controllers.ListCategories(deps.CategoryService, logg))
		r.Get("/{categoryId}", controllers.GetCategory(deps.CategoryService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Post("/", controllers.CreateCategory(deps.CategoryService, logg))
			r.Put("/{categoryId}", controllers.UpdateCategory(deps.CategoryService, logg))
			r.Delete("/{categoryId}", controllers.DeleteCategory(deps.CategoryService, logg))
		})
	})

	r.Route("/api/v1/subcategories", func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)
		r.Post("/", controllers.CreateSubcategory(deps.CategoryService, logg))
		r.Put("/{subcategoryId}", controllers.UpdateSubcategory(deps.CategoryService, logg))
		r.Delete("/{subcategoryId}", controllers.DeleteSubcategory(deps.CategoryService, logg))
	})

	r.Route("/api/v1/banners", func(r chi.Router) {
		r.Get("/", controllers.ListBanners(deps.BannerService, logg))
		r.Get("/{bannerId}", controllers.GetBanner(deps.BannerService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Post("/", controllers.CreateBanner(deps.BannerService, logg))
			r.Put("/{bannerId}", controllers.UpdateBanner(deps.BannerService, logg))
			r.Delete("/{bannerId}", controllers.DeleteBanner(deps.BannerService, logg))
		})
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", controllers.GetCart(deps.CartService, logg))
		r.Delete("/", controllers.ClearCart(deps.CartService, logg))
		r.Post("/items", controllers.AddCartItem(deps.CartService, logg))
		r.Put("/items/{itemId}", controllers.UpdateCartItem(deps.CartService, logg))
		r.Delete("/items/{itemId}", controllers.RemoveCartItem(deps.CartService, logg))
	})

	r.Route("/api/v1/watchlist", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", controllers.ListWatchlist(deps.WatchlistService, logg))
		r.Post("/{productId}", controllers.ToggleWatchlist(deps.WatchlistService, logg))
	})

	r.Route("/api/admin/v1/dashboard", func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)
		r.Get("/", controllers.DashboardStats(deps.DashboardService, logg))
	})

	return r
}
