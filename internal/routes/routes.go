package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/pedeai/pedeai-backend/internal/config"
	"github.com/pedeai/pedeai-backend/internal/handlers"
	"github.com/pedeai/pedeai-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	storeHandler *handlers.StoreHandler,
	productHandler *handlers.ProductHandler,
	categoryHandler *handlers.CategoryHandler,
	orderHandler *handlers.OrderHandler,
	customerHandler *handlers.CustomerHandler,
	planHandler *handlers.PlanHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	webhookHandler *handlers.WebhookHandler,
	uploadHandler *handlers.UploadHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Plan catalog is public; everything else about plans is owner-scoped.
	api.Get("/plans", planHandler.Catalog)
	api.Get("/plan", middleware.JWTProtected(cfg), planHandler.Current)
	api.Get("/plan/limits/:resource",
		middleware.JWTProtected(cfg), middleware.RequireStore(db), planHandler.CheckLimit)

	// Store management (owner)
	store := api.Group("/store", middleware.JWTProtected(cfg))
	store.Post("/", storeHandler.Create)
	store.Get("/", storeHandler.Mine)
	store.Put("/", storeHandler.Update)
	store.Patch("/status", storeHandler.SetStatus)

	// Catalog management (owner, store required)
	products := api.Group("/products", middleware.JWTProtected(cfg), middleware.RequireStore(db))
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Patch("/:id/featured", productHandler.SetFeatured)

	categories := api.Group("/categories", middleware.JWTProtected(cfg), middleware.RequireStore(db))
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Order management (owner)
	orders := api.Group("/orders", middleware.JWTProtected(cfg), middleware.RequireStore(db))
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Patch("/:id/payment-proof", orderHandler.UpdatePaymentProof)
	orders.Patch("/:id/confirm-payment", orderHandler.ConfirmPayment)

	// Billing
	api.Post("/subscribe", middleware.JWTProtected(cfg), subscriptionHandler.Subscribe)
	api.Post("/webhooks/stripe", webhookHandler.HandleStripe)

	// Uploads and insights (owner)
	api.Post("/upload", middleware.JWTProtected(cfg), uploadHandler.Upload)
	api.Delete("/upload", middleware.JWTProtected(cfg), uploadHandler.Delete)
	api.Get("/dashboard/insights",
		middleware.JWTProtected(cfg), middleware.RequireStore(db), dashboardHandler.Insights)

	// Public storefront — keyed by slug, stricter order rate limit
	public := api.Group("/public/stores/:slug")
	public.Get("/", storeHandler.BySlug)
	public.Get("/catalog", customerHandler.Catalog)
	public.Post("/identify", customerHandler.Identify)
	public.Post("/orders", limiter.New(limiter.Config{
		Max:               15,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), customerHandler.CreateOrder)

	// Customer self-service — requires storefront token
	customer := api.Group("/customer", middleware.JWTProtected(cfg))
	customer.Get("/orders/:id/status", customerHandler.OrderStatus)
	customer.Post("/orders/:id/cancel", customerHandler.CancelOrder)
}
