package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"smartvegis/internal/auth"
	"smartvegis/internal/cache"
	"smartvegis/internal/config"
	"smartvegis/internal/handler"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth       *handler.AuthHandler
	Vendor     *handler.VendorHandler
	Listing    *handler.ListingHandler
	Price      *handler.PriceHandler
	Upload     *handler.UploadHandler
	Storefront *handler.StorefrontHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	h Handlers,
	jwtService *auth.JWTService,
	authLimiter *cache.RateLimiter,
) {
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	e.GET("/", handler.Root)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/health", handler.Health)

	// Public auth routes, throttled per client IP
	authGroup := api.Group("/auth", RateLimit(authLimiter))
	authGroup.POST("/verify-fssai", h.Auth.VerifyFSSAI)
	authGroup.POST("/signup", h.Auth.Signup)
	authGroup.POST("/login", h.Auth.Login)

	// Public storefront
	store := api.Group("/store")
	store.GET("/products", h.Storefront.Products)
	store.GET("/vendors", h.Storefront.Vendors)
	store.GET("/vendors/:id", h.Storefront.Vendor)

	// Secured routes. Auth is attached per route, not per group, so a path
	// no route matches answers 404 before any token check.
	requireAuth := auth.Middleware(jwtService)

	vendor := api.Group("/vendor")
	vendor.GET("/profile", h.Vendor.GetProfile, requireAuth)
	vendor.PUT("/profile", h.Vendor.UpdateProfile, requireAuth)
	vendor.PUT("/location", h.Vendor.UpdateLocation, requireAuth)

	listings := api.Group("/listings")
	listings.GET("", h.Listing.List, requireAuth)
	listings.POST("", h.Listing.Create, requireAuth)
	listings.GET("/:id", h.Listing.Get, requireAuth)
	listings.PUT("/:id", h.Listing.Update, requireAuth)
	listings.DELETE("/:id", h.Listing.Delete, requireAuth)
	listings.PATCH("/:id/toggle", h.Listing.Toggle, requireAuth)

	prices := api.Group("/prices")
	prices.GET("", h.Price.GetPrices, requireAuth)
	prices.GET("/commodities", h.Price.GetCommodities, requireAuth)

	uploads := api.Group("/uploads")
	uploads.POST("/images", h.Upload.UploadImage, requireAuth, middleware.BodyLimit("6M"))
}
