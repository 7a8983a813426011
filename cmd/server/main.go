package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"smartvegis/docs"
	"smartvegis/internal/auth"
	"smartvegis/internal/cache"
	"smartvegis/internal/config"
	"smartvegis/internal/db"
	"smartvegis/internal/handler"
	"smartvegis/internal/repository"
	"smartvegis/internal/router"
	"smartvegis/internal/service"
)

// @title SmartVegis API
// @version 1.0
// @description Vendor and storefront API for fresh produce: FSSAI-verified vendor accounts, listings, mandi prices and nearby search.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	var logHandler slog.Handler = slog.NewTextHandler(os.Stdout, nil)
	if cfg.IsProduction() {
		logHandler = slog.NewJSONHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(logHandler))

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return err
	}

	if cfg.ResetDB {
		slog.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			slog.Warn("failed to drop tables (may not exist)", "error", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		slog.Warn("redis unreachable, auth rate limiting disabled", "addr", cfg.RedisAddr, "error", err)
	}
	authLimiter := cache.NewRateLimiter(cacheClient, "auth", cfg.AuthRateLimit, time.Minute)

	httpClient := &http.Client{Timeout: cfg.OutboundTimeout}

	// Outbound integrations
	verifier := service.NewLicenseVerifier(httpClient, service.LicenseVerifierConfig{
		URL:          cfg.GridlinesAPIURL,
		APIKey:       cfg.GridlinesAPIKey,
		DefaultState: cfg.DefaultState,
		Production:   cfg.IsProduction(),
	})
	if cfg.GridlinesAPIKey == "" || cfg.GridlinesAPIKey == service.PlaceholderGridlinesKey {
		slog.Warn("GRIDLINES_API_KEY not set, FSSAI verification returns mock data")
	}
	priceService := service.NewPriceService(httpClient, cfg.DataGovAPIURL, cfg.DataGovAPIKey, cfg.DefaultState)
	geocoder := service.NewGeocoder(httpClient, cfg.GeocoderURL, cfg.GeocoderUserAgent)

	imageService, err := service.NewImageService(service.ImageStoreConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		PublicURL: cfg.MinioPublicURL,
	})
	if err != nil {
		return err
	}
	if err := imageService.EnsureBucket(ctx); err != nil {
		slog.Warn("image bucket unavailable", "bucket", cfg.MinioBucket, "error", err)
	}

	// Initialize repositories
	vendorRepo := repository.NewVendorRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(vendorRepo, verifier, jwtService)
	vendorService := service.NewVendorService(vendorRepo, geocoder)
	listingService := service.NewListingService(listingRepo, vendorRepo)
	storefrontService := service.NewStorefrontService(listingRepo, vendorRepo)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Vendor:     handler.NewVendorHandler(vendorService),
		Listing:    handler.NewListingHandler(listingService),
		Price:      handler.NewPriceHandler(priceService),
		Upload:     handler.NewUploadHandler(imageService),
		Storefront: handler.NewStorefrontHandler(storefrontService),
	}, jwtService, authLimiter)

	swaggerHost := "localhost:" + cfg.ServerPort
	if cfg.SwaggerHost != "" {
		swaggerHost = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}
	docs.SwaggerInfo.Host = swaggerHost
	slog.Info("swagger documentation available", "url", "http://"+swaggerHost+"/swagger/index.html")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "error", err)
		}
	}()

	slog.Info("SmartVegis API starting", "port", cfg.ServerPort, "env", cfg.AppEnv)
	if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
