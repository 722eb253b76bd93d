package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"ramani-storefront/config"
	"ramani-storefront/controllers"
	"ramani-storefront/guest"
	"ramani-storefront/metrics"
	"ramani-storefront/middleware"
	"ramani-storefront/routes"
	"ramani-storefront/services"
	"ramani-storefront/store"
	"ramani-storefront/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := utils.InitLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	// Connect to MongoDB
	client, err := utils.ConnectDB(cfg.Mongo)
	if err != nil {
		zap.S().Fatalf("MongoDB unavailable: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			zap.S().Errorf("MongoDB disconnect: %v", err)
		}
	}()
	db := client.Database(cfg.Mongo.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		zap.S().Fatalf("ensure indexes: %v", err)
	}
	cancel()

	// Guest sessions live in Redis when configured, in memory otherwise
	var sessions services.GuestSessionStore
	redisClient, err := utils.ConnectRedis(cfg.Redis)
	if err != nil {
		zap.S().Fatalf("Redis unavailable: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessions = guest.NewRedisStore(redisClient, cfg.Redis.SessionTTL)
	} else {
		zap.S().Warn("REDIS_ADDR not set, guest sessions are kept in memory")
		sessions = guest.NewMemoryStore(cfg.Redis.SessionTTL)
	}

	issuer := utils.NewTokenIssuer(
		utils.TokenDomain{Secret: []byte(cfg.Auth.CustomerSecret)},
		utils.TokenDomain{Secret: []byte(cfg.Auth.AdminSecret), TTL: cfg.Auth.AdminTokenTTL},
	)
	otpGen := services.NewOtpGenerator(cfg.OTP.Mode, cfg.OTP.FixedCode)
	otpSender := services.LogOtpSender{}
	emailService := utils.NewEmailService(cfg.Email)

	// Stores
	products := store.NewProductStore(db)
	carts := store.NewCartStore(db)
	wishlists := store.NewWishlistStore(db)

	// Services
	cartService := services.NewCartService(carts, products)
	wishlistService := services.NewWishlistService(wishlists, products)
	guestService := services.NewGuestService(sessions, products, cartService, wishlistService)
	accountService := services.NewAccountService(
		store.NewUserStore(db), store.NewOTPStore(db), issuer, otpGen, otpSender, guestService,
		services.AccountOptions{OTPTTL: cfg.OTP.CustomerTTL, RequirePhoneOTP: cfg.OTP.RequirePhoneOTP},
	)
	adminAuth := services.NewAdminAuthService(store.NewAdminStore(db), issuer, otpGen, otpSender, cfg.OTP.AdminTTL)
	orderService := services.NewOrderService(store.NewOrderStore(db), carts, emailService)
	contactService := services.NewContactService(store.NewContactStore(db))

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := adminAuth.EnsureSeedAdmin(seedCtx, cfg.AdminSeed); err != nil {
		zap.S().Errorf("seed admin: %v", err)
	}
	seedCancel()

	// Initialize controllers
	registry := metrics.NewRegistry()
	productController := controllers.NewProductController(
		services.NewCatalogService(products),
		services.NewProductAdminService(products),
		services.NewProductSheet(products),
	)
	adminController := &controllers.AdminController{
		Auth:      adminAuth,
		Accounts:  accountService,
		Orders:    orderService,
		Analytics: services.NewAnalyticsService(store.NewAnalyticsStore(db), cfg.Store.LowStockThreshold),
		Contacts:  contactService,
		Metrics:   registry,
	}
	handlers := routes.Handlers{
		Users:     controllers.NewUserController(accountService, cfg.OTP.ExposeTestCode),
		Products:  productController,
		Carts:     controllers.NewCartController(cartService),
		Wishlists: controllers.NewWishlistController(wishlistService),
		Guests:    controllers.NewGuestController(guestService),
		Orders:    controllers.NewOrderController(orderService),
		Addresses: controllers.NewAddressController(services.NewAddressService(store.NewAddressStore(db))),
		Contacts:  controllers.NewContactController(contactService),
		Admin:     adminController,
	}

	// Set up the router
	router := mux.NewRouter()
	limiter := middleware.NewRateLimiter(cfg.Server.AuthRateLimit, cfg.Server.AuthRateBurst)
	routes.RegisterRoutes(router, handlers, issuer, limiter, registry)

	// CORS → security headers → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CorsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(middleware.SecurityHeaders(router))

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           corsHandler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zap.S().Infof("Server is running on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalf("ListenAndServe: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zap.S().Info("Shutdown signal received, shutting down gracefully")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorf("Graceful shutdown failed: %v", err)
	}
}
