package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/roamstay/travel-booking-backend/internal/config"
	"github.com/roamstay/travel-booking-backend/internal/database"
	"github.com/roamstay/travel-booking-backend/internal/handlers"
	"github.com/roamstay/travel-booking-backend/internal/middleware"
	"github.com/roamstay/travel-booking-backend/internal/services"
	"github.com/roamstay/travel-booking-backend/pkg/gateway"
	"github.com/roamstay/travel-booking-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting RoamStay Travel Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Run schema migrations
	if err := database.RunMigrations(context.Background(), db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations applied")

	// Initialize repositories
	userRepository := database.NewUserRepository(db)
	userSessionRepository := database.NewUserSessionRepository(db)
	wishlistRepository := database.NewWishlistRepository(db)
	bookingRepository := database.NewBookingRepository(db)
	paymentRepository := database.NewPaymentRepository(db)
	catalogRepository := database.NewCatalogRepository(db)

	// Initialize payment gateway
	var paymentGateway gateway.PaymentGateway
	if cfg.Stripe.Mode == "production" {
		logger.Info("Initializing Stripe gateway in production mode...")
		stripeGateway, err := gateway.NewStripeGateway(gateway.StripeConfig{
			SecretKey:     cfg.Stripe.SecretKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
		})
		if err != nil {
			logger.Fatalf("Failed to initialize Stripe gateway: %v", err)
		}
		paymentGateway = stripeGateway
		logger.Info("Stripe gateway initialized")
	} else {
		logger.Info("Payment gateway in development mode (no real charges)")
		paymentGateway = gateway.NewMockGateway()
	}

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	authService := services.NewAuthService(userRepository, userSessionRepository, jwtService, cfg.Security.BcryptCost, logger)
	wishlistService := services.NewWishlistService(wishlistRepository)
	bookingService := services.NewBookingService(bookingRepository)
	paymentService := services.NewPaymentService(
		db,
		paymentRepository,
		bookingRepository,
		userRepository,
		paymentGateway,
		cfg.Stripe.Currency,
		logger,
	)
	catalogService := services.NewCatalogService(catalogRepository, cfg.Catalog.CacheTTL, logger)
	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, paymentGateway)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	api := router.Group("/api")
	{
		// Public routes
		api.POST("/signup", authHandler.Signup)
		api.POST("/login", authHandler.Login)
		api.POST("/refresh-token", authHandler.RefreshToken)
		api.GET("/destinations", catalogHandler.ListDestinations)
		api.GET("/packages", catalogHandler.ListPackages)

		// Payment routes (public). The webhook is authenticated by
		// its signature, and the checkout flow must keep working even
		// when the shopper's access token expires mid-payment; only
		// refunds sit behind JWT.
		payments := api.Group("/payments")
		{
			payments.POST("/webhook", paymentHandler.Webhook)
			payments.POST("/create-payment-intent", paymentHandler.CreateIntent)
			payments.POST("/save-payment", paymentHandler.SavePayment)
			payments.GET("/history/:email", paymentHandler.History)
			payments.GET("/:transactionId", paymentHandler.Get)

			paymentsProtected := payments.Group("")
			paymentsProtected.Use(middleware.AuthMiddleware(jwtService, userRepository))
			{
				paymentsProtected.POST("/:transactionId/refund", paymentHandler.Refund)
			}
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService, userRepository))
		{
			protected.GET("/profile", authHandler.Profile)

			protected.POST("/wishlist", wishlistHandler.Add)
			protected.GET("/wishlist", wishlistHandler.List)
			protected.DELETE("/wishlist/:id", wishlistHandler.Remove)
			protected.GET("/wishlist/check/:destinationId", wishlistHandler.Check)
			protected.POST("/wishlist/status", wishlistHandler.Status)

			protected.POST("/bookings", bookingHandler.Create)
			protected.GET("/bookings", bookingHandler.List)
			protected.GET("/bookings/:id", bookingHandler.Get)
			protected.PUT("/bookings/:id", bookingHandler.Update)
			protected.DELETE("/bookings/:id", bookingHandler.Cancel)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
			return
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
