package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/debasish790/backend-bill/config"
	"github.com/debasish790/backend-bill/events"
	"github.com/debasish790/backend-bill/handlers"
	"github.com/debasish790/backend-bill/middleware"
	"github.com/debasish790/backend-bill/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const serviceName = "backend-bill-api"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	setupLogging(cfg)

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	bus := events.NewBus()
	router := setupRouter(db, cfg, bus)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Infof("Starting %s on port %s", serviceName, port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")

	// Event streams only end when their subscriptions close.
	bus.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
}

func setupLogging(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}

func setupRouter(db *gorm.DB, cfg *config.Config, bus *events.Bus) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(), middleware.RequestLogger(logrus.StandardLogger()))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg, bus)
	categoryHandler := handlers.NewCategoryHandler(db, bus)
	productHandler := handlers.NewProductHandler(db, bus)
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg, bus)
	reportHandler := handlers.NewReportHandler(db, cfg)
	eventHandler := handlers.NewEventHandler(bus)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		vendor := api.Group("")
		vendor.Use(middleware.JwtAuthMiddleware(cfg), middleware.RequireRole(models.RoleVendor))

		vendor.GET("/users/me", userHandler.GetProfile)
		vendor.PUT("/users/me", userHandler.UpdateProfile)

		vendor.GET("/categories", categoryHandler.ListCategories)
		vendor.POST("/categories", categoryHandler.CreateCategory)
		vendor.PUT("/categories/:id", categoryHandler.UpdateCategory)
		vendor.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		vendor.GET("/products", productHandler.ListProducts)
		vendor.POST("/products", productHandler.CreateProduct)
		vendor.GET("/products/:id", productHandler.GetProduct)
		vendor.PUT("/products/:id", productHandler.UpdateProduct)
		vendor.DELETE("/products/:id", productHandler.DeleteProduct)

		vendor.GET("/invoices", invoiceHandler.ListInvoices)
		vendor.POST("/invoices", invoiceHandler.CreateInvoice)
		vendor.GET("/invoices/next-number", invoiceHandler.NextNumber)
		vendor.POST("/invoices/preview", invoiceHandler.Preview)
		vendor.POST("/invoices/form", invoiceHandler.Form)
		vendor.GET("/invoices/:id", invoiceHandler.GetInvoice)
		vendor.GET("/invoices/:id/pdf", invoiceHandler.DownloadPDF)
		vendor.GET("/invoices/:id/receipt", invoiceHandler.Receipt)

		vendor.GET("/reports", reportHandler.SalesReport)
		vendor.GET("/events", eventHandler.Stream)
	}

	return router
}
