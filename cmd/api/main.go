package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/jmwaura/nyumba-api/internal/config"
	"github.com/jmwaura/nyumba-api/internal/database"
	"github.com/jmwaura/nyumba-api/internal/handlers"
	"github.com/jmwaura/nyumba-api/internal/middleware"
	"github.com/jmwaura/nyumba-api/internal/repository"
	"github.com/jmwaura/nyumba-api/internal/services"
	"github.com/jmwaura/nyumba-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment, cfg.LogLevel)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Initialize repositories, services and handlers
	repos := repository.NewRepositories(db)
	svcs := services.NewServices(repos, cfg)
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	api := router.Group("/api")
	{
		// Health check (public)
		api.GET("/health", h.Health.Index)

		// Authentication
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)

			me := auth.Group("")
			me.Use(middleware.Auth(cfg.JWTSecret))
			{
				me.GET("/me", h.Auth.Me)
				me.PATCH("/me", h.Auth.UpdateMe)
				me.POST("/change_password", h.Auth.ChangePassword)
			}
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Landlord routes
			landlord := protected.Group("")
			landlord.Use(middleware.RequireLandlord())
			{
				landlord.GET("/apartments", h.Apartment.Index)
				landlord.POST("/apartments", h.Apartment.Create)
				landlord.GET("/apartments/:id", h.Apartment.Show)
				landlord.PUT("/apartments/:id", h.Apartment.Update)
				landlord.PATCH("/apartments/:id", h.Apartment.Update)
				landlord.DELETE("/apartments/:id", h.Apartment.Delete)

				landlord.GET("/units", h.Unit.Index)
				landlord.POST("/units", h.Unit.Create)
				landlord.POST("/units/sync_statuses", h.Unit.SyncStatuses)
				landlord.GET("/units/:id", h.Unit.Show)
				landlord.PUT("/units/:id", h.Unit.Update)
				landlord.PATCH("/units/:id", h.Unit.Update)
				landlord.DELETE("/units/:id", h.Unit.Delete)
				landlord.GET("/units/:id/audit", h.Unit.Audit)

				landlord.GET("/tenants", h.Tenant.Index)
				landlord.POST("/tenants", h.Tenant.Create)
				landlord.GET("/tenants/:id", h.Tenant.Show)
				landlord.PUT("/tenants/:id", h.Tenant.Update)
				landlord.PATCH("/tenants/:id", h.Tenant.Update)
				landlord.DELETE("/tenants/:id", h.Tenant.Delete)

				landlord.GET("/invoices", h.Invoice.Index)
				landlord.POST("/invoices", h.Invoice.Create)
				landlord.GET("/invoices/:id", h.Invoice.Show)
				landlord.PUT("/invoices/:id", h.Invoice.Update)
				landlord.PATCH("/invoices/:id", h.Invoice.Update)
				landlord.DELETE("/invoices/:id", h.Invoice.Delete)

				landlord.GET("/payments", h.Payment.Index)
				landlord.POST("/payments", h.Payment.Create)
				landlord.GET("/payments/:id", h.Payment.Show)
				landlord.GET("/payments/:id/receipt", h.Payment.Receipt)

				landlord.GET("/reports/dashboard", h.Report.Dashboard)
				landlord.GET("/reports/payments", h.Report.Payments)
				landlord.GET("/reports/outstanding", h.Report.Outstanding)
			}

			// Invoice PDF is shared by the landlord and the owning tenant
			protected.GET("/invoices/:id/pdf", h.Invoice.PDF)

			// Tenant portal routes
			tenant := protected.Group("/tenant")
			tenant.Use(middleware.RequireTenant())
			{
				tenant.GET("/invoices", h.Invoice.MyInvoices)
				tenant.GET("/invoices/:id", h.Invoice.MyInvoice)
				tenant.GET("/invoices/:id/pdf", h.Invoice.PDF)
				tenant.GET("/payments", h.Payment.MyPayments)
			}

			protected.GET("/reports/tenant/dashboard", middleware.RequireTenant(), h.Report.TenantDashboard)
		}
	}

	return router
}
