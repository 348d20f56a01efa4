package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"bima-invoice/internal/analytics"
	"bima-invoice/internal/caching"
	"bima-invoice/internal/handlers"
	"bima-invoice/internal/jobs/background"
	"bima-invoice/internal/repositories"
	"bima-invoice/internal/services"
	"bima-invoice/pkg/database"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	for _, bucket := range []string{services.LogoBucket, services.ExportBucket} {
		if err := minioSvc.EnsureBucketExists(context.Background(), bucket); err != nil {
			log.Printf("WARN: could not ensure bucket %s: %v", bucket, err)
		}
	}

	// Repositories
	invoiceRepo := repositories.NewInvoiceRepo(pool)
	settingsRepo := repositories.NewSettingsRepo(pool)

	// Cache and services
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	analyticsSvc := analytics.NewAnalyticsService(invoiceRepo, cacheSvc)
	invoiceSvc := services.NewInvoiceService(invoiceRepo, cacheSvc)
	settingsSvc := services.NewSettingsService(settingsRepo, cacheSvc)

	// Handlers
	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceSvc, settingsSvc)
	settingsHandlers := handlers.NewSettingsHandlers(settingsSvc, minioSvc)
	exportHandlers := handlers.NewExportHandlers(invoiceSvc, settingsSvc, analyticsSvc, minioSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Background jobs
	scheduler, err := background.NewJobScheduler(analyticsSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	e := echo.New()

	// Global middleware
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	v1 := e.Group("/v1")

	// Invoice routes
	v1.GET("/invoices", invoiceHandlers.ListInvoices)
	v1.POST("/invoices", invoiceHandlers.CreateInvoice)
	v1.GET("/invoices/next-number", invoiceHandlers.NextInvoiceNumber)
	v1.GET("/invoices/:id", invoiceHandlers.GetInvoice)
	v1.PUT("/invoices/:id", invoiceHandlers.UpdateInvoice)
	v1.DELETE("/invoices/:id", invoiceHandlers.DeleteInvoice)
	v1.POST("/invoices/:id/payment/confirm", invoiceHandlers.ConfirmPayment)
	v1.POST("/invoices/:id/payment/revert", invoiceHandlers.RevertPayment)
	v1.GET("/invoices/:id/validate-totals", invoiceHandlers.ValidateInvoiceTotals)
	v1.GET("/invoices/:id/pdf", exportHandlers.GenerateInvoicePDF)

	// Payment tracking routes
	v1.GET("/payments/summary", exportHandlers.PaymentSummary)
	v1.GET("/payments/statement", exportHandlers.PaymentStatement)

	// Settings routes
	v1.GET("/settings", settingsHandlers.GetSettings)
	v1.PUT("/settings", settingsHandlers.UpdateSettings)
	v1.POST("/settings/logo", settingsHandlers.UploadLogo)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Bima invoice server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
