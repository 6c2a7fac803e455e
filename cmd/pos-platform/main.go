package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qikpos/pos-platform/internal/api/handlers"
	"github.com/qikpos/pos-platform/internal/api/middleware"
	"github.com/qikpos/pos-platform/internal/cache"
	"github.com/qikpos/pos-platform/internal/config"
	"github.com/qikpos/pos-platform/internal/health"
	"github.com/qikpos/pos-platform/internal/metrics"
	"github.com/qikpos/pos-platform/internal/receipt"
	repository "github.com/qikpos/pos-platform/internal/repositories"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/qikpos/pos-platform/internal/tracing"
	"github.com/qikpos/pos-platform/pkg/gemini"
	"github.com/qikpos/pos-platform/pkg/sendGrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Setup(context.Background(), &cfg.Tracing)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)

	// Repositories
	productRepo := repository.NewProductRepo(repos.DB)
	customerRepo := repository.NewCustomerRepo(repos.DB)
	transactionRepo := repository.NewTransactionRepo(repos.DB)
	settlementRepo := repository.NewSettlementRepo(repos.DB)
	userRepo := repository.NewUserRepo(repos.DB)
	settingsRepo := repository.NewSettingsRepo(repos.DB)
	maintenanceRepo := repository.NewMaintenanceRepo(repos.DB)

	// Outbound clients, both optional
	var geminiClient gemini.Client

	if cfg.Gemini.APIKey != "" {
		geminiClient, err = gemini.NewClient(context.Background(), &cfg.Gemini)
		if err != nil {
			slog.Error("❌ Error creating the Gemini client", "error", err.Error())
			os.Exit(1)
		}

		defer geminiClient.Close()
	} else {
		slog.Warn("Gemini API key not configured, AI endpoints disabled")
	}

	var emailClient sendGrid.EmailService

	if cfg.SendGrid.APIKey != "" {
		emailClient = sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		slog.Warn("SendGrid API key not configured, receipt email disabled")
	}

	jwtKey := []byte(cfg.Security.JWTKey)

	// Services and handlers
	userService := service.NewUserService(userRepo, rateLimitRepo, jwtKey, cfg.Security.TokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	catalogService := service.NewCatalogService(productRepo, redisCache)
	productHandler := handlers.NewProductHandler(catalogService)
	customerService := service.NewCustomerService(customerRepo, transactionRepo)
	settlementService := service.NewSettlementService(settlementRepo, productRepo, customerRepo, settingsRepo)
	customerHandler := handlers.NewCustomerHandler(customerService, settlementService)
	saleHandler := handlers.NewSaleHandler(settlementService)
	transactionService := service.NewTransactionService(transactionRepo, settingsRepo, receipt.NewRenderer(), emailClient)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	settingsService := service.NewSettingsService(settingsRepo, redisCache)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	reportService := service.NewReportService(transactionRepo)
	reportHandler := handlers.NewReportHandler(reportService)
	backupService := service.NewBackupService(productRepo, transactionRepo, customerRepo, userRepo, settingsRepo, maintenanceRepo)
	backupHandler := handlers.NewBackupHandler(backupService)
	insightsService := service.NewInsightsService(geminiClient, transactionRepo)
	aiHandler := handlers.NewAIHandler(insightsService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating the health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	authed := authMiddleware.Authenticate
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(authMiddleware.RequireAdmin(next))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())

	routerMux.HandleFunc("GET /api/v1/products", authed(productHandler.ListProducts()))
	routerMux.HandleFunc("GET /api/v1/products/low-stock", authed(productHandler.ListLowStock()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", authed(productHandler.GetProduct()))
	routerMux.HandleFunc("POST /api/v1/products", admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", admin(productHandler.UpdateProduct()))

	routerMux.HandleFunc("GET /api/v1/customers", authed(customerHandler.ListCustomers()))
	routerMux.HandleFunc("GET /api/v1/customers/{id}", authed(customerHandler.GetCustomer()))
	routerMux.HandleFunc("GET /api/v1/customers/{id}/history", authed(customerHandler.GetHistory()))
	routerMux.HandleFunc("POST /api/v1/customers", authed(customerHandler.CreateCustomer()))
	routerMux.HandleFunc("PUT /api/v1/customers/{id}", authed(customerHandler.UpdateCustomer()))
	routerMux.HandleFunc("POST /api/v1/customers/{id}/payments", authed(customerHandler.PayDebt()))

	routerMux.HandleFunc("POST /api/v1/sales", authed(saleHandler.CompleteSale()))

	routerMux.HandleFunc("GET /api/v1/transactions", authed(transactionHandler.ListTransactions()))
	routerMux.HandleFunc("GET /api/v1/transactions/{id}", authed(transactionHandler.GetTransaction()))
	routerMux.HandleFunc("GET /api/v1/transactions/{id}/receipt", authed(transactionHandler.GetReceipt()))
	routerMux.HandleFunc("POST /api/v1/transactions/{id}/receipt/email", authed(transactionHandler.EmailReceipt()))

	routerMux.HandleFunc("GET /api/v1/settings", authed(settingsHandler.GetSettings()))
	routerMux.HandleFunc("PUT /api/v1/settings", admin(settingsHandler.UpdateSettings()))

	routerMux.HandleFunc("GET /api/v1/users", admin(userHandler.ListUsers()))
	routerMux.HandleFunc("POST /api/v1/users", admin(userHandler.CreateUser()))
	routerMux.HandleFunc("PUT /api/v1/users/{id}", admin(userHandler.UpdateUser()))
	routerMux.HandleFunc("DELETE /api/v1/users/{id}", admin(userHandler.DeleteUser()))

	routerMux.HandleFunc("GET /api/v1/reports/summary", admin(reportHandler.SalesSummary()))

	routerMux.HandleFunc("POST /api/v1/ai/suggest-product", admin(aiHandler.SuggestProduct()))
	routerMux.HandleFunc("POST /api/v1/ai/analyze", admin(aiHandler.AnalyzeSales()))

	routerMux.HandleFunc("GET /api/v1/backup", admin(backupHandler.ExportBackup()))
	routerMux.HandleFunc("POST /api/v1/backup/restore", admin(backupHandler.RestoreBackup()))
	routerMux.HandleFunc("POST /api/v1/system/reset", admin(backupHandler.FactoryReset()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "http.server")
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
