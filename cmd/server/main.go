package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vportella/landfolio/internal/config"
	"github.com/vportella/landfolio/internal/handlers"
	"github.com/vportella/landfolio/internal/logger"
	"github.com/vportella/landfolio/internal/middleware"
	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/repository"
	"github.com/vportella/landfolio/internal/services"
	"github.com/vportella/landfolio/internal/sheets"
	"github.com/vportella/landfolio/internal/storage"
)

const (
	shutdownTimeout = 30 * time.Second
	startupTimeout  = 10 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Landfolio API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"driver":      cfg.Sheets.Driver,
	})

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	store, err := openStore(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("Failed to open the backing store", err, map[string]interface{}{
			"driver": cfg.Sheets.Driver,
		})
	}

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(store, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize repository and service layers
	parcelRepo := repository.NewParcelRepository(store)
	ledgerRepo := repository.NewLedgerRepository(store)
	clientRepo := repository.NewClientRepository(store)
	simRepo := repository.NewSimulationRepository(store)

	parcelService := services.NewParcelService(parcelRepo, ledgerRepo, log)
	saleService := services.NewSaleService(parcelRepo, ledgerRepo, log)
	ledgerService := services.NewLedgerService(ledgerRepo, parcelRepo, log)
	loanService := services.NewLoanService(parcelRepo, simRepo, log)
	clientService := services.NewClientService(clientRepo, parcelRepo, log)
	dashboardService := services.NewDashboardService(parcelRepo, log)

	// The upload signer is optional: without a bucket the endpoint
	// reports itself unconfigured instead of keeping the API down.
	signer, err := storage.NewSigner(cfg)
	if err != nil {
		log.Warn("Signed uploads disabled", map[string]interface{}{
			"reason": err.Error(),
		})
		signer = nil
	}

	// Initialize handlers
	parcelHandler := handlers.NewParcelHandler(parcelService, saleService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	loanHandler := handlers.NewLoanHandler(loanService)
	clientHandler := handlers.NewClientHandler(clientService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	uploadHandler := handlers.NewUploadHandler(signer)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		parcels := v1.Group("/parcels")
		{
			parcels.GET("", parcelHandler.List)
			parcels.POST("", parcelHandler.Create)
			parcels.GET("/options", parcelHandler.Options)
			parcels.GET("/:number", parcelHandler.Get)
			parcels.PATCH("/:number", parcelHandler.Update)
			parcels.POST("/:number/sale", parcelHandler.Sale)
		}

		v1.GET("/ledger", ledgerHandler.List)
		v1.POST("/ledger/entries", ledgerHandler.CreateEntry)

		v1.POST("/loans/simulate", loanHandler.Simulate)
		v1.POST("/loans/simulations", loanHandler.Register)

		v1.GET("/clients", clientHandler.List)
		v1.POST("/clients", clientHandler.Create)

		v1.GET("/dashboard", dashboardHandler.Overview)
		v1.GET("/uploads/sign", uploadHandler.Sign)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

// openStore connects to the configured store and verifies the worksheet
// layout. A drifted header means every positional read would hit the
// wrong cells, so startup refuses instead.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (sheets.Store, error) {
	switch cfg.Sheets.Driver {
	case config.DriverMemory:
		store := sheets.NewMemStore()
		store.Seed(models.ParcelSheet, models.ParcelHeaderRow, [][]string{models.ExpectedParcelHeaderRow()})
		log.Warn("Using the in-memory store; nothing will be persisted", nil)
		return store, nil

	case config.DriverSheets:
		client, err := sheets.NewClient(ctx, cfg.Sheets)
		if err != nil {
			return nil, err
		}
		if err := models.VerifyParcelHeader(ctx, client); err != nil {
			return nil, err
		}
		log.Info("Spreadsheet layout verified", map[string]interface{}{
			"spreadsheet_id": cfg.Sheets.SpreadsheetID,
		})
		return client, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Sheets.Driver)
	}
}
