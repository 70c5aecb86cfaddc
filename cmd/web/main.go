package main

import (
	"fmt"
	"net/http"
	"os"

	"nuam/internal/config"
	"nuam/internal/database"
	"nuam/internal/logger"
	"nuam/internal/marketdata"
	"nuam/internal/middleware"
	"nuam/internal/server"
	"nuam/internal/validator"

	"github.com/gin-gonic/gin"
)

// @title           NUAM API
// @version         1.0
// @description     Read-only API over the NUAM instrument and rating registry.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	provider := marketdata.NewYahooProvider(&http.Client{Timeout: appConfig.QuotesTimeout}, appConfig.QuotesBaseURL)
	svc := server.NewServices(dbManager.DB(), provider, marketdata.DefaultMarkets(), appConfig.QuotesHistoryDays)

	router, err := server.NewRouter(svc, server.Options{
		Sessions: middleware.NewSessionManager(appConfig.SessionSecret, appConfig.SessionTTL, appConfig.SessionCookieSecure),
		APIKey:   appConfig.APIKey,
	})
	if err != nil {
		return err
	}

	if appConfig.APIKey == "" {
		log.Warn("API_KEY is not set; /api/v1 answers 503")
	}
	log.Infof("Starting NUAM server on port %s (db driver %s)", appConfig.Port, dbConfig.Driver)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
