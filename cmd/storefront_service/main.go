package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zivra/storefront/internal/catalog/loader"
	"github.com/zivra/storefront/internal/platform/config"
	"github.com/zivra/storefront/internal/platform/database"
	"github.com/zivra/storefront/internal/platform/logger"
	storefrontAPI "github.com/zivra/storefront/internal/storefront/api"
	storefrontRepo "github.com/zivra/storefront/internal/storefront/repository"
	storefrontService "github.com/zivra/storefront/internal/storefront/service"
)

func main() {
	// Load Config
	dbCfg := config.LoadStateDBConfig()
	serverCfg := config.LoadServerConfig("8085")
	sfCfg := config.LoadStorefrontConfig()

	logger.Info("Starting Storefront Service...")

	// Setup Database
	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to state database", err, nil)
		return
	}
	defer db.Close()

	// Setup Dependencies
	sfRepository, err := storefrontRepo.NewStateRepository(db, database.DriverFor(dbCfg.DSN))
	if err != nil {
		logger.Error("Failed to initialize state repository", err, nil)
		return
	}

	catalog, err := loader.Load(sfCfg.CatalogPath)
	if err != nil {
		logger.Error("Failed to load catalog from "+sfCfg.CatalogPath, err, nil)
		return
	}

	sfService := storefrontService.NewStorefrontService(catalog, sfRepository)
	sfService.Hydrate(context.Background())
	sfHandler := storefrontAPI.NewStorefrontHandler(sfService)

	auditScheduler, err := storefrontService.NewAuditScheduler(sfService, sfCfg.AuditSpec)
	if err != nil {
		logger.Error("Failed to initialize audit scheduler", err, nil)
		return
	}
	auditScheduler.Start()
	defer auditScheduler.Stop()

	// Setup Gin Router
	router := gin.Default()
	router.Use(storefrontAPI.RequestID())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	sfHandler.RegisterRoutes(apiV1)

	logger.Info("Storefront Service running on port %s", serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run Storefront Service server", err, nil)
	}
}
