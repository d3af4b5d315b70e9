package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stationhq/fuelops-api/internal/application/service"
	"github.com/stationhq/fuelops-api/internal/config"
	"github.com/stationhq/fuelops-api/internal/infrastructure/database"
	"github.com/stationhq/fuelops-api/internal/infrastructure/repository"
	"github.com/stationhq/fuelops-api/internal/presentation/http/handler"
	"github.com/stationhq/fuelops-api/internal/presentation/http/routes"
	"github.com/stationhq/fuelops-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Structured logging
	config.SetupLogger(cfg)

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	machineRepo := repository.NewMachineRepository(db)
	fuelTypeRepo := repository.NewFuelTypeRepository(db)
	fuelRateRepo := repository.NewFuelRateRepository(db)
	nozzleRepo := repository.NewNozzleRepository(db)
	tankRepo := repository.NewTankRepository(db)
	stockEntryRepo := repository.NewStockEntryRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	readingRepo := repository.NewShiftNozzleReadingRepository(db)
	saleRepo := repository.NewFuelSaleRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	meterLedger := service.NewMeterLedger(nozzleRepo)
	stockService := service.NewStockService(txManager, tankRepo, stockEntryRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	tenantService := service.NewTenantService(tenantRepo)
	userService := service.NewUserService(userRepo)
	stationService := service.NewStationService(txManager, machineRepo, nozzleRepo, tankRepo, fuelTypeRepo, fuelRateRepo)
	shiftService := service.NewShiftService(txManager, shiftRepo, readingRepo, nozzleRepo, machineRepo, fuelRateRepo, saleRepo, userRepo, meterLedger)
	saleService := service.NewSaleService(txManager, shiftRepo, readingRepo, saleRepo, stockEntryRepo, meterLedger, stockService)
	reportService := service.NewReportService(reportRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Tenant:  handler.NewTenantHandler(tenantService),
		User:    handler.NewUserHandler(userService),
		Station: handler.NewStationHandler(stationService),
		Shift:   handler.NewShiftHandler(shiftService),
		Sale:    handler.NewSaleHandler(saleService),
		Stock:   handler.NewStockHandler(stockService),
		Report:  handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
