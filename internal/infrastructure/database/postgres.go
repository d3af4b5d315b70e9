package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stationhq/fuelops-api/internal/config"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	"github.com/stationhq/fuelops-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenancy
		&entity.Tenant{},
		&entity.User{},

		// Forecourt configuration
		&entity.Machine{},
		&entity.FuelType{},
		&entity.FuelRate{},
		&entity.Tank{},
		&entity.Nozzle{},

		// Ledgers and operations
		&entity.StockEntry{},
		&entity.Shift{},
		&entity.ShiftNozzleReading{},
		&entity.FuelSale{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the first tenant and its owner account when the
// bootstrap environment variables are set. Safe to run repeatedly.
func SeedDefaultData(db *gorm.DB) error {
	ownerEmail := viper.GetString("BOOTSTRAP_OWNER_EMAIL")
	ownerPassword := viper.GetString("BOOTSTRAP_OWNER_PASSWORD")
	stationName := viper.GetString("BOOTSTRAP_STATION_NAME")

	if ownerEmail == "" || ownerPassword == "" {
		return nil
	}

	log.Println("Seeding default data...")

	var existing entity.User
	if err := db.Where("email = ?", ownerEmail).First(&existing).Error; err == nil {
		log.Printf("Bootstrap owner already exists: %s", ownerEmail)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap owner password: %w", err)
	}

	if stationName == "" {
		stationName = "Default Station"
	}

	return db.Transaction(func(tx *gorm.DB) error {
		settings := entity.DefaultTenantSettings()
		tenant := entity.Tenant{
			ID:       uuid.New(),
			Name:     stationName,
			Slug:     utils.Slugify(stationName),
			Settings: settings,
		}

		owner := entity.User{
			ID:        uuid.New(),
			TenantID:  tenant.ID,
			FirstName: "Station",
			LastName:  "Owner",
			Email:     ownerEmail,
			Password:  string(hashedPassword),
			Role:      entity.RoleOwner,
			IsActive:  true,
		}
		tenant.OwnerID = owner.ID

		if err := tx.Create(&tenant).Error; err != nil {
			return fmt.Errorf("failed to create bootstrap tenant: %w", err)
		}
		if err := tx.Create(&owner).Error; err != nil {
			return fmt.Errorf("failed to create bootstrap owner: %w", err)
		}

		// Common Indian forecourt fuel types so a fresh install is usable
		fuelTypes := []entity.FuelType{
			{TenantID: tenant.ID, Name: "Petrol", Code: "MS"},
			{TenantID: tenant.ID, Name: "Diesel", Code: "HSD"},
			{TenantID: tenant.ID, Name: "Premium Petrol", Code: "XMS"},
		}
		for i := range fuelTypes {
			if err := tx.Create(&fuelTypes[i]).Error; err != nil {
				return fmt.Errorf("failed to seed fuel type %s: %w", fuelTypes[i].Code, err)
			}
		}

		log.Printf("Bootstrap tenant created: %s (owner %s)", tenant.Slug, ownerEmail)
		return nil
	})
}
