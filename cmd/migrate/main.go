package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"

	"github.com/jmwaura/nyumba-api/internal/config"
	"github.com/jmwaura/nyumba-api/internal/database"
	"github.com/jmwaura/nyumba-api/internal/models"
	"github.com/jmwaura/nyumba-api/internal/services"
	"github.com/jmwaura/nyumba-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatal(err)
	}

	logger.Info("Running migrations")
	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Apartment{},
		&models.Unit{},
		&models.TenantProfile{},
		&models.UnitStatusAudit{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
		&models.Payment{},
	); err != nil {
		logger.Error("Migration failed", "error", err)
		log.Fatal(err)
	}
	logger.Info("Migrations complete")

	if err := seedSuperuser(db, cfg); err != nil {
		logger.Error("Superuser seed failed", "error", err)
		log.Fatal(err)
	}
}

// seedSuperuser creates the bootstrap account once. Subsequent runs are no-ops.
func seedSuperuser(db *gorm.DB, cfg *config.Config) error {
	if cfg.SuperuserEmail == "" || cfg.SuperuserPassword == "" {
		logger.Info("Superuser not configured, skipping seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", cfg.SuperuserEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Superuser already exists", "email", cfg.SuperuserEmail)
		return nil
	}

	hash, err := services.HashPassword(cfg.SuperuserPassword)
	if err != nil {
		return err
	}

	username := cfg.SuperuserUsername
	if username == "" {
		username = "admin"
	}

	user := models.User{
		Username:     username,
		Email:        cfg.SuperuserEmail,
		PasswordHash: hash,
		Role:         cfg.SuperuserRole,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	logger.Info("Superuser created", "email", user.Email, "role", user.Role)
	return nil
}
