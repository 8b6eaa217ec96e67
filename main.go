// @title           SmartRent API
// @version         1.0
// @description     Property management backend for landlords and tenants with lease lifecycle tracking

// @contact.name   API Support
// @contact.email  support@smartrent.example.com

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"smartrent-http-service/internal/app/routes"
	"smartrent-http-service/internal/domain/models"
	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/infrastructure/config"
	"smartrent-http-service/internal/infrastructure/database"
	"smartrent-http-service/pkg/logger"
)

func main() {
	if err := logger.SetupLogger(); err != nil {
		fmt.Printf("failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		logger.Warning("no .env file loaded: %v", err)
	} else {
		logger.Info("loaded .env file")
	}

	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		logger.Error("database connection failed: %v", err)
		os.Exit(1)
	}
	db := pool.GetDB()

	if err := autoMigrate(db); err != nil {
		logger.Error("database migration failed: %v", err)
		os.Exit(1)
	}

	ensureAdminExists(db, cfg)

	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	r, serviceContainer := routes.SetupRouter(db, cfg, redisClient)

	leaseService := serviceContainer.GetService("lease").(services.InterfaceLeaseService)
	sweeper := services.NewLeaseSweeper(leaseService, time.Duration(cfg.SweepIntervalHours)*time.Hour)
	sweeper.Start()
	defer sweeper.Stop()

	port := cfg.ServerPort
	if port == "" {
		port = "8080"
	}

	logger.Info("server listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Lease{},
		&models.MaintenanceRequest{},
		&models.Notification{},
	)
}

// ensureAdminExists seeds a default admin account on first boot
func ensureAdminExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	email := cfg.DefaultAdminEmail
	if email == "" {
		email = "admin@smartrent.local"
	}
	password := cfg.DefaultAdminPassword
	if password == "" {
		password = "admin123"
	}

	admin := models.User{
		Email:     email,
		Password:  password,
		FirstName: "System",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		logger.Error("failed to seed default admin: %v", err)
		return
	}

	logger.Info("created default admin account (%s)", email)
}
