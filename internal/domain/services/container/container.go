package container

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"smartrent-http-service/internal/domain/services"
	"smartrent-http-service/internal/infrastructure/config"
	"smartrent-http-service/pkg/logger"
)

// ServiceContainer wires all services together and hands them to the
// controllers. It is built once at startup; there is no other shared
// mutable state between requests.
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// Credential services
	jwtService        services.InterfaceJWTService
	federatedVerifier services.InterfaceFederatedVerifier
	verifierChain     *services.VerifierChain

	// Cache
	redisService services.InterfaceRedisService

	// Business services
	userService         services.InterfaceUserService
	propertyService     services.InterfacePropertyService
	leaseService        services.InterfaceLeaseService
	maintenanceService  services.InterfaceMaintenanceService
	notificationService services.InterfaceNotificationService
	dashboardService    services.InterfaceDashboardService
}

// NewServiceContainer builds the container. redisClient may be nil; the
// container also degrades to cache-less operation when the ping fails.
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}

	c := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}

	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warning("redis ping failed: %v, running without cache", err)
		} else {
			c.redisService = &services.RedisService{Client: redisClient, Ctx: context.Background()}
		}
	}

	c.jwtService = services.NewJWTService(cfg)
	c.federatedVerifier = services.NewFederatedVerifier(cfg)

	c.notificationService = services.NewNotificationService(db)
	c.userService = services.NewUserService(db, cfg, c.redisService)
	c.propertyService = services.NewPropertyService(db, cfg)
	c.leaseService = services.NewLeaseService(db, cfg, c.notificationService)
	c.maintenanceService = services.NewMaintenanceService(db, cfg, c.notificationService)
	c.dashboardService = services.NewDashboardService(db, c.redisService)

	// The gateway's verifier order is fixed: federated first, local second
	c.verifierChain = services.NewVerifierChain(
		services.NewFederatedCredential(c.federatedVerifier, c.userService),
		services.NewLocalCredential(c.jwtService, c.userService),
	)

	return c
}

// GetDB returns the database handle
func (c *ServiceContainer) GetDB() *gorm.DB {
	return c.db
}

// GetConfig returns the application configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetVerifierChain returns the authentication gateway's credential chain
func (c *ServiceContainer) GetVerifierChain() *services.VerifierChain {
	return c.verifierChain
}

// GetService returns a named service from the container
func (c *ServiceContainer) GetService(name string) interface{} {
	switch name {
	case "jwt":
		return c.jwtService
	case "federated":
		return c.federatedVerifier
	case "redis":
		return c.redisService
	case "user":
		return c.userService
	case "property":
		return c.propertyService
	case "lease":
		return c.leaseService
	case "maintenance":
		return c.maintenanceService
	case "notification":
		return c.notificationService
	case "dashboard":
		return c.dashboardService
	default:
		return nil
	}
}
