package routes

import (
	"time"

	_ "smartrent-http-service/docs"
	"smartrent-http-service/internal/app/controllers"
	"smartrent-http-service/internal/app/middleware"
	"smartrent-http-service/internal/domain/models"
	"smartrent-http-service/internal/domain/services/container"
	"smartrent-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter builds the configured engine and the service container behind
// it. The container is returned so the caller can wire background workers
// against the same services.
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) (*gin.Engine, *container.ServiceContainer) {
	r := gin.Default()

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})

	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	middleware.InitAuthMiddleware(serviceContainer)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r, serviceContainer
}

func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	api := r.Group("/api")
	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes wires the endpoints reachable without a session
// token. Federated registration is the one exception to the credential
// requirement: it runs behind identity-only verification, which proves the
// provider token but does not require a local account yet.
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 10 requests per second per IP, bursts of 20
	api.Use(middleware.IPRateLimiter(10, 20))

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	healthGroup := api.Group("/health")
	healthGroup.GET("/status", controllers.HandleHealthFunc(container))

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.PathRateLimiter(5, 10))
	authGroup.POST("/register", controllers.HandleAuthFunc(container, "register"))
	authGroup.POST("/login", controllers.HandleAuthFunc(container, "login"))
	authGroup.POST("/federated/register",
		middleware.AuthenticateIdentity(),
		controllers.HandleAuthFunc(container, "federatedRegister"))
}

func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	auth := api.Group("/")
	auth.Use(middleware.Authentication())

	// 30 requests per second per IP, bursts of 50
	auth.Use(middleware.IPRateLimiter(30, 50))

	auth.GET("/auth/me", controllers.HandleAuthFunc(container, "me"))

	userGroup := auth.Group("/users")
	userGroup.PATCH("/me", controllers.HandleUserFunc(container, "updateMe"))
	userGroup.GET("/tenants",
		middleware.RequireRole(models.RoleLandlord),
		middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}),
		controllers.HandleUserFunc(container, "listTenants"))
	userGroup.POST("/tenants",
		middleware.RequireRole(models.RoleLandlord),
		controllers.HandleUserFunc(container, "createTenant"))

	propertyGroup := auth.Group("/properties")
	propertyGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandlePropertyFunc(container, "list"))
	propertyGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandlePropertyFunc(container, "get"))
	propertyGroup.POST("", middleware.RequireRole(models.RoleLandlord), controllers.HandlePropertyFunc(container, "create"))
	propertyGroup.PATCH("/:id", middleware.RequireRole(models.RoleLandlord), controllers.HandlePropertyFunc(container, "update"))
	propertyGroup.DELETE("/:id", middleware.RequireRole(models.RoleLandlord), controllers.HandlePropertyFunc(container, "delete"))

	leaseGroup := auth.Group("/leases")
	leaseGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleLeaseFunc(container, "list"))
	leaseGroup.GET("/:id", controllers.HandleLeaseFunc(container, "get"))
	leaseGroup.POST("", middleware.RequireRole(models.RoleLandlord), controllers.HandleLeaseFunc(container, "create"))
	leaseGroup.PATCH("/:id/status", controllers.HandleLeaseFunc(container, "updateStatus"))

	maintenanceGroup := auth.Group("/maintenance")
	maintenanceGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleMaintenanceFunc(container, "list"))
	maintenanceGroup.POST("", middleware.RequireRole(models.RoleTenant), controllers.HandleMaintenanceFunc(container, "create"))
	maintenanceGroup.PATCH("/:id/status", controllers.HandleMaintenanceFunc(container, "updateStatus"))

	notificationGroup := auth.Group("/notifications")
	notificationGroup.GET("", controllers.HandleNotificationFunc(container, "list"))
	notificationGroup.PATCH("/:id/read", controllers.HandleNotificationFunc(container, "markRead"))

	dashboardGroup := auth.Group("/dashboard")
	dashboardGroup.GET("/stats", controllers.HandleDashboardFunc(container, "stats"))
}
