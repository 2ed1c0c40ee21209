package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"relief/internal/core/container"
	"relief/internal/middleware"
	"relief/pkg/security"
)

// NewRouter builds the engine with the shared middleware chain and every
// route registered.
func NewRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(c.Logger),
		middleware.RecoveryMiddleware(c.Logger),
		cors.New(cors.Config{
			AllowOrigins:     c.Config.Server.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	RegisterUtilityRoutes(router, c)
	RegisterProtectedRoutes(router, c)

	return router
}

func RegisterUtilityRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/health", c.HealthChecker.Handler())
}

func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(
		middleware.TimeoutMiddleware(c.Config.Server.RequestTimeout),
		security.JWTMiddleware([]byte(c.Config.JWT.Secret)),
	)

	c.RequestHandler.RegisterRoutes(protectedRoutes)
	c.DistributionHandler.RegisterRoutes(protectedRoutes)
	c.SupplyHandler.RegisterRoutes(protectedRoutes)
	c.CampHandler.RegisterRoutes(protectedRoutes)
	c.AuditLogHandler.RegisterRoutes(protectedRoutes)
}
