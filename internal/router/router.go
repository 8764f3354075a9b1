package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/pageza/recipp/backend/config"
	"github.com/pageza/recipp/backend/internal/api"
	"github.com/pageza/recipp/backend/internal/apperrors"
	"github.com/pageza/recipp/backend/internal/middleware"
)

// Dependencies are the collaborators the routes are built from.
type Dependencies struct {
	DB      *gorm.DB
	Recipes *api.RecipeHandler
	Search  *api.SearchHandler
	Limiter *middleware.RateLimiter

	// Admin and Tokens are both nil when admin routes are disabled.
	Admin  *api.AdminHandler
	Tokens middleware.TokenValidator
}

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	router := gin.New()

	// Logger and metrics sit outside the error handler so they observe the
	// final status code.
	router.Use(
		middleware.RequestID(),
		gin.Logger(),
		middleware.Metrics(),
		middleware.ErrorHandler(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CORSOrigins),
	)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apperrors.Response{Message: "Not found"})
	})

	router.GET("/health", api.HealthCheck(deps.DB))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api")
	if deps.Limiter != nil {
		v1.Use(deps.Limiter.RateLimitMiddleware())
	}

	v1.GET("/", api.Info)
	deps.Recipes.RegisterRoutes(v1)
	deps.Search.RegisterRoutes(v1)

	if deps.Admin != nil && deps.Tokens != nil {
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(deps.Tokens))
		deps.Admin.RegisterRoutes(admin)
	}

	return router
}
