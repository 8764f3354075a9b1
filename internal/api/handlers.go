package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipp/backend/internal/database"
	"github.com/pageza/recipp/backend/internal/types"
)

// Version is reported by the info route.
const Version = "v1.0.0"

// Info describes the API.
func Info(c *gin.Context) {
	c.JSON(http.StatusOK, types.InfoResponse{
		Name:    "Recipp API",
		Version: Version,
		Message: "Recipe catalog API. Browse /api/recipes or search with /api/complexSearch.",
	})
}

// HealthCheck returns a handler reporting whether the database answers.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, types.HealthResponse{
				Status:   "unhealthy",
				Database: "unreachable",
				Error:    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.HealthResponse{
			Status:   "healthy",
			Database: "ok",
		})
	}
}
