package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipp/backend/internal/apperrors"
)

// recipeID reads the :id path parameter.
func recipeID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("id", "Invalid recipe id")
	}
	return uint(id), nil
}

// amount reads the amount query parameter. Missing, malformed and
// non-positive values fall back to def.
func amount(c *gin.Context, def int) int {
	raw := strings.TrimSpace(c.Query("amount"))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
