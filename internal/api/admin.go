package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipp/backend/internal/service"
)

// AdminHandler exposes maintenance operations behind admin tokens.
type AdminHandler struct {
	seeds    service.ISeedService
	seedFile string
}

func NewAdminHandler(seeds service.ISeedService, seedFile string) *AdminHandler {
	return &AdminHandler{
		seeds:    seeds,
		seedFile: seedFile,
	}
}

// RegisterRoutes mounts the admin routes on a group that already enforces
// authentication.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sync", h.SyncSeed)
}

// SyncSeed reconciles the configured seed file into the store.
func (h *AdminHandler) SyncSeed(c *gin.Context) {
	result, err := h.seeds.SyncFile(c.Request.Context(), h.seedFile)
	if err != nil {
		_ = c.Error(err)
		return
	}

	log.Printf("Admin seed sync from %s: %d inserted, %d updated, %d unchanged",
		h.seedFile, result.Inserted, result.Updated, result.Unchanged)
	c.JSON(http.StatusOK, result)
}
