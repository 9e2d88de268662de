package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nmwangi/dairyledger/internal/service/inventory"
)

// InventoryHandler exposes the feed-balance endpoints.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the inventory handler adapter.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

// Snapshot returns the running balance per feed type, optionally filtered by
// the feed_type query parameter.
func (h *InventoryHandler) Snapshot(c *gin.Context) {
	snapshots, err := h.svc.Snapshot(c.Request.Context(), c.Query("feed_type"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": snapshots})
}

// FeedTypes returns the feed types that still have stock.
func (h *InventoryHandler) FeedTypes(c *gin.Context) {
	feedTypes, err := h.svc.AvailableFeedTypes(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if feedTypes == nil {
		feedTypes = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"feed_types": feedTypes})
}
