package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nmwangi/dairyledger/internal/domain/models"
	"github.com/nmwangi/dairyledger/internal/repository/sheets"
	"github.com/nmwangi/dairyledger/internal/service/costing"
	"github.com/nmwangi/dairyledger/internal/service/profit"
	"github.com/nmwangi/dairyledger/internal/service/reporting"
)

// ReportsHandler exposes the derived-computation endpoints. Every response is
// a fresh recomputation over the event log for the requested window.
type ReportsHandler struct {
	reporting *reporting.Service
	profit    *profit.Service
	costing   *costing.Service
	exporter  sheets.Exporter
	logger    *zap.Logger
}

// NewReportsHandler constructs the reporting handler adapter. exporter may be
// nil when no sheet is configured.
func NewReportsHandler(reportingSvc *reporting.Service, profitSvc *profit.Service, costingSvc *costing.Service, exporter sheets.Exporter, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{
		reporting: reportingSvc,
		profit:    profitSvc,
		costing:   costingSvc,
		exporter:  exporter,
		logger:    logger,
	}
}

// Allocations returns the FIFO cost allocation for every usage in the window.
func (h *ReportsHandler) Allocations(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	allocations, err := h.costing.Allocate(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allocations": allocations})
}

// Rollups returns the zero-filled period series at the requested granularity.
func (h *ReportsHandler) Rollups(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	granularity, err := models.ParseGranularity(c.Query("granularity"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	rollups, err := h.reporting.Rollups(c.Request.Context(), start, end, granularity)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rollups": rollups})
}

// CowProfit returns the per-cow profit ranking for the window. top / bottom
// query parameters trim the ranking.
func (h *ReportsHandler) CowProfit(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	ranked, err := h.profit.CowProfits(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if v := c.Query("top"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			ranked = profit.Top(ranked, n)
		}
	} else if v := c.Query("bottom"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			ranked = profit.Bottom(ranked, n)
		}
	}
	c.JSON(http.StatusOK, gin.H{"cows": ranked})
}

// Export appends the requested rollup series to the configured Google Sheet.
func (h *ReportsHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sheet export is not configured"})
		return
	}

	start, end, err := parseWindow(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	granularity, err := models.ParseGranularity(c.Query("granularity"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	rollups, err := h.reporting.Rollups(c.Request.Context(), start, end, granularity)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.exporter.AppendRollups(c.Request.Context(), rollups); err != nil {
		h.logger.Error("sheet export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to export rollups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exported": len(rollups)})
}
