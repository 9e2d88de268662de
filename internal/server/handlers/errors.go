package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nmwangi/dairyledger/internal/domain/models"
)

// writeError maps the domain error taxonomy onto HTTP statuses. A store
// outage surfaces as 503 so callers can distinguish it from an empty result.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrDuplicateEntry):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrStoreUnavailable):
		logger.Error("ledger store unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ledger store unavailable"})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", models.ErrValidation, value)
	}
	return t, nil
}

// parseWindow reads the mandatory start/end query parameters.
func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	start, err := parseDate(c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end precedes start", models.ErrValidation)
	}
	return start, end, nil
}
