package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nmwangi/dairyledger/internal/domain/models"
	"github.com/nmwangi/dairyledger/internal/service/records"
)

// RecordsHandler exposes the event-ingestion endpoints.
type RecordsHandler struct {
	svc    *records.Service
	logger *zap.Logger
}

// NewRecordsHandler constructs the ingestion handler adapter.
func NewRecordsHandler(svc *records.Service, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{svc: svc, logger: logger}
}

type milkRequest struct {
	Cow           string  `json:"cow"`
	Date          string  `json:"date"`
	TimeOfMilking string  `json:"time_of_milking"`
	LitresSell    float64 `json:"litres_sell"`
	LitresCalves  float64 `json:"litres_calves"`
}

// RecordMilk ingests one milking-session record.
func (h *RecordsHandler) RecordMilk(c *gin.Context) {
	var req milkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	id, err := h.svc.RecordMilk(c.Request.Context(), models.MilkRecord{
		Cow:           req.Cow,
		Date:          date,
		TimeOfMilking: models.TimeSlot(req.TimeOfMilking),
		LitresSell:    req.LitresSell,
		LitresCalves:  req.LitresCalves,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type dailyTotalRequest struct {
	Date   string  `json:"date"`
	Litres float64 `json:"litres"`
}

// RecordDailyTotal ingests the authoritative farm-wide total for a date.
func (h *RecordsHandler) RecordDailyTotal(c *gin.Context) {
	var req dailyTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	id, err := h.svc.RecordDailyTotal(c.Request.Context(), models.DailyMilkTotal{Date: date, Litres: req.Litres})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type feedReceiptRequest struct {
	FeedType string  `json:"feed_type"`
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Cost     float64 `json:"cost"`
}

// RecordFeedReceipt ingests a purchase batch.
func (h *RecordsHandler) RecordFeedReceipt(c *gin.Context) {
	var req feedReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	id, err := h.svc.RecordFeedReceipt(c.Request.Context(), models.FeedReceipt{
		FeedType: req.FeedType,
		Date:     date,
		Quantity: req.Quantity,
		Cost:     req.Cost,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type feedUsageRequest struct {
	FeedType string  `json:"feed_type"`
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Category string  `json:"category"`
	Note     string  `json:"note"`
}

// RecordFeedUsage ingests a consumption event.
func (h *RecordsHandler) RecordFeedUsage(c *gin.Context) {
	var req feedUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	id, err := h.svc.RecordFeedUsage(c.Request.Context(), models.FeedUsage{
		FeedType: req.FeedType,
		Date:     date,
		Quantity: req.Quantity,
		Category: models.UsageCategory(req.Category),
		Note:     req.Note,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type healthRequest struct {
	Cow      string   `json:"cow"`
	Date     string   `json:"date"`
	Disease  string   `json:"disease"`
	Medicine string   `json:"medicine"`
	Cost     *float64 `json:"cost"`
}

// RecordHealth ingests a treatment event; cost may be set later.
func (h *RecordsHandler) RecordHealth(c *gin.Context) {
	var req healthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	id, err := h.svc.RecordHealth(c.Request.Context(), models.HealthRecord{
		Cow:      req.Cow,
		Date:     date,
		Disease:  req.Disease,
		Medicine: req.Medicine,
		Cost:     req.Cost,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type priceHealthRequest struct {
	Cost float64 `json:"cost"`
}

// PriceHealth sets the cost of a previously logged treatment.
func (h *RecordsHandler) PriceHealth(c *gin.Context) {
	var req priceHealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.PriceHealthRecord(c.Request.Context(), c.Param("id"), req.Cost); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type aiRequest struct {
	Cow  string  `json:"cow"`
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
}

// RecordAI ingests an insemination expense.
func (h *RecordsHandler) RecordAI(c *gin.Context) {
	var req aiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	id, err := h.svc.RecordAI(c.Request.Context(), models.AIRecord{Cow: req.Cow, Date: date, Cost: req.Cost})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type employeeRequest struct {
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Salary    float64 `json:"salary"`
	Phone     string  `json:"phone"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Status    string  `json:"status"`
}

// RecordEmployee ingests an employment interval.
func (h *RecordsHandler) RecordEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var end *time.Time
	if req.EndDate != "" {
		parsed, err := parseDate(req.EndDate)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		end = &parsed
	}

	id, err := h.svc.RecordEmployee(c.Request.Context(), models.Employee{
		Name:      req.Name,
		Role:      req.Role,
		Salary:    req.Salary,
		Phone:     req.Phone,
		StartDate: start,
		EndDate:   end,
		Status:    req.Status,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type cowRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Gender string `json:"gender"`
}

// RecordCow ingests a roster entry.
func (h *RecordsHandler) RecordCow(c *gin.Context) {
	var req cowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.svc.RecordCow(c.Request.Context(), models.Cow{
		Name:   req.Name,
		Status: models.CowStatus(req.Status),
		Gender: req.Gender,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Delete removes one source event.
func (h *RecordsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("collection"), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
