package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nmwangi/dairyledger/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(recordsH *handlers.RecordsHandler, reportsH *handlers.ReportsHandler, inventoryH *handlers.InventoryHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")

	inv := api.Group("/inventory")
	inv.GET("", inventoryH.Snapshot)
	inv.GET("/feed-types", inventoryH.FeedTypes)

	reports := api.Group("/reports")
	reports.GET("/allocations", reportsH.Allocations)
	reports.GET("/rollups", reportsH.Rollups)
	reports.GET("/cow-profit", reportsH.CowProfit)
	reports.POST("/export", reportsH.Export)

	rec := api.Group("/records")
	rec.POST("/milk", recordsH.RecordMilk)
	rec.POST("/daily-total", recordsH.RecordDailyTotal)
	rec.POST("/feed-receipts", recordsH.RecordFeedReceipt)
	rec.POST("/feed-usage", recordsH.RecordFeedUsage)
	rec.POST("/health", recordsH.RecordHealth)
	rec.PUT("/health/:id/cost", recordsH.PriceHealth)
	rec.POST("/ai", recordsH.RecordAI)
	rec.POST("/employees", recordsH.RecordEmployee)
	rec.POST("/cows", recordsH.RecordCow)
	rec.DELETE("/:collection/:id", recordsH.Delete)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
