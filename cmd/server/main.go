package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/nmwangi/dairyledger/internal/config"
	"github.com/nmwangi/dairyledger/internal/repository/mongodb"
	"github.com/nmwangi/dairyledger/internal/repository/sheets"
	"github.com/nmwangi/dairyledger/internal/scheduler"
	"github.com/nmwangi/dairyledger/internal/server/handlers"
	"github.com/nmwangi/dairyledger/internal/server/router"
	costingsvc "github.com/nmwangi/dairyledger/internal/service/costing"
	inventorysvc "github.com/nmwangi/dairyledger/internal/service/inventory"
	profitsvc "github.com/nmwangi/dairyledger/internal/service/profit"
	recordssvc "github.com/nmwangi/dairyledger/internal/service/records"
	reportingsvc "github.com/nmwangi/dairyledger/internal/service/reporting"
	"github.com/nmwangi/dairyledger/pkg/clients/notify"
	"github.com/nmwangi/dairyledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	costingSvc := costingsvc.NewService(store, baseLogger.Named("svc.costing"))
	inventorySvc := inventorysvc.NewService(store, baseLogger.Named("svc.inventory"))
	reportingSvc := reportingsvc.NewService(store, costingSvc, cfg.Pricing.MilkPricePerLitre, baseLogger.Named("svc.reporting"))
	profitSvc := profitsvc.NewService(store, costingSvc, cfg.Pricing.MilkPricePerLitre, baseLogger.Named("svc.profit"))
	recordsSvc := recordssvc.NewService(store, baseLogger.Named("svc.records"))

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheet export enabled")
	} else {
		baseLogger.Warn("sheet export not configured, /api/reports/export disabled")
	}

	var notifier notify.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Notify.WebhookURL)
		baseLogger.Info("report notifications enabled")
	} else {
		baseLogger.Warn("notification webhook missing, scheduled reports will only be stored")
	}

	recordsHandler := handlers.NewRecordsHandler(recordsSvc, baseLogger.Named("handlers.records"))
	reportsHandler := handlers.NewReportsHandler(reportingSvc, profitSvc, costingSvc, exporter, baseLogger.Named("handlers.reports"))
	inventoryHandler := handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory"))
	engine := router.New(recordsHandler, reportsHandler, inventoryHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, store, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
