package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nmwangi/dairyledger/internal/config"
	"github.com/nmwangi/dairyledger/internal/domain/models"
	"github.com/nmwangi/dairyledger/internal/repository/ledger"
	"github.com/nmwangi/dairyledger/internal/service/reporting"
	"github.com/nmwangi/dairyledger/pkg/clients/notify"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	store        ledger.Store
	notifier     notify.Client
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. notifier may be nil when no
// webhook is configured; the report log is still written.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, store ledger.Store, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour,
	// dom, month, dow). Jobs fire in the farm's timezone so "20:00" means
	// evening on the farm, not UTC.
	opts := []cron.Option{}
	if loc, err := time.LoadLocation(cfg.Reporting.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("unknown timezone, scheduler falls back to local time",
			zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}
	c := cron.New(opts...)

	return &Scheduler{
		cron:         c,
		reportingSvc: reportingSvc,
		store:        store,
		notifier:     notifier,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runDailyReport)
	if err != nil {
		s.logger.Error("failed to schedule daily report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailyReport() {
	s.logger.Info("generating daily report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// The job runs after the evening milking, so it reports on today.
	report, err := s.reportingSvc.DailyReport(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("failed to generate daily report", zap.Error(err))
		return
	}

	if err := s.store.SaveDailyReport(ctx, report); err != nil {
		s.logger.Error("failed to save daily report", zap.Error(err))
		return
	}

	if s.notifier == nil {
		return
	}

	msg := notify.ReportMessage{
		Date: report.Date.Format(models.DateLayout),
		Summary: fmt.Sprintf("Daily report %s: %.1f L milk, revenue %.0f, cost %.0f, profit %.0f.",
			report.Date.Format(models.DateLayout), report.MilkVolume, report.Revenue, report.TotalCost, report.Profit),
		Revenue: report.Revenue,
		Cost:    report.TotalCost,
		Profit:  report.Profit,
	}

	if err := s.notifier.SendReport(ctx, msg); err != nil {
		s.logger.Error("failed to send daily report", zap.Error(err))
	} else {
		s.logger.Info("daily report sent successfully")
	}
}
