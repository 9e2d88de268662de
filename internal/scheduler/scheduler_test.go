package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmwangi/dairyledger/internal/config"
	"github.com/nmwangi/dairyledger/internal/domain/models"
	"github.com/nmwangi/dairyledger/internal/repository/memory"
	"github.com/nmwangi/dairyledger/internal/service/costing"
	"github.com/nmwangi/dairyledger/internal/service/reporting"
	"github.com/nmwangi/dairyledger/pkg/clients/notify"
)

type captureNotifier struct {
	messages []notify.ReportMessage
}

func (c *captureNotifier) SendReport(_ context.Context, msg notify.ReportMessage) error {
	c.messages = append(c.messages, msg)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Reporting: config.ReportingConfig{
			CronSchedule: "0 20 * * *",
			Timezone:     "Africa/Nairobi",
		},
	}
}

func TestRunDailyReport_SavesAndNotifies(t *testing.T) {
	store := memory.New()
	today := models.Day(time.Now().UTC())
	_, err := store.InsertMilkRecord(context.Background(), models.MilkRecord{
		Cow: "Wanjiru", Date: today, TimeOfMilking: models.SlotMorning, LitresSell: 10,
	})
	require.NoError(t, err)

	reportingSvc := reporting.NewService(store, costing.NewService(store, nil), 43, nil)
	notifier := &captureNotifier{}
	s := NewScheduler(testConfig(), reportingSvc, store, notifier, nil)

	s.runDailyReport()

	reports := store.DailyReports()
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Date.Equal(today))
	assert.InDelta(t, 430.0, reports[0].Revenue, 1e-9)

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, today.Format(models.DateLayout), notifier.messages[0].Date)
	assert.InDelta(t, 430.0, notifier.messages[0].Revenue, 1e-9)
	assert.Contains(t, notifier.messages[0].Summary, "Daily report")
}

func TestRunDailyReport_NoNotifierStillLogsReport(t *testing.T) {
	store := memory.New()
	reportingSvc := reporting.NewService(store, costing.NewService(store, nil), 43, nil)
	s := NewScheduler(testConfig(), reportingSvc, store, nil, nil)

	s.runDailyReport()

	assert.Len(t, store.DailyReports(), 1)
}

func TestNewScheduler_UnknownTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.Timezone = "Mars/Olympus"

	// Construction must not fail; the scheduler falls back to local time.
	s := NewScheduler(cfg, nil, nil, nil, nil)
	require.NotNil(t, s)
}
