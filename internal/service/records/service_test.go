package records

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmwangi/dairyledger/internal/domain/models"
	"github.com/nmwangi/dairyledger/internal/repository/ledger"
	"github.com/nmwangi/dairyledger/internal/repository/memory"
)

func milkRecord() models.MilkRecord {
	return models.MilkRecord{
		Cow:           "Wanjiru",
		Date:          time.Date(2026, time.January, 10, 14, 30, 0, 0, time.UTC),
		TimeOfMilking: models.SlotMorning,
		LitresSell:    8,
		LitresCalves:  2,
	}
}

func TestRecordMilk_NormalizesDate(t *testing.T) {
	store := memory.New()
	svc := NewService(store, nil)

	id, err := svc.RecordMilk(context.Background(), milkRecord())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	saved, err := store.ListMilkRecords(context.Background(), ledger.DateRange{})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.True(t, saved[0].Date.Equal(time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)),
		"clock component must be truncated")
}

func TestRecordMilk_RejectsDuplicateSession(t *testing.T) {
	svc := NewService(memory.New(), nil)
	ctx := context.Background()

	_, err := svc.RecordMilk(ctx, milkRecord())
	require.NoError(t, err)

	// Same cow, date and slot: rejected even when the litres differ.
	dup := milkRecord()
	dup.LitresSell = 99
	_, err = svc.RecordMilk(ctx, dup)
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)

	// A different slot on the same day is a distinct session.
	evening := milkRecord()
	evening.TimeOfMilking = models.SlotEvening
	_, err = svc.RecordMilk(ctx, evening)
	assert.NoError(t, err)
}

func TestRecordMilk_RejectsInvalid(t *testing.T) {
	svc := NewService(memory.New(), nil)

	bad := milkRecord()
	bad.TimeOfMilking = "Midnight"
	_, err := svc.RecordMilk(context.Background(), bad)
	assert.ErrorIs(t, err, models.ErrValidation)

	bad = milkRecord()
	bad.LitresSell = -1
	_, err = svc.RecordMilk(context.Background(), bad)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRecordDailyTotal_OnePerDate(t *testing.T) {
	svc := NewService(memory.New(), nil)
	ctx := context.Background()
	date := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.RecordDailyTotal(ctx, models.DailyMilkTotal{Date: date, Litres: 120})
	require.NoError(t, err)

	_, err = svc.RecordDailyTotal(ctx, models.DailyMilkTotal{Date: date, Litres: 130})
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)
}

func TestRecordFeedReceipt_RejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(memory.New(), nil)

	_, err := svc.RecordFeedReceipt(context.Background(), models.FeedReceipt{
		FeedType: "DairyMeal", Date: time.Now(), Quantity: 0, Cost: 100,
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRecordHealth_ThenPrice(t *testing.T) {
	store := memory.New()
	svc := NewService(store, nil)
	ctx := context.Background()

	id, err := svc.RecordHealth(ctx, models.HealthRecord{
		Cow: "Wanjiru", Date: time.Now(), Disease: "foot rot",
	})
	require.NoError(t, err)

	require.NoError(t, svc.PriceHealthRecord(ctx, id, 650))

	saved, err := store.ListHealthRecords(ctx, ledger.DateRange{})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 650.0, saved[0].CostAmount())
}

func TestPriceHealthRecord_Rejections(t *testing.T) {
	svc := NewService(memory.New(), nil)

	err := svc.PriceHealthRecord(context.Background(), "mem-1", -5)
	assert.ErrorIs(t, err, models.ErrValidation)

	err = svc.PriceHealthRecord(context.Background(), "missing", 100)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRecordEmployee_RejectsInvertedInterval(t *testing.T) {
	svc := NewService(memory.New(), nil)

	end := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.RecordEmployee(context.Background(), models.Employee{
		Name: "Kamau", Salary: 15000,
		StartDate: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDelete(t *testing.T) {
	store := memory.New()
	svc := NewService(store, nil)
	ctx := context.Background()

	id, err := svc.RecordFeedUsage(ctx, models.FeedUsage{
		FeedType: "Hay", Date: time.Now(), Quantity: 5, Category: models.CategoryCalf,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, ledger.CollectionFeedUsage, id))

	err = svc.Delete(ctx, ledger.CollectionFeedUsage, id)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Derived collections are not editable through this path.
	err = svc.Delete(ctx, ledger.CollectionDailyReports, id)
	assert.ErrorIs(t, err, models.ErrValidation)
}
