package costing

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

func windowAll() ledger.DateRange { return ledger.DateRange{} }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedReceipt(t *testing.T, store *memory.Store, feedType string, date time.Time, qty, cost float64) {
	t.Helper()
	_, err := store.InsertFeedReceipt(context.Background(), models.FeedReceipt{
		FeedType: feedType, Date: date, Quantity: qty, Cost: cost,
	})
	require.NoError(t, err)
}

func seedUsage(t *testing.T, store *memory.Store, feedType string, date time.Time, qty float64) {
	t.Helper()
	_, err := store.InsertFeedUsage(context.Background(), models.FeedUsage{
		FeedType: feedType, Date: date, Quantity: qty, Category: models.CategoryGrownCow,
	})
	require.NoError(t, err)
}

func TestAllocate_ConsumesOldestBatchFirst(t *testing.T) {
	store := memory.New()
	seedReceipt(t, store, "DairyMeal", day(2026, time.January, 1), 10, 100) // 10/unit
	seedReceipt(t, store, "DairyMeal", day(2026, time.January, 3), 10, 300) // 30/unit
	seedUsage(t, store, "DairyMeal", day(2026, time.January, 5), 15)

	svc := NewService(store, nil)
	allocations, err := svc.Allocate(context.Background(), day(2026, time.January, 1), day(2026, time.January, 31))
	require.NoError(t, err)
	require.Len(t, allocations, 1)

	// 10 units @ 10 from the first batch, then 5 units @ 30 from the second.
	a := allocations[0]
	assert.Equal(t, models.MethodFIFO, a.Method)
	assert.Equal(t, 15.0, a.Quantity)
	assert.InDelta(t, 250.0, a.Cost, 1e-9)
}

func TestAllocate_BatchStateSharedAcrossUsages(t *testing.T) {
	store := memory.New()
	seedReceipt(t, store, "DairyMeal", day(2026, time.January, 1), 100, 3000)  // 30/kg
	seedReceipt(t, store, "DairyMeal", day(2026, time.January, 10), 100, 3500) // 35/kg
	seedUsage(t, store, "DairyMeal", day(2026, time.January, 5), 60)
	seedUsage(t, store, "DairyMeal", day(2026, time.January, 15), 80)

	svc := NewService(store, nil)
	allocations, err := svc.Allocate(context.Background(), day(2026, time.January, 1), day(2026, time.January, 31))
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	// Jan 5 usage draws 60kg from batch 1, leaving it with 40kg.
	assert.InDelta(t, 1800.0, allocations[0].Cost, 1e-9)
	assert.Equal(t, models.MethodFIFO, allocations[0].Method)

	// Jan 15 usage must see batch 1 reduced: 40kg @ 30 + 40kg @ 35.
	assert.InDelta(t, 2600.0, allocations[1].Cost, 1e-9)
	assert.Equal(t, models.MethodFIFO, allocations[1].Method)
}

func TestAllocate_Conservation(t *testing.T) {
	store := memory.New()
	seedReceipt(t, store, "Hay", day(2026, time.March, 1), 50, 500)
	seedUsage(t, store, "Hay", day(2026, time.March, 2), 20)
	seedUsage(t, store, "Hay", day(2026, time.March, 3), 45) // exceeds remaining stock

	svc := NewService(store, nil)
	allocations, err := svc.Allocate(context.Background(), day(2026, time.March, 1), day(2026, time.March, 31))
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	usages, err := store.ListFeedUsage(context.Background(), windowAll())
	require.NoError(t, err)
	for i, u := range usages {
		assert.Equal(t, u.Quantity, allocations[i].Quantity, "allocation must cover the full usage quantity")
	}

	// The 15kg shortfall of the second usage is costed at the latest rate.
	assert.InDelta(t, 20*10.0, allocations[0].Cost, 1e-9)
	assert.InDelta(t, 30*10.0+15*10.0, allocations[1].Cost, 1e-9)
}

func TestAllocate_FallbackLatestWhenNoEligibleBatch(t *testing.T) {
	store := memory.New()
	// The only receipt arrives after the usage date.
	seedReceipt(t, store, "Silage", day(2026, time.February, 20), 100, 2000) // 20/kg
	seedUsage(t, store, "Silage", day(2026, time.February, 5), 10)

	svc := NewService(store, nil)
	allocations, err := svc.Allocate(context.Background(), day(2026, time.February, 1), day(2026, time.February, 28))
	require.NoError(t, err)
	require.Len(t, allocations, 1)

	assert.Equal(t, models.MethodFallbackLatest, allocations[0].Method)
	assert.InDelta(t, 200.0, allocations[0].Cost, 1e-9)
}

func TestAllocate_ZeroCostWhenFeedTypeHasNoBatches(t *testing.T) {
	store := memory.New()
	seedUsage(t, store, "Unknown", day(2026, time.April, 2), 25)

	svc := NewService(store, nil)
	allocations, err := svc.Allocate(context.Background(), day(2026, time.April, 1), day(2026, time.April, 30))
	require.NoError(t, err)
	require.Len(t, allocations, 1)

	assert.Equal(t, models.MethodFallbackLatest, allocations[0].Method)
	assert.Zero(t, allocations[0].Cost)
	assert.Equal(t, 25.0, allocations[0].Quantity)
}

func TestAllocate_WindowBoundsEvents(t *testing.T) {
	store := memory.New()
	seedReceipt(t, store, "Hay", day(2026, time.January, 1), 100, 1000)
	seedUsage(t, store, "Hay", day(2026, time.January, 2), 10)
	seedUsage(t, store, "Hay", day(2026, time.February, 2), 10)

	svc := NewService(store, nil)
	allocations, err := svc.Allocate(context.Background(), day(2026, time.February, 1), day(2026, time.February, 28))
	require.NoError(t, err)

	// Only the February usage is inside the window; the January receipt is
	// outside it too, so the usage falls back to zero cost.
	require.Len(t, allocations, 1)
	assert.True(t, allocations[0].Date.Equal(day(2026, time.February, 2)))
}

func TestAllocate_Cancelled(t *testing.T) {
	store := memory.New()
	seedUsage(t, store, "Hay", day(2026, time.January, 2), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(store, nil)
	_, err := svc.Allocate(ctx, day(2026, time.January, 1), day(2026, time.January, 31))
	assert.ErrorIs(t, err, context.Canceled)
}
