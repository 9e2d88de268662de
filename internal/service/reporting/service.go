package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/nmwangi/dairyledger/internal/domain/models"
	"github.com/nmwangi/dairyledger/internal/repository/ledger"
)

// Allocator supplies FIFO cost allocations for a window.
type Allocator interface {
	Allocate(ctx context.Context, start, end time.Time) ([]models.Allocation, error)
}

// Service buckets all cost and revenue flows into a zero-filled daily series
// and resamples it to the requested granularity. All fields are additive flow
// quantities, so resampling always sums and never averages.
type Service struct {
	store     ledger.Store
	allocator Allocator
	unitPrice float64
	logger    *zap.Logger
}

// NewService wires a new reporting service instance. unitPrice is the fixed
// price applied per litre of sale volume.
func NewService(store ledger.Store, allocator Allocator, unitPrice float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, allocator: allocator, unitPrice: unitPrice, logger: logger}
}

// Rollups computes the ascending sequence of period rollups for [start, end]
// inclusive. The result is fully computed before it is returned; a failed or
// cancelled computation yields no partial series.
func (s *Service) Rollups(ctx context.Context, start, end time.Time, granularity models.Granularity) ([]models.PeriodRollup, error) {
	start, end = models.Day(start), models.Day(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s precedes start %s", models.ErrValidation,
			end.Format(models.DateLayout), start.Format(models.DateLayout))
	}

	daily, err := s.dailySeries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if granularity == models.GranularityDaily {
		return daily, nil
	}
	return resample(daily, granularity), nil
}

// dailySeries builds the zero-filled daily calendar with every flow summed
// onto its date.
func (s *Service) dailySeries(ctx context.Context, start, end time.Time) ([]models.PeriodRollup, error) {
	window := ledger.Window(start, end)

	milk, err := s.store.ListMilkRecords(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("load milk records: %w", err)
	}
	totals, err := s.store.ListDailyMilkTotals(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("load daily milk totals: %w", err)
	}
	health, err := s.store.ListHealthRecords(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("load health records: %w", err)
	}
	ai, err := s.store.ListAIRecords(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("load ai records: %w", err)
	}
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	allocations, err := s.allocator.Allocate(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("allocate feed costs: %w", err)
	}

	milkByDay := make(map[time.Time]float64)
	for _, m := range milk {
		milkByDay[models.Day(m.Date)] += m.LitresSell
	}
	// The authoritative total, when present, overrides the per-cow sum for
	// farm-wide volume. Per-cow attribution never reads this map.
	totalByDay := make(map[time.Time]float64)
	for _, t := range totals {
		totalByDay[models.Day(t.Date)] = t.Litres
	}
	feedCostByDay := make(map[time.Time]float64)
	for _, a := range allocations {
		feedCostByDay[models.Day(a.Date)] += a.Cost
	}
	healthByDay := make(map[time.Time]float64)
	for _, h := range health {
		healthByDay[models.Day(h.Date)] += h.CostAmount()
	}
	aiByDay := make(map[time.Time]float64)
	for _, a := range ai {
		aiByDay[models.Day(a.Date)] += a.Cost
	}

	var out []models.PeriodRollup
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		volume, overridden := totalByDay[day]
		if !overridden {
			volume = milkByDay[day]
		}

		r := models.PeriodRollup{
			PeriodStart: day,
			Granularity: models.GranularityDaily,
			MilkVolume:  volume,
			Revenue:     volume * s.unitPrice,
			FeedCost:    feedCostByDay[day],
			HealthCost:  healthByDay[day],
			AICost:      aiByDay[day],
			SalaryCost:  salaryForDay(day, employees),
		}
		r.TotalCost = r.FeedCost + r.HealthCost + r.AICost + r.SalaryCost
		r.Profit = r.Revenue - r.TotalCost
		out = append(out, r)
	}
	return out, nil
}

// salaryForDay recognizes the full monthly salary of every active employment
// interval on the 1st calendar day of a month. No proration.
func salaryForDay(day time.Time, employees []models.Employee) float64 {
	if day.Day() != 1 {
		return 0
	}
	var total float64
	for _, e := range employees {
		if e.EmployedAt(day) {
			total += e.Salary
		}
	}
	return total
}

// resample sums the daily series into calendar week or month buckets.
func resample(daily []models.PeriodRollup, granularity models.Granularity) []models.PeriodRollup {
	buckets := make(map[time.Time]*models.PeriodRollup)
	var order []time.Time

	for _, d := range daily {
		key := bucketStart(d.PeriodStart, granularity)
		agg, ok := buckets[key]
		if !ok {
			agg = &models.PeriodRollup{PeriodStart: key, Granularity: granularity}
			buckets[key] = agg
			order = append(order, key)
		}
		agg.MilkVolume += d.MilkVolume
		agg.Revenue += d.Revenue
		agg.FeedCost += d.FeedCost
		agg.HealthCost += d.HealthCost
		agg.AICost += d.AICost
		agg.SalaryCost += d.SalaryCost
		agg.TotalCost += d.TotalCost
		agg.Profit += d.Profit
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })
	out := make([]models.PeriodRollup, 0, len(order))
	for _, key := range order {
		out = append(out, *buckets[key])
	}
	return out
}

func bucketStart(day time.Time, granularity models.Granularity) time.Time {
	switch granularity {
	case models.GranularityWeekly:
		return mondayStart(day)
	case models.GranularityMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

func mondayStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	daysSinceMonday := (weekday + 6) % 7
	start := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}

// DailyReport computes the persisted report-log document for one date.
func (s *Service) DailyReport(ctx context.Context, date time.Time) (models.DailyReport, error) {
	day := models.Day(date)
	rollups, err := s.Rollups(ctx, day, day, models.GranularityDaily)
	if err != nil {
		return models.DailyReport{}, err
	}

	r := rollups[0]
	return models.DailyReport{
		Date:       r.PeriodStart,
		MilkVolume: r.MilkVolume,
		Revenue:    r.Revenue,
		FeedCost:   r.FeedCost,
		HealthCost: r.HealthCost,
		AICost:     r.AICost,
		SalaryCost: r.SalaryCost,
		TotalCost:  r.TotalCost,
		Profit:     r.Profit,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
