package profit

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nmwangi/dairyledger/internal/domain/models"
	"github.com/nmwangi/dairyledger/internal/repository/ledger"
)

// Allocator supplies FIFO cost allocations for a window.
type Allocator interface {
	Allocate(ctx context.Context, start, end time.Time) ([]models.Allocation, error)
}

// Service allocates the period's pooled costs to individual lactating cows in
// proportion to each cow's share of the milk output.
type Service struct {
	store     ledger.Store
	allocator Allocator
	unitPrice float64
	logger    *zap.Logger
}

// NewService wires a new profit attribution service instance.
func NewService(store ledger.Store, allocator Allocator, unitPrice float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, allocator: allocator, unitPrice: unitPrice, logger: logger}
}

// CowProfits computes per-cow economics for [start, end]. Individual milk
// records drive both volume and the allocation shares; the authoritative daily
// total is farm-wide only and never participates here. Pooled cost covers feed
// and health; AI and salary costs stay farm-wide.
func (s *Service) CowProfits(ctx context.Context, start, end time.Time) ([]models.CowProfit, error) {
	start, end = models.Day(start), models.Day(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s precedes start %s", models.ErrValidation,
			end.Format(models.DateLayout), start.Format(models.DateLayout))
	}
	window := ledger.Window(start, end)

	cows, err := s.store.ListCows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cows: %w", err)
	}
	milk, err := s.store.ListMilkRecords(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("load milk records: %w", err)
	}
	health, err := s.store.ListHealthRecords(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("load health records: %w", err)
	}
	allocations, err := s.allocator.Allocate(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("allocate feed costs: %w", err)
	}

	pooled := decimal.Zero
	for _, a := range allocations {
		pooled = pooled.Add(decimal.NewFromFloat(a.Cost))
	}
	for _, h := range health {
		pooled = pooled.Add(decimal.NewFromFloat(h.CostAmount()))
	}

	volumeByCow := make(map[string]decimal.Decimal)
	for _, m := range milk {
		volumeByCow[m.Cow] = volumeByCow[m.Cow].Add(decimal.NewFromFloat(m.LitresSell))
	}

	var lactating []models.Cow
	totalVolume := decimal.Zero
	for _, c := range cows {
		if c.Status != models.StatusLactating {
			continue
		}
		lactating = append(lactating, c)
		totalVolume = totalVolume.Add(volumeByCow[c.Name])
	}

	price := decimal.NewFromFloat(s.unitPrice)
	out := make([]models.CowProfit, 0, len(lactating))
	for _, c := range lactating {
		volume := volumeByCow[c.Name]
		revenue := volume.Mul(price)

		// Zero farm-wide volume means there is no output share to divide by;
		// every cow carries zero cost rather than tripping a division fault.
		cost := decimal.Zero
		if totalVolume.IsPositive() {
			cost = pooled.Mul(volume).Div(totalVolume)
		}

		volumeF, _ := volume.Float64()
		revenueF, _ := revenue.Float64()
		costF, _ := cost.Float64()
		out = append(out, models.CowProfit{
			Cow:           c.Name,
			PeriodStart:   start,
			PeriodEnd:     end,
			MilkVolume:    volumeF,
			Revenue:       revenueF,
			AllocatedCost: costF,
			Profit:        revenueF - costF,
		})
	}

	// Stable ranking: profit descending, name as tie-break so repeated runs
	// order identically.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Profit != out[j].Profit {
			return out[i].Profit > out[j].Profit
		}
		return out[i].Cow < out[j].Cow
	})
	return out, nil
}

// Top returns the n most profitable entries of a ranked result.
func Top(ranked []models.CowProfit, n int) []models.CowProfit {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}

// Bottom returns the n least profitable entries, worst first.
func Bottom(ranked []models.CowProfit, n int) []models.CowProfit {
	if n <= 0 {
		n = len(ranked)
	}
	out := make([]models.CowProfit, 0, n)
	for i := len(ranked) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, ranked[i])
	}
	return out
}
