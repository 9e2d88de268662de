package costing

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

// Service matches feed usage events against purchase batches in strict
// chronological order (FIFO) and attributes a cost to each usage. The
// computation is a pure function of the events inside the requested window,
// recomputed on every call.
type Service struct {
	store  ledger.Store
	logger *zap.Logger
}

// NewService wires a new cost allocator instance.
func NewService(store ledger.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// batch is one purchase receipt with its running available quantity. The
// availability is shared across the whole usage sequence for the feed type:
// once a usage consumes part of a batch, later usages see the reduced amount.
type batch struct {
	date      time.Time
	unitCost  decimal.Decimal
	available decimal.Decimal
}

// Allocate computes the cost attribution for every usage event in [start, end].
// Receipts outside the window do not participate; callers bound the window so
// query cost scales with it.
func (s *Service) Allocate(ctx context.Context, start, end time.Time) ([]models.Allocation, error) {
	window := ledger.Window(start, end)

	receipts, err := s.store.ListFeedReceipts(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("load feed receipts: %w", err)
	}
	usages, err := s.store.ListFeedUsage(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("load feed usage: %w", err)
	}

	receiptsByType := make(map[string][]models.FeedReceipt)
	for _, r := range receipts {
		receiptsByType[r.FeedType] = append(receiptsByType[r.FeedType], r)
	}
	usageByType := make(map[string][]models.FeedUsage)
	var feedTypes []string
	for _, u := range usages {
		if _, seen := usageByType[u.FeedType]; !seen {
			feedTypes = append(feedTypes, u.FeedType)
		}
		usageByType[u.FeedType] = append(usageByType[u.FeedType], u)
	}
	sort.Strings(feedTypes)

	var out []models.Allocation
	for _, ft := range feedTypes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, s.allocateFeedType(ft, receiptsByType[ft], usageByType[ft])...)
	}
	return out, nil
}

// allocateFeedType runs the consuming-queue walk for one feed type. Both
// slices arrive date-ascending from the store; the re-sort is cheap and keeps
// the invariant local.
func (s *Service) allocateFeedType(feedType string, receipts []models.FeedReceipt, usages []models.FeedUsage) []models.Allocation {
	sort.SliceStable(receipts, func(i, j int) bool { return receipts[i].Date.Before(receipts[j].Date) })
	sort.SliceStable(usages, func(i, j int) bool { return usages[i].Date.Before(usages[j].Date) })

	batches := make([]batch, len(receipts))
	for i, r := range receipts {
		qty := decimal.NewFromFloat(r.Quantity)
		cost := decimal.NewFromFloat(r.Cost)
		unit := decimal.Zero
		if qty.IsPositive() {
			unit = cost.Div(qty)
		}
		batches[i] = batch{date: models.Day(r.Date), unitCost: unit, available: qty}
	}

	// Latest-cost fallback rate: the most recent batch regardless of date.
	latestRate := decimal.Zero
	if len(batches) > 0 {
		latestRate = batches[len(batches)-1].unitCost
	}

	allocations := make([]models.Allocation, 0, len(usages))
	cursor := 0 // first batch that may still have stock
	for _, u := range usages {
		day := models.Day(u.Date)
		need := decimal.NewFromFloat(u.Quantity)
		cost := decimal.Zero
		consumed := false

		for cursor < len(batches) && batches[cursor].available.Sign() <= 0 {
			cursor++
		}
		for i := cursor; i < len(batches) && need.IsPositive(); i++ {
			if batches[i].date.After(day) {
				break // batches are date-ascending, nothing further is eligible
			}
			if batches[i].available.Sign() <= 0 {
				continue
			}
			take := decimal.Min(batches[i].available, need)
			batches[i].available = batches[i].available.Sub(take)
			cost = cost.Add(take.Mul(batches[i].unitCost))
			need = need.Sub(take)
			consumed = true
		}

		method := models.MethodFIFO
		if need.IsPositive() {
			if len(batches) > 0 {
				cost = cost.Add(need.Mul(latestRate))
				s.logger.Warn("usage not covered by eligible batches, costing shortfall at latest rate",
					zap.String("feed_type", feedType),
					zap.String("usage_id", u.ID),
					zap.String("date", day.Format(models.DateLayout)),
					zap.String("shortfall", need.String()))
			}
			if !consumed {
				method = models.MethodFallbackLatest
			}
		}

		costF, _ := cost.Float64()
		allocations = append(allocations, models.Allocation{
			UsageID:  u.ID,
			FeedType: feedType,
			Date:     day,
			Quantity: u.Quantity,
			Cost:     costF,
			Method:   method,
		})
	}
	return allocations
}
