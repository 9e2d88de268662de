package inventory

import (
	"context"
	"fmt"
	"iter"
	"sort"

	"go.uber.org/zap"

	"github.com/nmwangi/dairyledger/internal/domain/models"
	"github.com/nmwangi/dairyledger/internal/repository/ledger"
)

// Service computes the running feed balance from the receipt and usage
// ledgers. Every call is a fresh recomputation; nothing is cached.
type Service struct {
	store  ledger.Store
	logger *zap.Logger
}

// NewService wires a new inventory service instance.
func NewService(store ledger.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Snapshot returns the balance for every feed type, or for a single one when
// feedType is non-empty. Usage without matching receipts clamps remaining to
// zero; the deficit is logged rather than silently discarded.
func (s *Service) Snapshot(ctx context.Context, feedType string) ([]models.InventorySnapshot, error) {
	receipts, err := s.store.ListFeedReceipts(ctx, ledger.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("load feed receipts: %w", err)
	}
	usage, err := s.store.ListFeedUsage(ctx, ledger.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("load feed usage: %w", err)
	}

	balances := make(map[string]*models.InventorySnapshot)
	get := func(ft string) *models.InventorySnapshot {
		snap, ok := balances[ft]
		if !ok {
			snap = &models.InventorySnapshot{FeedType: ft}
			balances[ft] = snap
		}
		return snap
	}

	for _, r := range receipts {
		get(r.FeedType).Received += r.Quantity
	}
	for _, u := range usage {
		get(u.FeedType).Used += u.Quantity
	}

	var out []models.InventorySnapshot
	for _, snap := range balances {
		if feedType != "" && snap.FeedType != feedType {
			continue
		}
		remaining := snap.Received - snap.Used
		if remaining < 0 {
			s.logger.Warn("feed usage exceeds receipts, clamping remaining to zero",
				zap.String("feed_type", snap.FeedType),
				zap.Float64("deficit", -remaining))
			remaining = 0
		}
		snap.Remaining = remaining
		out = append(out, *snap)
	}

	if feedType != "" && len(out) == 0 {
		return nil, fmt.Errorf("%w: feed type %q", models.ErrNotFound, feedType)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].FeedType < out[j].FeedType })
	return out, nil
}

// FeedTypes returns a lazy, restartable sequence over feed types that still
// have stock. The snapshot is taken once; ranging over the sequence again
// replays the same result.
func (s *Service) FeedTypes(ctx context.Context) (iter.Seq[string], error) {
	snapshots, err := s.Snapshot(ctx, "")
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		for _, snap := range snapshots {
			if snap.Remaining <= 0 {
				continue
			}
			if !yield(snap.FeedType) {
				return
			}
		}
	}, nil
}

// AvailableFeedTypes materializes FeedTypes for callers that want a slice.
func (s *Service) AvailableFeedTypes(ctx context.Context) ([]string, error) {
	seq, err := s.FeedTypes(ctx)
	if err != nil {
		return nil, err
	}

	var out []string
	for ft := range seq {
		out = append(out, ft)
	}
	return out, nil
}
