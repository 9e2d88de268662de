package records

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nmwangi/dairyledger/internal/domain/models"
	"github.com/nmwangi/dairyledger/internal/repository/ledger"
)

// Service is the ingestion gate in front of the ledger store: it validates
// incoming events, normalizes their dates, and relies on the store's key
// constraints for the duplicate guard. Committed events are immutable;
// corrections go through the explicit update/delete operations below.
type Service struct {
	store  ledger.Store
	logger *zap.Logger
}

// NewService constructs an ingestion service.
func NewService(store ledger.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// RecordMilk ingests one milking-session record. A second record for the same
// (cow, date, time_of_milking) key is rejected with models.ErrDuplicateEntry
// and contributes nothing to aggregates.
func (s *Service) RecordMilk(ctx context.Context, rec models.MilkRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	rec.Date = models.Day(rec.Date)

	id, err := s.store.InsertMilkRecord(ctx, rec)
	if err != nil {
		return "", err
	}
	s.logger.Info("milk record saved",
		zap.String("cow", rec.Cow),
		zap.String("date", rec.Date.Format(models.DateLayout)),
		zap.String("slot", string(rec.TimeOfMilking)),
		zap.Float64("litres_sell", rec.LitresSell))
	return id, nil
}

// RecordDailyTotal ingests the farm-wide total for one date; at most one per
// date is accepted.
func (s *Service) RecordDailyTotal(ctx context.Context, rec models.DailyMilkTotal) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	rec.Date = models.Day(rec.Date)

	id, err := s.store.InsertDailyMilkTotal(ctx, rec)
	if err != nil {
		return "", err
	}
	s.logger.Info("daily milk total saved",
		zap.String("date", rec.Date.Format(models.DateLayout)),
		zap.Float64("litres", rec.Litres))
	return id, nil
}

// RecordFeedReceipt ingests a purchase batch.
func (s *Service) RecordFeedReceipt(ctx context.Context, rec models.FeedReceipt) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	rec.Date = models.Day(rec.Date)

	id, err := s.store.InsertFeedReceipt(ctx, rec)
	if err != nil {
		return "", err
	}
	s.logger.Info("feed receipt saved",
		zap.String("feed_type", rec.FeedType),
		zap.Float64("quantity", rec.Quantity),
		zap.Float64("cost", rec.Cost))
	return id, nil
}

// RecordFeedUsage ingests a consumption event.
func (s *Service) RecordFeedUsage(ctx context.Context, rec models.FeedUsage) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	rec.Date = models.Day(rec.Date)

	id, err := s.store.InsertFeedUsage(ctx, rec)
	if err != nil {
		return "", err
	}
	s.logger.Info("feed usage saved",
		zap.String("feed_type", rec.FeedType),
		zap.String("category", string(rec.Category)),
		zap.Float64("quantity", rec.Quantity))
	return id, nil
}

// RecordHealth ingests a treatment event, priced or not.
func (s *Service) RecordHealth(ctx context.Context, rec models.HealthRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	rec.Date = models.Day(rec.Date)
	return s.store.InsertHealthRecord(ctx, rec)
}

// RecordAI ingests an insemination expense.
func (s *Service) RecordAI(ctx context.Context, rec models.AIRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	rec.Date = models.Day(rec.Date)
	return s.store.InsertAIRecord(ctx, rec)
}

// RecordEmployee ingests an employment interval.
func (s *Service) RecordEmployee(ctx context.Context, rec models.Employee) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	rec.StartDate = models.Day(rec.StartDate)
	if rec.EndDate != nil {
		d := models.Day(*rec.EndDate)
		rec.EndDate = &d
	}
	return s.store.InsertEmployee(ctx, rec)
}

// RecordCow ingests a roster entry.
func (s *Service) RecordCow(ctx context.Context, rec models.Cow) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	return s.store.InsertCow(ctx, rec)
}

// PriceHealthRecord sets the cost on a previously logged treatment.
func (s *Service) PriceHealthRecord(ctx context.Context, id string, cost float64) error {
	if cost < 0 {
		return fmt.Errorf("%w: cost cannot be negative", models.ErrValidation)
	}
	if err := s.store.UpdateHealthCost(ctx, id, cost); err != nil {
		return err
	}
	s.logger.Info("health record priced", zap.String("id", id), zap.Float64("cost", cost))
	return nil
}

var deletable = map[string]bool{
	ledger.CollectionFeedReceipts:    true,
	ledger.CollectionFeedUsage:       true,
	ledger.CollectionMilkRecords:     true,
	ledger.CollectionDailyMilkTotals: true,
	ledger.CollectionHealthRecords:   true,
	ledger.CollectionAIRecords:       true,
	ledger.CollectionEmployees:       true,
	ledger.CollectionCows:            true,
}

// Delete removes one source event by collection and id. Only event
// collections may be targeted.
func (s *Service) Delete(ctx context.Context, collection, id string) error {
	if !deletable[collection] {
		return fmt.Errorf("%w: collection %q is not editable", models.ErrValidation, collection)
	}
	if err := s.store.DeleteRecord(ctx, collection, id); err != nil {
		return err
	}
	s.logger.Info("record deleted", zap.String("collection", collection), zap.String("id", id))
	return nil
}
