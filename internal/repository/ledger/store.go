package ledger

import (
	"context"
	"time"

	"github.com/nmwangi/dairyledger/internal/domain/models"
)

// Collection names mirror the event collections in the document store.
const (
	CollectionFeedReceipts    = "feeds_received"
	CollectionFeedUsage       = "feeds_used"
	CollectionMilkRecords     = "milk_production"
	CollectionDailyMilkTotals = "daily_milk_totals"
	CollectionHealthRecords   = "health_records"
	CollectionAIRecords       = "ai_records"
	CollectionEmployees       = "employees"
	CollectionCows            = "cows"
	CollectionDailyReports    = "daily_reports"
)

// DateRange is an inclusive [Start, End] calendar window. A zero Start or End
// leaves that side unbounded.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Window builds an inclusive range from two dates, normalized to midnight UTC.
func Window(start, end time.Time) DateRange {
	return DateRange{Start: models.Day(start), End: models.Day(end)}
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := models.Day(t)
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}

// Store is the append-only ledger of farm events. List operations return
// records ordered ascending by date and bounded by the supplied range; an
// empty collection is a valid zero result, while an unreachable store
// surfaces models.ErrStoreUnavailable. Insert operations serialize per
// logical key so the duplicate guard holds under concurrent submission.
type Store interface {
	ListFeedReceipts(ctx context.Context, r DateRange) ([]models.FeedReceipt, error)
	ListFeedUsage(ctx context.Context, r DateRange) ([]models.FeedUsage, error)
	ListMilkRecords(ctx context.Context, r DateRange) ([]models.MilkRecord, error)
	ListDailyMilkTotals(ctx context.Context, r DateRange) ([]models.DailyMilkTotal, error)
	ListHealthRecords(ctx context.Context, r DateRange) ([]models.HealthRecord, error)
	ListAIRecords(ctx context.Context, r DateRange) ([]models.AIRecord, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListCows(ctx context.Context) ([]models.Cow, error)

	InsertFeedReceipt(ctx context.Context, rec models.FeedReceipt) (string, error)
	InsertFeedUsage(ctx context.Context, rec models.FeedUsage) (string, error)
	// InsertMilkRecord returns models.ErrDuplicateEntry when a record with the
	// same (cow, date, time_of_milking) already exists.
	InsertMilkRecord(ctx context.Context, rec models.MilkRecord) (string, error)
	// InsertDailyMilkTotal returns models.ErrDuplicateEntry when a total for
	// the same date already exists.
	InsertDailyMilkTotal(ctx context.Context, rec models.DailyMilkTotal) (string, error)
	InsertHealthRecord(ctx context.Context, rec models.HealthRecord) (string, error)
	InsertAIRecord(ctx context.Context, rec models.AIRecord) (string, error)
	InsertEmployee(ctx context.Context, rec models.Employee) (string, error)
	InsertCow(ctx context.Context, rec models.Cow) (string, error)

	// UpdateHealthCost prices a previously logged treatment. Corrections are
	// explicit operations on the source event, never edits of derived data.
	UpdateHealthCost(ctx context.Context, id string, cost float64) error
	DeleteRecord(ctx context.Context, collection, id string) error

	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}
