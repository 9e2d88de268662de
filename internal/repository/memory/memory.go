package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/nmwangi/dairyledger/internal/domain/models"
	"github.com/nmwangi/dairyledger/internal/repository/ledger"
)

// Store is an in-memory ledger.Store used by tests and local runs. Writers
// serialize on a single mutex, which also makes the duplicate checks atomic
// with their inserts.
type Store struct {
	mu sync.RWMutex

	receipts  []models.FeedReceipt
	usage     []models.FeedUsage
	milk      []models.MilkRecord
	totals    []models.DailyMilkTotal
	health    []models.HealthRecord
	ai        []models.AIRecord
	employees []models.Employee
	cows      []models.Cow
	reports   []models.DailyReport

	nextID int
}

var _ ledger.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{}
}

func (s *Store) genID() string {
	s.nextID++
	return "mem-" + strconv.Itoa(s.nextID)
}

// ListFeedReceipts returns receipts inside the window, oldest first.
func (s *Store) ListFeedReceipts(_ context.Context, dr ledger.DateRange) ([]models.FeedReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.FeedReceipt
	for _, r := range s.receipts {
		if dr.Contains(r.Date) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ListFeedUsage returns usage records inside the window, oldest first.
func (s *Store) ListFeedUsage(_ context.Context, dr ledger.DateRange) ([]models.FeedUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.FeedUsage
	for _, u := range s.usage {
		if dr.Contains(u.Date) {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ListMilkRecords returns milk records inside the window, oldest first.
func (s *Store) ListMilkRecords(_ context.Context, dr ledger.DateRange) ([]models.MilkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.MilkRecord
	for _, m := range s.milk {
		if dr.Contains(m.Date) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ListDailyMilkTotals returns authoritative totals inside the window.
func (s *Store) ListDailyMilkTotals(_ context.Context, dr ledger.DateRange) ([]models.DailyMilkTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.DailyMilkTotal
	for _, t := range s.totals {
		if dr.Contains(t.Date) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ListHealthRecords returns health records inside the window.
func (s *Store) ListHealthRecords(_ context.Context, dr ledger.DateRange) ([]models.HealthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.HealthRecord
	for _, h := range s.health {
		if dr.Contains(h.Date) {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ListAIRecords returns AI records inside the window.
func (s *Store) ListAIRecords(_ context.Context, dr ledger.DateRange) ([]models.AIRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AIRecord
	for _, a := range s.ai {
		if dr.Contains(a.Date) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ListEmployees returns the full employee roster.
func (s *Store) ListEmployees(_ context.Context) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Employee(nil), s.employees...), nil
}

// ListCows returns the full cow roster.
func (s *Store) ListCows(_ context.Context) ([]models.Cow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Cow(nil), s.cows...), nil
}

// InsertFeedReceipt appends a purchase batch.
func (s *Store) InsertFeedReceipt(_ context.Context, rec models.FeedReceipt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.genID()
	s.receipts = append(s.receipts, rec)
	return rec.ID, nil
}

// InsertFeedUsage appends a consumption event.
func (s *Store) InsertFeedUsage(_ context.Context, rec models.FeedUsage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.genID()
	s.usage = append(s.usage, rec)
	return rec.ID, nil
}

// InsertMilkRecord appends a milk record, rejecting a duplicate
// (cow, date, time_of_milking) key.
func (s *Store) InsertMilkRecord(_ context.Context, rec models.MilkRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := models.Day(rec.Date)
	for _, existing := range s.milk {
		if existing.Cow == rec.Cow && models.Day(existing.Date).Equal(day) && existing.TimeOfMilking == rec.TimeOfMilking {
			return "", fmt.Errorf("%w: milk record for %s on %s (%s)", models.ErrDuplicateEntry,
				rec.Cow, day.Format(models.DateLayout), rec.TimeOfMilking)
		}
	}

	rec.ID = s.genID()
	s.milk = append(s.milk, rec)
	return rec.ID, nil
}

// InsertDailyMilkTotal appends an authoritative total, rejecting a second
// total for the same date.
func (s *Store) InsertDailyMilkTotal(_ context.Context, rec models.DailyMilkTotal) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := models.Day(rec.Date)
	for _, existing := range s.totals {
		if models.Day(existing.Date).Equal(day) {
			return "", fmt.Errorf("%w: daily total for %s", models.ErrDuplicateEntry, day.Format(models.DateLayout))
		}
	}

	rec.ID = s.genID()
	s.totals = append(s.totals, rec)
	return rec.ID, nil
}

// InsertHealthRecord appends a treatment event.
func (s *Store) InsertHealthRecord(_ context.Context, rec models.HealthRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.genID()
	s.health = append(s.health, rec)
	return rec.ID, nil
}

// InsertAIRecord appends an insemination expense.
func (s *Store) InsertAIRecord(_ context.Context, rec models.AIRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.genID()
	s.ai = append(s.ai, rec)
	return rec.ID, nil
}

// InsertEmployee appends an employment interval.
func (s *Store) InsertEmployee(_ context.Context, rec models.Employee) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.genID()
	s.employees = append(s.employees, rec)
	return rec.ID, nil
}

// InsertCow appends a roster entry.
func (s *Store) InsertCow(_ context.Context, rec models.Cow) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.genID()
	s.cows = append(s.cows, rec)
	return rec.ID, nil
}

// UpdateHealthCost prices a logged treatment.
func (s *Store) UpdateHealthCost(_ context.Context, id string, cost float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.health {
		if s.health[i].ID == id {
			c := cost
			s.health[i].Cost = &c
			return nil
		}
	}
	return fmt.Errorf("%w: health record %s", models.ErrNotFound, id)
}

// DeleteRecord removes one source event by collection and id.
func (s *Store) DeleteRecord(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch collection {
	case ledger.CollectionFeedReceipts:
		for i, r := range s.receipts {
			if r.ID == id {
				s.receipts = append(s.receipts[:i], s.receipts[i+1:]...)
				return nil
			}
		}
	case ledger.CollectionFeedUsage:
		for i, u := range s.usage {
			if u.ID == id {
				s.usage = append(s.usage[:i], s.usage[i+1:]...)
				return nil
			}
		}
	case ledger.CollectionMilkRecords:
		for i, m := range s.milk {
			if m.ID == id {
				s.milk = append(s.milk[:i], s.milk[i+1:]...)
				return nil
			}
		}
	case ledger.CollectionDailyMilkTotals:
		for i, t := range s.totals {
			if t.ID == id {
				s.totals = append(s.totals[:i], s.totals[i+1:]...)
				return nil
			}
		}
	case ledger.CollectionHealthRecords:
		for i, h := range s.health {
			if h.ID == id {
				s.health = append(s.health[:i], s.health[i+1:]...)
				return nil
			}
		}
	case ledger.CollectionAIRecords:
		for i, a := range s.ai {
			if a.ID == id {
				s.ai = append(s.ai[:i], s.ai[i+1:]...)
				return nil
			}
		}
	case ledger.CollectionEmployees:
		for i, e := range s.employees {
			if e.ID == id {
				s.employees = append(s.employees[:i], s.employees[i+1:]...)
				return nil
			}
		}
	case ledger.CollectionCows:
		for i, c := range s.cows {
			if c.ID == id {
				s.cows = append(s.cows[:i], s.cows[i+1:]...)
				return nil
			}
		}
	default:
		return fmt.Errorf("%w: collection %s", models.ErrNotFound, collection)
	}
	return fmt.Errorf("%w: %s/%s", models.ErrNotFound, collection, id)
}

// SaveDailyReport appends a report-log document.
func (s *Store) SaveDailyReport(_ context.Context, report models.DailyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	s.reports = append(s.reports, report)
	return nil
}

// DailyReports exposes the saved report log for tests.
func (s *Store) DailyReports() []models.DailyReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DailyReport(nil), s.reports...)
}
