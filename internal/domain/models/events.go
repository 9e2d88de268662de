package models

import (
	"fmt"
	"time"
)

// DateLayout is the canonical wire format for dates throughout the system.
const DateLayout = "2006-01-02"

// TimeSlot identifies one of the three daily milking sessions.
type TimeSlot string

const (
	SlotMorning TimeSlot = "Morning"
	SlotLunch   TimeSlot = "Lunch"
	SlotEvening TimeSlot = "Evening"
)

// Valid reports whether the slot is one of the recognized milking sessions.
func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotLunch, SlotEvening:
		return true
	}
	return false
}

// UsageCategory identifies which group of animals a feed usage was for.
type UsageCategory string

const (
	CategoryGrownCow  UsageCategory = "Grown Cow"
	CategoryCalf      UsageCategory = "Calf"
	CategoryLactating UsageCategory = "Lactating"
)

// Valid reports whether the category is recognized.
func (c UsageCategory) Valid() bool {
	switch c {
	case CategoryGrownCow, CategoryCalf, CategoryLactating:
		return true
	}
	return false
}

// CowStatus enumerates the lifecycle states tracked for a cow.
type CowStatus string

const (
	StatusLactating CowStatus = "Lactating"
	StatusDry       CowStatus = "Dry"
	StatusCalf      CowStatus = "Calf"
)

// FeedReceipt records a purchase batch of feed entering inventory.
type FeedReceipt struct {
	ID       string    `bson:"_id,omitempty" json:"id,omitempty"`
	FeedType string    `bson:"feed_type" json:"feed_type"`
	Date     time.Time `bson:"date" json:"date"`
	Quantity float64   `bson:"quantity" json:"quantity"`
	Cost     float64   `bson:"cost" json:"cost"`
}

// CostPerUnit derives the per-kilogram cost of the batch.
func (r FeedReceipt) CostPerUnit() float64 {
	if r.Quantity <= 0 {
		return 0
	}
	return r.Cost / r.Quantity
}

// Validate checks ingestion invariants for a feed receipt.
func (r FeedReceipt) Validate() error {
	if r.FeedType == "" {
		return fmt.Errorf("%w: feed_type is required", ErrValidation)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if r.Cost < 0 {
		return fmt.Errorf("%w: cost cannot be negative", ErrValidation)
	}
	return nil
}

// FeedUsage records feed consumed from inventory.
type FeedUsage struct {
	ID       string        `bson:"_id,omitempty" json:"id,omitempty"`
	FeedType string        `bson:"feed_type" json:"feed_type"`
	Date     time.Time     `bson:"date" json:"date"`
	Quantity float64       `bson:"quantity" json:"quantity"`
	Category UsageCategory `bson:"category" json:"category"`
	Note     string        `bson:"note,omitempty" json:"note,omitempty"`
}

// Validate checks ingestion invariants for a feed usage record.
func (u FeedUsage) Validate() error {
	if u.FeedType == "" {
		return fmt.Errorf("%w: feed_type is required", ErrValidation)
	}
	if u.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if u.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if !u.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, u.Category)
	}
	return nil
}

// MilkRecord captures one cow's output for a single milking session.
type MilkRecord struct {
	ID            string    `bson:"_id,omitempty" json:"id,omitempty"`
	Cow           string    `bson:"cow" json:"cow"`
	Date          time.Time `bson:"date" json:"date"`
	TimeOfMilking TimeSlot  `bson:"time_of_milking" json:"time_of_milking"`
	LitresSell    float64   `bson:"litres_sell" json:"litres_sell"`
	LitresCalves  float64   `bson:"litres_calves" json:"litres_calves"`
}

// Validate checks ingestion invariants for a milk record.
func (m MilkRecord) Validate() error {
	if m.Cow == "" {
		return fmt.Errorf("%w: cow is required", ErrValidation)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if !m.TimeOfMilking.Valid() {
		return fmt.Errorf("%w: unknown time_of_milking %q", ErrValidation, m.TimeOfMilking)
	}
	if m.LitresSell < 0 || m.LitresCalves < 0 {
		return fmt.Errorf("%w: litres cannot be negative", ErrValidation)
	}
	return nil
}

// DailyMilkTotal is the manager-entered farm-wide total for one date. When
// present it overrides the summed MilkRecords for that date in farm-wide
// reporting; per-cow attribution always uses the individual records.
type DailyMilkTotal struct {
	ID     string    `bson:"_id,omitempty" json:"id,omitempty"`
	Date   time.Time `bson:"date" json:"date"`
	Litres float64   `bson:"litres" json:"litres"`
}

// Validate checks ingestion invariants for a daily total.
func (d DailyMilkTotal) Validate() error {
	if d.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if d.Litres < 0 {
		return fmt.Errorf("%w: litres cannot be negative", ErrValidation)
	}
	return nil
}

// HealthRecord captures a treatment event. Cost is nullable because staff log
// the treatment first and the manager prices it later; an unpriced record
// contributes zero to cost aggregation.
type HealthRecord struct {
	ID       string    `bson:"_id,omitempty" json:"id,omitempty"`
	Cow      string    `bson:"cow_tag,omitempty" json:"cow,omitempty"`
	Date     time.Time `bson:"date" json:"date"`
	Disease  string    `bson:"disease,omitempty" json:"disease,omitempty"`
	Medicine string    `bson:"medicine,omitempty" json:"medicine,omitempty"`
	Cost     *float64  `bson:"cost" json:"cost"`
}

// CostAmount returns the priced cost, or zero when the record is unpriced.
func (h HealthRecord) CostAmount() float64 {
	if h.Cost == nil {
		return 0
	}
	return *h.Cost
}

// Validate checks ingestion invariants for a health record.
func (h HealthRecord) Validate() error {
	if h.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if h.Cost != nil && *h.Cost < 0 {
		return fmt.Errorf("%w: cost cannot be negative", ErrValidation)
	}
	return nil
}

// AIRecord captures an artificial-insemination expense.
type AIRecord struct {
	ID   string    `bson:"_id,omitempty" json:"id,omitempty"`
	Cow  string    `bson:"cow,omitempty" json:"cow,omitempty"`
	Date time.Time `bson:"ai_date" json:"date"`
	Cost float64   `bson:"cost" json:"cost"`
}

// Validate checks ingestion invariants for an AI record.
func (a AIRecord) Validate() error {
	if a.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if a.Cost < 0 {
		return fmt.Errorf("%w: cost cannot be negative", ErrValidation)
	}
	return nil
}

// Employee carries the salary-liability signal consumed by reporting. EndDate
// is nil while the employment interval is open-ended.
type Employee struct {
	ID        string     `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string     `bson:"name" json:"name"`
	Role      string     `bson:"role,omitempty" json:"role,omitempty"`
	Salary    float64    `bson:"salary" json:"salary"`
	Phone     string     `bson:"phone,omitempty" json:"phone,omitempty"`
	StartDate time.Time  `bson:"start_date" json:"start_date"`
	EndDate   *time.Time `bson:"end_date" json:"end_date"`
	Status    string     `bson:"status,omitempty" json:"status,omitempty"`
}

// EmployedAt reports whether the employment interval [start, end) contains t.
func (e Employee) EmployedAt(t time.Time) bool {
	if t.Before(e.StartDate) {
		return false
	}
	return e.EndDate == nil || t.Before(*e.EndDate)
}

// Validate checks ingestion invariants for an employee record.
func (e Employee) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if e.Salary < 0 {
		return fmt.Errorf("%w: salary cannot be negative", ErrValidation)
	}
	if e.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", ErrValidation)
	}
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("%w: end_date precedes start_date", ErrValidation)
	}
	return nil
}

// Cow is a revenue-producing entity on the roster.
type Cow struct {
	ID     string    `bson:"_id,omitempty" json:"id,omitempty"`
	Name   string    `bson:"name" json:"name"`
	Status CowStatus `bson:"status" json:"status"`
	Gender string    `bson:"gender,omitempty" json:"gender,omitempty"`
}

// Validate checks ingestion invariants for a cow record.
func (c Cow) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	switch c.Status {
	case StatusLactating, StatusDry, StatusCalf:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, c.Status)
	}
	return nil
}

// Day truncates t to midnight UTC so records on the same calendar date compare
// equal regardless of the clock component.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
