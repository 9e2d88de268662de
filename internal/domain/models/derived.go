package models

import (
	"fmt"
	"strings"
	"time"
)

// InventorySnapshot is the running balance for one feed type, recomputed on
// every query.
type InventorySnapshot struct {
	FeedType  string  `json:"feed_type"`
	Received  float64 `json:"quantity_received"`
	Used      float64 `json:"quantity_used"`
	Remaining float64 `json:"remaining"`
}

// AllocationMethod records how a usage event's cost was derived.
type AllocationMethod string

const (
	// MethodFIFO means the cost came from consuming purchase batches oldest
	// first.
	MethodFIFO AllocationMethod = "FIFO"
	// MethodFallbackLatest means no batch existed at or before the usage date,
	// so the most recent batch's unit cost was applied.
	MethodFallbackLatest AllocationMethod = "FallbackLatest"
)

// Allocation is the cost attributed to one feed usage event.
type Allocation struct {
	UsageID  string           `json:"usage_id"`
	FeedType string           `json:"feed_type"`
	Date     time.Time        `json:"date"`
	Quantity float64          `json:"quantity"`
	Cost     float64          `json:"cost"`
	Method   AllocationMethod `json:"method"`
}

// Granularity selects the rollup bucket size.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ParseGranularity normalizes a caller-supplied granularity string.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case GranularityDaily, "":
		return GranularityDaily, nil
	case GranularityWeekly:
		return GranularityWeekly, nil
	case GranularityMonthly:
		return GranularityMonthly, nil
	}
	return "", fmt.Errorf("%w: unknown granularity %q", ErrValidation, s)
}

// PeriodRollup is one time bucket of summed revenue and cost flows.
type PeriodRollup struct {
	PeriodStart time.Time   `json:"period_start"`
	Granularity Granularity `json:"granularity"`
	MilkVolume  float64     `json:"milk_volume"`
	Revenue     float64     `json:"revenue"`
	FeedCost    float64     `json:"feed_cost"`
	HealthCost  float64     `json:"health_cost"`
	AICost      float64     `json:"ai_cost"`
	SalaryCost  float64     `json:"salary_cost"`
	TotalCost   float64     `json:"total_cost"`
	Profit      float64     `json:"profit"`
}

// CowProfit is one lactating cow's share of the period economics.
type CowProfit struct {
	Cow           string    `json:"cow"`
	PeriodStart   time.Time `json:"period_start"`
	PeriodEnd     time.Time `json:"period_end"`
	MilkVolume    float64   `json:"milk_volume"`
	Revenue       float64   `json:"revenue"`
	AllocatedCost float64   `json:"allocated_cost"`
	Profit        float64   `json:"profit"`
}
