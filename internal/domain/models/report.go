package models

import "time"

// DailyReport is the scheduler's persisted snapshot of one day's rollup. It is
// a convenience log for the notification job, never ground truth: the same
// numbers are always recomputable from the event collections.
type DailyReport struct {
	Date       time.Time `bson:"date" json:"date"`
	MilkVolume float64   `bson:"milk_volume" json:"milk_volume"`
	Revenue    float64   `bson:"revenue" json:"revenue"`
	FeedCost   float64   `bson:"feed_cost" json:"feed_cost"`
	HealthCost float64   `bson:"health_cost" json:"health_cost"`
	AICost     float64   `bson:"ai_cost" json:"ai_cost"`
	SalaryCost float64   `bson:"salary_cost" json:"salary_cost"`
	TotalCost  float64   `bson:"total_cost" json:"total_cost"`
	Profit     float64   `bson:"profit" json:"profit"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
