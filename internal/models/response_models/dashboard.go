package response_models

import (
	"time"

	"github.com/google/uuid"
)

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	// Optional: timezone used for bucketing (defaults to UTC if empty)
	Timezone string `json:"timezone,omitempty"`
}

type KPIBlock struct {
	TotalAccounts   int64 `json:"total_accounts"`
	NewAccounts     int64 `json:"new_accounts"`
	TotalGroups     int64 `json:"total_groups"`
	NewGroups       int64 `json:"new_groups"`
	TotalCategories int64 `json:"total_categories"`
	UnindexedGroups int64 `json:"unindexed_groups"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type CountSeries struct {
	Points []SeriesPoint `json:"points"`
	Total  int64         `json:"total"`
}

type CategoryMixItem struct {
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Count        int64     `json:"count"`
	Percent      float64   `json:"percent"`
}

type RecentGroup struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Link         string    `json:"link"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type DashboardReport struct {
	Range        TimeRange         `json:"range"`
	KPIs         KPIBlock          `json:"kpis"`
	NewUsers     CountSeries       `json:"new_users"`
	NewGroups    CountSeries       `json:"new_groups"`
	CategoryMix  []CategoryMixItem `json:"category_mix"`
	RecentGroups []RecentGroup     `json:"recent_groups"`
}
