package schema

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsDaily represents the analytics table
// One row per listing per calendar day in the store timezone
type AnalyticsDaily struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ListingID references the listing
	ListingID string `gorm:"column:listing_id;not null;type:text;uniqueIndex:idx_analytics_listing_date,priority:1"`
	// Date is the calendar day the counters belong to
	Date datatypes.Date `gorm:"column:date;not null;type:date;uniqueIndex:idx_analytics_listing_date,priority:2"`
	// TotalScans is the number of counted QR scans
	TotalScans int `gorm:"column:total_scans;not null"`
	// TotalLeads is the number of leads submitted
	TotalLeads int `gorm:"column:total_leads;not null"`
	// UniqueVisitors is the number of sessions first seen on this day
	UniqueVisitors int `gorm:"column:unique_visitors;not null"`
	// PageViews is the number of page-view beacons received
	PageViews int `gorm:"column:page_views;not null"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AnalyticsDaily model
func (AnalyticsDaily) TableName() string {
	return "analytics"
}

// Day returns the record date as a time.Time
func (a *AnalyticsDaily) Day() time.Time {
	return time.Time(a.Date)
}
