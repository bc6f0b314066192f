package schema

import (
	"time"

	"github.com/feral-file/ff-lead-analytics/internal/domain"
)

// PageViewEvent represents the page_view_events table
// Append-only log of page-view beacons so page_views can be rebuilt
type PageViewEvent struct {
	ID           int64         `gorm:"column:id;primaryKey;autoIncrement"`
	ListingID    string        `gorm:"column:listing_id;not null;type:text"`
	SessionToken string        `gorm:"column:session_token;not null;type:text"`
	Source       domain.Source `gorm:"column:source;not null;type:text"`
	OccurredAt   time.Time     `gorm:"column:occurred_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the PageViewEvent model
func (PageViewEvent) TableName() string {
	return "page_view_events"
}
