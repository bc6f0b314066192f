package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/store/schema"
)

// ScanSessionUpdate describes a change to an existing scan session.
// Every field is applied with expressions that cannot regress a concurrent writer:
// scan_count only grows, last_seen_at only moves forward and a qr source is never replaced.
type ScanSessionUpdate struct {
	// IncrementScanCount adds one counted scan
	IncrementScanCount bool
	// SetSourceQR marks the session as QR attributed
	SetSourceQR bool
	// SourceIfUnset sets the source only when the row has none yet
	SourceIfUnset *domain.Source
	DeviceType    domain.DeviceType
	TimeOfDay     int
	// Referrer replaces the stored referrer when not nil
	Referrer *string
	// SeenAt advances last_seen_at
	SeenAt time.Time
}

// DailyIncrement describes counters to add to a daily analytics record
type DailyIncrement struct {
	Scans     int
	PageViews int
	Leads     int
	// UniqueVisitors is the live visitor count; the stored value never moves backwards
	UniqueVisitors *int
}

// DailyCounts holds recomputed counters for a daily analytics record
type DailyCounts struct {
	TotalScans     int
	TotalLeads     int
	UniqueVisitors int
	// PageViewsFloor is the lowest acceptable page_views value; a higher stored value is kept
	PageViewsFloor int
}

// SessionDayAggregate is the per (listing, day) rollup of scan sessions
type SessionDayAggregate struct {
	ListingID string    `gorm:"column:listing_id"`
	Day       time.Time `gorm:"column:day"`
	Sessions  int       `gorm:"column:sessions"`
	Scans     int       `gorm:"column:scans"`
}

// DayCount is a per (listing, day) row count
type DayCount struct {
	ListingID string    `gorm:"column:listing_id"`
	Day       time.Time `gorm:"column:day"`
	Count     int       `gorm:"column:count"`
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetScanSession retrieves the session for a listing and correlation token, nil if absent
	GetScanSession(ctx context.Context, listingID, sessionToken string) (*schema.ScanSession, error)
	// CreateScanSession inserts a new session, returns domain.ErrConflict if the key already exists
	CreateScanSession(ctx context.Context, session *schema.ScanSession) error
	// UpdateScanSession applies an update to an existing session
	UpdateScanSession(ctx context.Context, id int64, update ScanSessionUpdate) error
	// FindRecentQRSession retrieves the newest QR session of a listing first seen at or after since
	FindRecentQRSession(ctx context.Context, listingID string, since time.Time) (*schema.ScanSession, error)
	// CountSessionsFirstSeen counts sessions of a listing first seen in [start, end)
	CountSessionsFirstSeen(ctx context.Context, listingID string, start, end time.Time) (int, error)

	// GetDailyAnalytics retrieves the daily record of a listing, nil if absent
	GetDailyAnalytics(ctx context.Context, listingID string, day time.Time) (*schema.AnalyticsDaily, error)
	// CreateDailyAnalytics inserts a new daily record, returns domain.ErrConflict if the key already exists
	CreateDailyAnalytics(ctx context.Context, record *schema.AnalyticsDaily) error
	// IncrementDailyAnalytics atomically adds counters to an existing daily record
	IncrementDailyAnalytics(ctx context.Context, listingID string, day time.Time, inc DailyIncrement) error
	// OverwriteDailyAnalytics replaces the counters of an existing daily record with recomputed values
	OverwriteDailyAnalytics(ctx context.Context, listingID string, day time.Time, counts DailyCounts) error
	// ListDailyAnalytics retrieves the daily records of a listing for days in [from, to]
	ListDailyAnalytics(ctx context.Context, listingID string, from, to time.Time) ([]schema.AnalyticsDaily, error)

	// CreateLead inserts a new lead
	CreateLead(ctx context.Context, lead *schema.Lead) error
	// ListLeads retrieves the leads of a listing created in [start, end)
	ListLeads(ctx context.Context, listingID string, start, end time.Time) ([]schema.Lead, error)

	// AppendPageViewEvent records a page-view beacon in the append-only log
	AppendPageViewEvent(ctx context.Context, event *schema.PageViewEvent) error

	// AggregateSessionsByDay groups all sessions by listing and local day of first_seen_at
	AggregateSessionsByDay(ctx context.Context, timezone string) ([]SessionDayAggregate, error)
	// AggregateLeadsByDay counts all leads by listing and local day of created_at
	AggregateLeadsByDay(ctx context.Context, timezone string) ([]DayCount, error)
	// AggregatePageViewsByDay counts all logged page views by listing and local day of occurred_at
	AggregatePageViewsByDay(ctx context.Context, timezone string) ([]DayCount, error)

	// Ping checks the database connection
	Ping(ctx context.Context) error
}
