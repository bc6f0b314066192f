package schema

import (
	"time"

	"github.com/feral-file/ff-lead-analytics/internal/domain"
)

// ScanSession represents the scan_sessions table
// One row per (listing, correlation token) pair
type ScanSession struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ListingID references the listing the visitor landed on
	ListingID string `gorm:"column:listing_id;not null;type:text;uniqueIndex:idx_scan_sessions_listing_token,priority:1"`
	// SessionToken is the client-held correlation token
	SessionToken string `gorm:"column:session_token;not null;type:text;uniqueIndex:idx_scan_sessions_listing_token,priority:2"`
	// Source is the attribution of the session, sticky once it is qr
	Source *domain.Source `gorm:"column:source;type:text"`
	// ScanCount is the number of QR scans seen for this session
	ScanCount int `gorm:"column:scan_count;not null"`
	// DeviceType is the last observed device class
	DeviceType domain.DeviceType `gorm:"column:device_type;not null;type:text"`
	// TimeOfDay is the last observed hour (0-23) in the store timezone
	TimeOfDay int `gorm:"column:time_of_day;not null"`
	// Referrer is the last observed referrer
	Referrer *string `gorm:"column:referrer;type:text"`
	// FirstSeenAt is set once when the session is created
	FirstSeenAt time.Time `gorm:"column:first_seen_at;not null;type:timestamptz"`
	// LastSeenAt is the latest event time seen for this session
	LastSeenAt time.Time `gorm:"column:last_seen_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the ScanSession model
func (ScanSession) TableName() string {
	return "scan_sessions"
}

// IsQR reports whether the session has ever been attributed to a QR scan
func (s *ScanSession) IsQR() bool {
	return s.ScanCount > 0 || (s.Source != nil && *s.Source == domain.SourceQR)
}
