package schema

import "time"

// Lead represents the leads table
// Rows are owned by the lead-capture form; only scan_timestamp is derived here
type Lead struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	ListingID string  `gorm:"column:listing_id;not null;type:text"`
	Name      string  `gorm:"column:name;not null;type:text"`
	Email     string  `gorm:"column:email;not null;type:text"`
	Phone     *string `gorm:"column:phone;type:text"`
	Message   *string `gorm:"column:message;type:text"`
	// ScanTimestamp is copied from the correlated scan session at creation time
	ScanTimestamp *time.Time `gorm:"column:scan_timestamp;type:timestamptz"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}
