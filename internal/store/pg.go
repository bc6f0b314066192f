package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/store/schema"
)

// uniqueViolationCode is the PostgreSQL SQLSTATE for unique_violation
const uniqueViolationCode = "23505"

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// IsUniqueViolation reports whether err was caused by a uniqueness constraint
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// dateOf truncates t to its calendar date as a UTC midnight, the form date columns are read back in
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// insert creates a row inside a (nested) transaction so a unique violation
// only rolls back to the savepoint when the store already runs in a transaction
func (s *pgStore) insert(ctx context.Context, value any) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(value).Error
	})
	if IsUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

// =============================================================================
// Scan Session Operations
// =============================================================================

// GetScanSession retrieves the session for a listing and correlation token
func (s *pgStore) GetScanSession(ctx context.Context, listingID, sessionToken string) (*schema.ScanSession, error) {
	var session schema.ScanSession
	err := s.db.WithContext(ctx).
		Where("listing_id = ? AND session_token = ?", listingID, sessionToken).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get scan session: %w", err)
	}

	return &session, nil
}

// CreateScanSession inserts a new session
func (s *pgStore) CreateScanSession(ctx context.Context, session *schema.ScanSession) error {
	if err := s.insert(ctx, session); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("failed to create scan session: %w", err)
	}

	return nil
}

// UpdateScanSession applies an update to an existing session
func (s *pgStore) UpdateScanSession(ctx context.Context, id int64, update ScanSessionUpdate) error {
	updates := map[string]any{
		"device_type":  update.DeviceType,
		"time_of_day":  update.TimeOfDay,
		"last_seen_at": gorm.Expr("GREATEST(last_seen_at, ?)", update.SeenAt),
	}
	if update.Referrer != nil {
		updates["referrer"] = *update.Referrer
	}
	if update.IncrementScanCount {
		updates["scan_count"] = gorm.Expr("scan_count + 1")
	}
	if update.SetSourceQR {
		updates["source"] = domain.SourceQR
	} else if update.SourceIfUnset != nil {
		updates["source"] = gorm.Expr("COALESCE(source, ?)", *update.SourceIfUnset)
	}

	result := s.db.WithContext(ctx).
		Model(&schema.ScanSession{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update scan session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("scan session %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// FindRecentQRSession retrieves the newest QR session of a listing first seen at or after since
func (s *pgStore) FindRecentQRSession(ctx context.Context, listingID string, since time.Time) (*schema.ScanSession, error) {
	var session schema.ScanSession
	err := s.db.WithContext(ctx).
		Where("listing_id = ? AND source = ? AND first_seen_at >= ?", listingID, domain.SourceQR, since).
		Order("first_seen_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find recent qr session: %w", err)
	}

	return &session, nil
}

// CountSessionsFirstSeen counts sessions of a listing first seen in [start, end)
func (s *pgStore) CountSessionsFirstSeen(ctx context.Context, listingID string, start, end time.Time) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.ScanSession{}).
		Where("listing_id = ? AND first_seen_at >= ? AND first_seen_at < ?", listingID, start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count scan sessions: %w", err)
	}

	return int(count), nil
}

// =============================================================================
// Daily Analytics Operations
// =============================================================================

// GetDailyAnalytics retrieves the daily record of a listing
func (s *pgStore) GetDailyAnalytics(ctx context.Context, listingID string, day time.Time) (*schema.AnalyticsDaily, error) {
	var record schema.AnalyticsDaily
	err := s.db.WithContext(ctx).
		Where("listing_id = ? AND date = ?", listingID, datatypes.Date(dateOf(day))).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily analytics: %w", err)
	}

	return &record, nil
}

// CreateDailyAnalytics inserts a new daily record
func (s *pgStore) CreateDailyAnalytics(ctx context.Context, record *schema.AnalyticsDaily) error {
	record.Date = datatypes.Date(dateOf(record.Day()))
	if err := s.insert(ctx, record); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("failed to create daily analytics: %w", err)
	}

	return nil
}

// IncrementDailyAnalytics atomically adds counters to an existing daily record
func (s *pgStore) IncrementDailyAnalytics(ctx context.Context, listingID string, day time.Time, inc DailyIncrement) error {
	if inc.Scans < 0 || inc.PageViews < 0 || inc.Leads < 0 {
		return fmt.Errorf("daily analytics increments must not be negative")
	}

	updates := map[string]any{}
	if inc.Scans > 0 {
		updates["total_scans"] = gorm.Expr("total_scans + ?", inc.Scans)
	}
	if inc.PageViews > 0 {
		updates["page_views"] = gorm.Expr("page_views + ?", inc.PageViews)
	}
	if inc.Leads > 0 {
		updates["total_leads"] = gorm.Expr("total_leads + ?", inc.Leads)
	}
	if inc.UniqueVisitors != nil {
		updates["unique_visitors"] = gorm.Expr("GREATEST(unique_visitors, ?)", *inc.UniqueVisitors)
	}
	if len(updates) == 0 {
		return nil
	}

	result := s.db.WithContext(ctx).
		Model(&schema.AnalyticsDaily{}).
		Where("listing_id = ? AND date = ?", listingID, datatypes.Date(dateOf(day))).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to increment daily analytics: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("daily analytics %s/%s: %w", listingID, dateOf(day).Format(time.DateOnly), domain.ErrNotFound)
	}

	return nil
}

// OverwriteDailyAnalytics replaces the counters of an existing daily record with recomputed values
func (s *pgStore) OverwriteDailyAnalytics(ctx context.Context, listingID string, day time.Time, counts DailyCounts) error {
	result := s.db.WithContext(ctx).
		Model(&schema.AnalyticsDaily{}).
		Where("listing_id = ? AND date = ?", listingID, datatypes.Date(dateOf(day))).
		Updates(map[string]any{
			"total_scans":     counts.TotalScans,
			"total_leads":     counts.TotalLeads,
			"unique_visitors": counts.UniqueVisitors,
			"page_views":      gorm.Expr("GREATEST(page_views, ?)", counts.PageViewsFloor),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to overwrite daily analytics: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("daily analytics %s/%s: %w", listingID, dateOf(day).Format(time.DateOnly), domain.ErrNotFound)
	}

	return nil
}

// ListDailyAnalytics retrieves the daily records of a listing for days in [from, to]
func (s *pgStore) ListDailyAnalytics(ctx context.Context, listingID string, from, to time.Time) ([]schema.AnalyticsDaily, error) {
	var records []schema.AnalyticsDaily
	err := s.db.WithContext(ctx).
		Where("listing_id = ? AND date >= ? AND date <= ?", listingID, datatypes.Date(dateOf(from)), datatypes.Date(dateOf(to))).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list daily analytics: %w", err)
	}

	return records, nil
}

// =============================================================================
// Lead Operations
// =============================================================================

// CreateLead inserts a new lead
func (s *pgStore) CreateLead(ctx context.Context, lead *schema.Lead) error {
	if err := s.db.WithContext(ctx).Create(lead).Error; err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}

// ListLeads retrieves the leads of a listing created in [start, end)
func (s *pgStore) ListLeads(ctx context.Context, listingID string, start, end time.Time) ([]schema.Lead, error) {
	var leads []schema.Lead
	err := s.db.WithContext(ctx).
		Where("listing_id = ? AND created_at >= ? AND created_at < ?", listingID, start, end).
		Order("created_at ASC").
		Find(&leads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	return leads, nil
}

// =============================================================================
// Page View Log Operations
// =============================================================================

// AppendPageViewEvent records a page-view beacon in the append-only log
func (s *pgStore) AppendPageViewEvent(ctx context.Context, event *schema.PageViewEvent) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to append page view event: %w", err)
	}

	return nil
}

// =============================================================================
// Reconciliation Aggregates
// =============================================================================

// AggregateSessionsByDay groups all sessions by listing and local day of first_seen_at
func (s *pgStore) AggregateSessionsByDay(ctx context.Context, timezone string) ([]SessionDayAggregate, error) {
	var rows []SessionDayAggregate
	err := s.db.WithContext(ctx).Raw(`
		SELECT listing_id,
		       (first_seen_at AT TIME ZONE ?)::date AS day,
		       COUNT(*) AS sessions,
		       COALESCE(SUM(scan_count), 0) AS scans
		FROM scan_sessions
		GROUP BY listing_id, day
		ORDER BY listing_id, day`, timezone).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate scan sessions: %w", err)
	}

	return rows, nil
}

// AggregateLeadsByDay counts all leads by listing and local day of created_at
func (s *pgStore) AggregateLeadsByDay(ctx context.Context, timezone string) ([]DayCount, error) {
	var rows []DayCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT listing_id,
		       (created_at AT TIME ZONE ?)::date AS day,
		       COUNT(*) AS count
		FROM leads
		GROUP BY listing_id, day
		ORDER BY listing_id, day`, timezone).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leads: %w", err)
	}

	return rows, nil
}

// AggregatePageViewsByDay counts all logged page views by listing and local day of occurred_at
func (s *pgStore) AggregatePageViewsByDay(ctx context.Context, timezone string) ([]DayCount, error) {
	var rows []DayCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT listing_id,
		       (occurred_at AT TIME ZONE ?)::date AS day,
		       COUNT(*) AS count
		FROM page_view_events
		GROUP BY listing_id, day
		ORDER BY listing_id, day`, timezone).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate page views: %w", err)
	}

	return rows, nil
}

// Ping checks the database connection
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return sqlDB.PingContext(ctx)
}
