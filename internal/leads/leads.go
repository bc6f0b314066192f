package leads

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-lead-analytics/internal/adapter"
	"github.com/feral-file/ff-lead-analytics/internal/analytics"
	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/logger"
	"github.com/feral-file/ff-lead-analytics/internal/metrics"
	"github.com/feral-file/ff-lead-analytics/internal/store"
	"github.com/feral-file/ff-lead-analytics/internal/store/schema"
)

// LeadInput is a lead submitted by the listing's contact form
type LeadInput struct {
	ListingID string
	Name      string
	Email     string
	Phone     *string
	Message   *string
	// Source is the attribution source reported by the form, if any
	Source string
	// Referrer is the page the form was submitted from
	Referrer string
	// SessionToken is the visitor's correlation token, empty when the request had none
	SessionToken string
	// CreatedAt defaults to now
	CreatedAt time.Time
}

// Correlator links leads back to the scan that produced them
//
//go:generate mockgen -source=leads.go -destination=../mocks/leads.go -package=mocks -mock_names=Correlator=MockCorrelator
type Correlator interface {
	// ScanTimestamp returns the scan time to store on a lead, nil when neither the submission
	// nor the visitor's session is QR attributed
	ScanTimestamp(ctx context.Context, listingID, sessionToken string, fromQR bool, createdAt time.Time) *time.Time
	// Submit creates a lead with its correlated scan timestamp and counts it in daily analytics
	Submit(ctx context.Context, input LeadInput) (*schema.Lead, error)
}

type correlator struct {
	store      store.Store
	aggregator analytics.Aggregator
	calendar   *analytics.Calendar
	clock      adapter.Clock
}

// NewCorrelator creates a new time-to-lead correlator
func NewCorrelator(st store.Store, aggregator analytics.Aggregator, calendar *analytics.Calendar, clock adapter.Clock) Correlator {
	return &correlator{
		store:      st,
		aggregator: aggregator,
		calendar:   calendar,
		clock:      clock,
	}
}

// IsQRAttributed reports whether a lead came from a QR scan, either by its
// explicit source or by a referrer pointing at a scan or carrying QR tracking parameters
func IsQRAttributed(source, referrer string) bool {
	if strings.EqualFold(strings.TrimSpace(source), string(domain.SourceQR)) {
		return true
	}
	if referrer == "" {
		return false
	}

	u, err := url.Parse(referrer)
	if err != nil {
		return false
	}
	if strings.Contains(u.Path, "/scan/") {
		return true
	}

	query := u.Query()
	for _, key := range []string{"src", "utm_medium", "utm_source"} {
		if strings.EqualFold(query.Get(key), string(domain.SourceQR)) {
			return true
		}
	}
	return false
}

func (c *correlator) ScanTimestamp(ctx context.Context, listingID, sessionToken string, fromQR bool, createdAt time.Time) *time.Time {
	var session *schema.ScanSession
	if sessionToken != "" {
		found, err := c.store.GetScanSession(ctx, listingID, sessionToken)
		switch {
		case err != nil:
			logger.WarnCtx(ctx, "Failed to look up scan session", zap.Error(err))
		case found == nil:
			logger.DebugCtx(ctx, "No scan session for lead")
		default:
			session = found
		}
	}

	// A session that has scanned attributes the lead even when the form and referrer carry no QR marker
	if !fromQR && (session == nil || !session.IsQR()) {
		return nil
	}

	scannedAt := createdAt
	if session != nil {
		switch {
		case !session.FirstSeenAt.IsZero():
			scannedAt = session.FirstSeenAt
		case !session.LastSeenAt.IsZero():
			scannedAt = session.LastSeenAt
		}
	}

	// A scan can never be later than the lead it produced
	if scannedAt.After(createdAt) {
		scannedAt = createdAt
	}
	return &scannedAt
}

func (c *correlator) Submit(ctx context.Context, input LeadInput) (*schema.Lead, error) {
	if !domain.ListingID(input.ListingID).Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidListingID, input.ListingID)
	}

	ctx = logger.WithFields(ctx,
		logger.Listing(input.ListingID),
		logger.EventKind(string(domain.EventKindLead)))
	if input.SessionToken != "" {
		ctx = logger.WithFields(ctx, logger.SessionToken(input.SessionToken))
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = c.clock.Now()
	}
	fromQR := IsQRAttributed(input.Source, input.Referrer)

	lead := &schema.Lead{
		ListingID:     input.ListingID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Message:       input.Message,
		ScanTimestamp: c.ScanTimestamp(ctx, input.ListingID, input.SessionToken, fromQR, createdAt),
		CreatedAt:     createdAt,
	}
	if err := c.store.CreateLead(ctx, lead); err != nil {
		metrics.RecordDroppedEvent(string(domain.EventKindLead), "lead")
		return nil, err
	}
	metrics.RecordEvent(string(domain.EventKindLead), "create")

	if err := c.aggregator.RecordLead(ctx, input.ListingID, createdAt); err != nil {
		metrics.RecordDroppedEvent(string(domain.EventKindLead), "analytics")
		logger.ErrorCtx(ctx, fmt.Errorf("failed to update daily analytics: %w", err), logger.Day(c.calendar.Day(createdAt)))
	}

	return lead, nil
}

// TimeToLead returns how long after its scan a lead was submitted.
// Only values in [0, 7 days) are meaningful.
func TimeToLead(lead schema.Lead) (time.Duration, bool) {
	if lead.ScanTimestamp == nil {
		return 0, false
	}
	d := lead.CreatedAt.Sub(*lead.ScanTimestamp)
	if d < 0 || d >= domain.MAX_TIME_TO_LEAD {
		return 0, false
	}
	return d, true
}

// AverageTimeToLead averages the meaningful time-to-lead values of leads.
// It returns the number of leads averaged, zero when none qualify.
func AverageTimeToLead(leads []schema.Lead) (time.Duration, int) {
	var total time.Duration
	count := 0
	for _, lead := range leads {
		d, ok := TimeToLead(lead)
		if !ok {
			continue
		}
		total += d
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return total / time.Duration(count), count
}
