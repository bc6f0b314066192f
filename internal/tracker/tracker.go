package tracker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-lead-analytics/internal/analytics"
	"github.com/feral-file/ff-lead-analytics/internal/attribution"
	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/logger"
	"github.com/feral-file/ff-lead-analytics/internal/metrics"
	"github.com/feral-file/ff-lead-analytics/internal/store"
	"github.com/feral-file/ff-lead-analytics/internal/store/schema"
	"github.com/feral-file/ff-lead-analytics/internal/upsert"
)

// upsertTarget labels scan session upserts in logs and metrics
const upsertTarget = "scan_sessions"

// ScanInput is a QR scan of a listing
type ScanInput struct {
	ListingID    string
	SessionToken string
	UserAgent    string
	Referrer     *string
	OccurredAt   time.Time
}

// PageViewInput is a page-view beacon from a listing page
type PageViewInput struct {
	ListingID    string
	SessionToken string
	Source       domain.Source
	UserAgent    string
	Referrer     *string
	OccurredAt   time.Time
}

// Result describes how an event was applied to its session
type Result struct {
	// SessionToken is the token the client should keep, which differs from the
	// input token when the page view was attributed to a recent QR session
	SessionToken string
	Action       attribution.Action
	Outcome      upsert.Outcome
	Adopted      bool
}

// Config holds tracker configuration
type Config struct {
	// QRFallbackWindow is how far back a page view without a session may be
	// attributed to a QR session of the same listing, 0 disables it
	QRFallbackWindow time.Duration
}

// Tracker applies scan and page-view events to scan sessions and daily analytics
//
//go:generate mockgen -source=tracker.go -destination=../mocks/tracker.go -package=mocks -mock_names=Tracker=MockTracker
type Tracker interface {
	// TrackScan records a QR scan
	TrackScan(ctx context.Context, input ScanInput) (*Result, error)
	// TrackPageView records a page view
	TrackPageView(ctx context.Context, input PageViewInput) (*Result, error)
}

type tracker struct {
	store      store.Store
	aggregator analytics.Aggregator
	calendar   *analytics.Calendar
	cfg        Config
}

// NewTracker creates a new event tracker
func NewTracker(st store.Store, aggregator analytics.Aggregator, calendar *analytics.Calendar, cfg Config) Tracker {
	return &tracker{
		store:      st,
		aggregator: aggregator,
		calendar:   calendar,
		cfg:        cfg,
	}
}

func (t *tracker) TrackScan(ctx context.Context, input ScanInput) (*Result, error) {
	if err := validate(input.ListingID, input.SessionToken); err != nil {
		return nil, err
	}

	ev := t.event(input.ListingID, input.SessionToken, domain.SourceQR, input.UserAgent, input.Referrer, input.OccurredAt)
	ctx = logger.WithFields(ctx,
		logger.Listing(ev.ListingID),
		logger.SessionToken(ev.SessionToken),
		logger.EventKind(string(domain.EventKindScan)))

	result, mutation, err := t.apply(ctx, ev)
	if err != nil {
		metrics.RecordDroppedEvent(string(domain.EventKindScan), "session")
		return nil, err
	}
	metrics.RecordEvent(string(domain.EventKindScan), string(result.Action))

	// A QR event that collapsed into a concurrent first scan is not a new scan
	if mutation.CountsScan() {
		if err := t.aggregator.RecordScan(ctx, ev.ListingID, ev.OccurredAt); err != nil {
			t.logPartialFailure(ctx, domain.EventKindScan, ev.OccurredAt, err)
		}
	}

	return result, nil
}

func (t *tracker) TrackPageView(ctx context.Context, input PageViewInput) (*Result, error) {
	if err := validate(input.ListingID, input.SessionToken); err != nil {
		return nil, err
	}
	if !domain.IsPageViewSource(input.Source) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSource, input.Source)
	}

	ev := t.event(input.ListingID, input.SessionToken, input.Source, input.UserAgent, input.Referrer, input.OccurredAt)
	ctx = logger.WithFields(ctx,
		logger.Listing(ev.ListingID),
		logger.EventKind(string(domain.EventKindPageView)))

	adopted := t.adoptRecentQRSession(ctx, &ev)
	ctx = logger.WithFields(ctx, logger.SessionToken(ev.SessionToken))

	result, _, err := t.apply(ctx, ev)
	if err != nil {
		metrics.RecordDroppedEvent(string(domain.EventKindPageView), "session")
		return nil, err
	}
	result.Adopted = adopted
	metrics.RecordEvent(string(domain.EventKindPageView), string(result.Action))

	if err := t.store.AppendPageViewEvent(ctx, &schema.PageViewEvent{
		ListingID:    ev.ListingID,
		SessionToken: ev.SessionToken,
		Source:       input.Source,
		OccurredAt:   ev.OccurredAt,
	}); err != nil {
		metrics.RecordDroppedEvent(string(domain.EventKindPageView), "log")
		logger.ErrorCtx(ctx, fmt.Errorf("failed to append page view event: %w", err))
	}

	if err := t.aggregator.RecordPageView(ctx, ev.ListingID, ev.OccurredAt); err != nil {
		t.logPartialFailure(ctx, domain.EventKindPageView, ev.OccurredAt, err)
	}

	return result, nil
}

// apply upserts the session of an event through the attribution policy
func (t *tracker) apply(ctx context.Context, ev attribution.Event) (*Result, attribution.Mutation, error) {
	var mutation attribution.Mutation

	outcome, err := upsert.Execute(ctx, upsert.Ops[schema.ScanSession]{
		Target: upsertTarget,
		Find: func(ctx context.Context) (*schema.ScanSession, error) {
			return t.store.GetScanSession(ctx, ev.ListingID, ev.SessionToken)
		},
		Create: func(ctx context.Context) error {
			mutation = attribution.PlanAction(attribution.ActionCreate, ev)
			return t.store.CreateScanSession(ctx, mutation.Session)
		},
		Update: func(ctx context.Context, existing *schema.ScanSession, recovered bool) error {
			action := attribution.Decide(existing, ev)
			if recovered {
				action = attribution.AfterConflict(existing, ev)
			}
			mutation = attribution.PlanAction(action, ev)
			return t.store.UpdateScanSession(ctx, existing.ID, mutation.Update)
		},
	})
	if err != nil {
		return nil, attribution.Mutation{}, fmt.Errorf("failed to apply %s event to scan session: %w", ev.Source, err)
	}

	logger.DebugCtx(ctx, "Scan session updated",
		zap.String("action", string(mutation.Action)),
		zap.String("outcome", string(outcome)))

	return &Result{
		SessionToken: ev.SessionToken,
		Action:       mutation.Action,
		Outcome:      outcome,
	}, mutation, nil
}

// adoptRecentQRSession points a page view without its own session at a QR session
// of the same listing first seen within the fallback window
func (t *tracker) adoptRecentQRSession(ctx context.Context, ev *attribution.Event) bool {
	if t.cfg.QRFallbackWindow <= 0 {
		return false
	}

	existing, err := t.store.GetScanSession(ctx, ev.ListingID, ev.SessionToken)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to look up session for qr fallback", zap.Error(err))
		return false
	}
	if existing != nil {
		return false
	}

	recent, err := t.store.FindRecentQRSession(ctx, ev.ListingID, ev.OccurredAt.Add(-t.cfg.QRFallbackWindow))
	if err != nil {
		logger.WarnCtx(ctx, "Failed to look up recent qr session", zap.Error(err))
		return false
	}
	if recent == nil || recent.FirstSeenAt.After(ev.OccurredAt) {
		return false
	}

	logger.DebugCtx(ctx, "Attributing page view to recent qr session",
		zap.String("adopted_session_token", recent.SessionToken))
	ev.SessionToken = recent.SessionToken
	return true
}

func (t *tracker) event(listingID, token string, source domain.Source, userAgent string, referrer *string, at time.Time) attribution.Event {
	if referrer != nil && *referrer == "" {
		referrer = nil
	}
	return attribution.Event{
		ListingID:    listingID,
		SessionToken: token,
		Source:       source,
		DeviceType:   domain.DeviceTypeFromUserAgent(userAgent),
		Hour:         t.calendar.Hour(at),
		Referrer:     referrer,
		OccurredAt:   at,
	}
}

// logPartialFailure logs an analytics write lost after its session write committed.
// The fields identify the day the reconciler has to rebuild.
func (t *tracker) logPartialFailure(ctx context.Context, kind domain.EventKind, at time.Time, err error) {
	metrics.RecordDroppedEvent(string(kind), "analytics")
	logger.ErrorCtx(ctx, fmt.Errorf("failed to update daily analytics: %w", err), logger.Day(t.calendar.Day(at)))
}

func validate(listingID, token string) error {
	if !domain.ListingID(listingID).Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidListingID, listingID)
	}
	if token == "" {
		return fmt.Errorf("session token is required")
	}
	return nil
}
