package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/store"
	"github.com/feral-file/ff-lead-analytics/internal/store/schema"
	"github.com/feral-file/ff-lead-analytics/internal/upsert"
)

// upsertTarget labels daily analytics upserts in logs and metrics
const upsertTarget = "analytics"

// Aggregator maintains the per listing, per local day analytics counters
//
//go:generate mockgen -source=analytics.go -destination=../mocks/analytics.go -package=mocks -mock_names=Aggregator=MockAggregator
type Aggregator interface {
	// RecordScan counts a QR scan and refreshes unique visitors for the day of at
	RecordScan(ctx context.Context, listingID string, at time.Time) error
	// RecordPageView counts a page view and refreshes unique visitors for the day of at
	RecordPageView(ctx context.Context, listingID string, at time.Time) error
	// RecordLead counts a lead for the day of at
	RecordLead(ctx context.Context, listingID string, at time.Time) error
}

type aggregator struct {
	store    store.Store
	calendar *Calendar
}

// NewAggregator creates a new daily analytics aggregator
func NewAggregator(st store.Store, calendar *Calendar) Aggregator {
	return &aggregator{store: st, calendar: calendar}
}

func (a *aggregator) RecordScan(ctx context.Context, listingID string, at time.Time) error {
	return a.record(ctx, listingID, at, domain.EventKindScan)
}

func (a *aggregator) RecordPageView(ctx context.Context, listingID string, at time.Time) error {
	return a.record(ctx, listingID, at, domain.EventKindPageView)
}

func (a *aggregator) RecordLead(ctx context.Context, listingID string, at time.Time) error {
	return a.record(ctx, listingID, at, domain.EventKindLead)
}

func (a *aggregator) record(ctx context.Context, listingID string, at time.Time, kind domain.EventKind) error {
	day := a.calendar.Day(at)

	inc := store.DailyIncrement{}
	switch kind {
	case domain.EventKindScan:
		inc.Scans = 1
	case domain.EventKindPageView:
		inc.PageViews = 1
	case domain.EventKindLead:
		inc.Leads = 1
	default:
		return fmt.Errorf("unsupported event kind: %s", kind)
	}

	// Visitor-producing events refresh unique_visitors from the sessions table
	if kind != domain.EventKindLead {
		start, end := a.calendar.Bounds(day)
		visitors, err := a.store.CountSessionsFirstSeen(ctx, listingID, start, end)
		if err != nil {
			return fmt.Errorf("failed to count unique visitors: %w", err)
		}
		inc.UniqueVisitors = &visitors
	}

	_, err := upsert.Execute(ctx, upsert.Ops[schema.AnalyticsDaily]{
		Target: upsertTarget,
		Find: func(ctx context.Context) (*schema.AnalyticsDaily, error) {
			return a.store.GetDailyAnalytics(ctx, listingID, day)
		},
		Create: func(ctx context.Context) error {
			record := &schema.AnalyticsDaily{
				ListingID:  listingID,
				Date:       DateOf(day),
				TotalScans: inc.Scans,
				TotalLeads: inc.Leads,
				PageViews:  inc.PageViews,
			}
			if inc.UniqueVisitors != nil {
				record.UniqueVisitors = *inc.UniqueVisitors
			}
			return a.store.CreateDailyAnalytics(ctx, record)
		},
		Update: func(ctx context.Context, _ *schema.AnalyticsDaily, _ bool) error {
			return a.store.IncrementDailyAnalytics(ctx, listingID, day, inc)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to record %s for %s: %w", kind, day.Format(time.DateOnly), err)
	}

	return nil
}
