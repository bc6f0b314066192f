package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-lead-analytics/internal/adapter"
	"github.com/feral-file/ff-lead-analytics/internal/analytics"
	"github.com/feral-file/ff-lead-analytics/internal/logger"
	"github.com/feral-file/ff-lead-analytics/internal/metrics"
	"github.com/feral-file/ff-lead-analytics/internal/store"
	"github.com/feral-file/ff-lead-analytics/internal/store/schema"
	"github.com/feral-file/ff-lead-analytics/internal/upsert"
)

const (
	// DEFAULT_WORKERS is the number of groups reconciled concurrently
	DEFAULT_WORKERS = 4
	// DEFAULT_MAX_RETRIES is the number of retries of a failed group
	DEFAULT_MAX_RETRIES = 3
	// DEFAULT_RETRY_INTERVAL is the first retry delay of a failed group
	DEFAULT_RETRY_INTERVAL = 200 * time.Millisecond

	upsertTarget = "analytics"
)

// Config holds reconciler configuration
type Config struct {
	Workers       int
	MaxRetries    int
	RetryInterval time.Duration
}

// Summary reports what a reconciliation run wrote
type Summary struct {
	ListingsProcessed int `json:"listingsProcessed"`
	RecordsCreated    int `json:"recordsCreated"`
	RecordsUpdated    int `json:"recordsUpdated"`
	GroupsFailed      int `json:"groupsFailed"`
}

// Reconciler rebuilds daily analytics from sessions, leads and the page-view log
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// Run recomputes every (listing, day) record. Failed groups do not stop the run;
	// their errors are joined into the returned error.
	Run(ctx context.Context) (*Summary, error)
}

// group is the recomputed counters of one (listing, day)
type group struct {
	listingID string
	day       time.Time
	sessions  int
	scans     int
	leads     int
	pageViews int
}

func (g *group) pageViewsFloor() int {
	return max(g.scans, g.pageViews)
}

type reconciler struct {
	store    store.Store
	calendar *analytics.Calendar
	clock    adapter.Clock
	cfg      Config
}

// NewReconciler creates a new reconciler, applying defaults for empty settings
func NewReconciler(st store.Store, calendar *analytics.Calendar, clock adapter.Clock, cfg Config) Reconciler {
	if cfg.Workers <= 0 {
		cfg.Workers = DEFAULT_WORKERS
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = DEFAULT_MAX_RETRIES
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DEFAULT_RETRY_INTERVAL
	}
	return &reconciler{
		store:    st,
		calendar: calendar,
		clock:    clock,
		cfg:      cfg,
	}
}

func (r *reconciler) Run(ctx context.Context) (*Summary, error) {
	startTime := r.clock.Now()
	logger.InfoCtx(ctx, "Starting reconciliation",
		zap.String("timezone", r.calendar.Timezone()),
		zap.Int("workers", r.cfg.Workers))

	groups, err := r.loadGroups(ctx)
	if err != nil {
		metrics.RecordReconcileRun(r.clock.Since(startTime), 0, 0, 0, err)
		return &Summary{}, err
	}

	summary := &Summary{ListingsProcessed: countListings(groups)}
	var (
		mu   sync.Mutex
		errs []error
	)

	pool := pond.NewPool(r.cfg.Workers, pond.WithContext(ctx))
	for _, g := range groups {
		pool.Submit(func() {
			outcome, err := r.reconcileGroupWithRetry(ctx, g)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.GroupsFailed++
				errs = append(errs, err)
				return
			}
			if outcome == upsert.OutcomeCreated {
				summary.RecordsCreated++
			} else {
				summary.RecordsUpdated++
			}
		})
	}
	pool.StopAndWait()

	// Groups never submitted because the context ended count as failed
	if done := summary.RecordsCreated + summary.RecordsUpdated + summary.GroupsFailed; done < len(groups) {
		summary.GroupsFailed += len(groups) - done
		errs = append(errs, fmt.Errorf("%d groups not reconciled: %w", len(groups)-done, context.Cause(ctx)))
	}

	err = errors.Join(errs...)
	duration := r.clock.Since(startTime)
	metrics.RecordReconcileRun(duration, summary.RecordsCreated, summary.RecordsUpdated, summary.GroupsFailed, err)

	fields := []zap.Field{
		zap.Int("listings_processed", summary.ListingsProcessed),
		zap.Int("records_created", summary.RecordsCreated),
		zap.Int("records_updated", summary.RecordsUpdated),
		zap.Int("groups_failed", summary.GroupsFailed),
		zap.Duration("duration", duration),
	}
	if err != nil {
		logger.WarnCtx(ctx, "Reconciliation finished with failures", append(fields, zap.Error(err))...)
		return summary, err
	}
	logger.InfoCtx(ctx, "Reconciliation finished", fields...)

	return summary, nil
}

// loadGroups merges the session, lead and page-view aggregates by (listing, day)
func (r *reconciler) loadGroups(ctx context.Context) ([]*group, error) {
	tz := r.calendar.Timezone()

	sessions, err := r.store.AggregateSessionsByDay(ctx, tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load session aggregates: %w", err)
	}
	leadCounts, err := r.store.AggregateLeadsByDay(ctx, tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load lead aggregates: %w", err)
	}
	pageViewCounts, err := r.store.AggregatePageViewsByDay(ctx, tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load page view aggregates: %w", err)
	}

	byKey := make(map[string]*group)
	get := func(listingID string, day time.Time) *group {
		day = time.Time(analytics.DateOf(day))
		key := listingID + "|" + day.Format(time.DateOnly)
		g, ok := byKey[key]
		if !ok {
			g = &group{listingID: listingID, day: day}
			byKey[key] = g
		}
		return g
	}

	for _, s := range sessions {
		g := get(s.ListingID, s.Day)
		g.sessions += s.Sessions
		g.scans += s.Scans
	}
	for _, l := range leadCounts {
		get(l.ListingID, l.Day).leads += l.Count
	}
	for _, p := range pageViewCounts {
		get(p.ListingID, p.Day).pageViews += p.Count
	}

	groups := make([]*group, 0, len(byKey))
	for _, g := range byKey {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].listingID != groups[j].listingID {
			return groups[i].listingID < groups[j].listingID
		}
		return groups[i].day.Before(groups[j].day)
	})

	return groups, nil
}

func (r *reconciler) reconcileGroupWithRetry(ctx context.Context, g *group) (upsert.Outcome, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.RetryInterval
	b.MaxInterval = 10 * r.cfg.RetryInterval
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	var outcome upsert.Outcome
	operation := func() error {
		var err error
		outcome, err = r.reconcileGroup(ctx, g)
		return err
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Reconciling daily record failed, retrying",
			logger.Listing(g.listingID),
			logger.Day(g.day),
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.cfg.MaxRetries)), ctx)
	if err := backoff.RetryNotify(operation, policy, notifyOnError); err != nil {
		return "", fmt.Errorf("failed to reconcile %s/%s after %d attempts: %w",
			g.listingID, g.day.Format(time.DateOnly), attemptCount+1, err)
	}

	return outcome, nil
}

// reconcileGroup writes one recomputed record through the same upsert path as live traffic
func (r *reconciler) reconcileGroup(ctx context.Context, g *group) (upsert.Outcome, error) {
	return upsert.Execute(ctx, upsert.Ops[schema.AnalyticsDaily]{
		Target: upsertTarget,
		Find: func(ctx context.Context) (*schema.AnalyticsDaily, error) {
			return r.store.GetDailyAnalytics(ctx, g.listingID, g.day)
		},
		Create: func(ctx context.Context) error {
			return r.store.CreateDailyAnalytics(ctx, &schema.AnalyticsDaily{
				ListingID:      g.listingID,
				Date:           analytics.DateOf(g.day),
				TotalScans:     g.scans,
				TotalLeads:     g.leads,
				UniqueVisitors: g.sessions,
				PageViews:      g.pageViewsFloor(),
			})
		},
		Update: func(ctx context.Context, _ *schema.AnalyticsDaily, _ bool) error {
			return r.store.OverwriteDailyAnalytics(ctx, g.listingID, g.day, store.DailyCounts{
				TotalScans:     g.scans,
				TotalLeads:     g.leads,
				UniqueVisitors: g.sessions,
				PageViewsFloor: g.pageViewsFloor(),
			})
		},
	})
}

func countListings(groups []*group) int {
	seen := make(map[string]struct{})
	for _, g := range groups {
		seen[g.listingID] = struct{}{}
	}
	return len(seen)
}
