package tracker_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lead-analytics/internal/analytics"
	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/store"
	"github.com/feral-file/ff-lead-analytics/internal/store/schema"
	"github.com/feral-file/ff-lead-analytics/internal/testutil/pgtest"
	"github.com/feral-file/ff-lead-analytics/internal/tracker"
)

// racingStore holds the first n session lookups until all of them arrived,
// so every caller observes the session as absent and races on the insert
type racingStore struct {
	store.Store
	calls   atomic.Int32
	n       int32
	arrived sync.WaitGroup
}

func newRacingStore(st store.Store, n int) *racingStore {
	r := &racingStore{Store: st, n: int32(n)}
	r.arrived.Add(n)
	return r
}

func (r *racingStore) GetScanSession(ctx context.Context, listingID, sessionToken string) (*schema.ScanSession, error) {
	session, err := r.Store.GetScanSession(ctx, listingID, sessionToken)
	if r.calls.Add(1) <= r.n {
		r.arrived.Done()
		r.arrived.Wait()
	}
	return session, err
}

type consistencyEnv struct {
	db       *pgtest.Database
	calendar *analytics.Calendar
}

func (e *consistencyEnv) tracker(st store.Store, window time.Duration) tracker.Tracker {
	return tracker.NewTracker(st, analytics.NewAggregator(st, e.calendar), e.calendar, tracker.Config{QRFallbackWindow: window})
}

func (e *consistencyEnv) sessions(t *testing.T) []schema.ScanSession {
	var sessions []schema.ScanSession
	require.NoError(t, e.db.DB.Where("listing_id = ?", testListingID).Find(&sessions).Error)
	return sessions
}

func (e *consistencyEnv) daily(t *testing.T) schema.AnalyticsDaily {
	var records []schema.AnalyticsDaily
	require.NoError(t, e.db.DB.Where("listing_id = ?", testListingID).Find(&records).Error)
	require.Len(t, records, 1)
	return records[0]
}

func TestTrackerConsistency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()
	db, err := pgtest.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Terminate(ctx) })

	calendar, err := analytics.NewCalendar("UTC")
	require.NoError(t, err)
	env := &consistencyEnv{db: db, calendar: calendar}

	at := func(hhmm string) time.Time {
		ts, err := time.Parse("2006-01-02 15:04", "2024-05-01 "+hhmm)
		require.NoError(t, err)
		return ts
	}

	t.Run("page view after a scan keeps qr attribution", func(t *testing.T) {
		db.Reset(t)
		st := store.NewPGStore(db.DB)
		tr := env.tracker(st, 0)
		referrer := "https://listing.example.com/flyer"

		_, err := tr.TrackScan(ctx, tracker.ScanInput{
			ListingID: testListingID, SessionToken: tokenA, UserAgent: iPhoneUA, OccurredAt: at("10:00"),
		})
		require.NoError(t, err)
		_, err = tr.TrackPageView(ctx, tracker.PageViewInput{
			ListingID: testListingID, SessionToken: tokenA, Source: domain.SourceDirect,
			UserAgent: iPhoneUA, Referrer: &referrer, OccurredAt: at("10:02"),
		})
		require.NoError(t, err)

		sessions := env.sessions(t)
		require.Len(t, sessions, 1)
		session := sessions[0]
		assert.Equal(t, 1, session.ScanCount)
		require.NotNil(t, session.Source)
		assert.Equal(t, domain.SourceQR, *session.Source)
		assert.True(t, session.LastSeenAt.Equal(at("10:02")))
		require.NotNil(t, session.Referrer)
		assert.Equal(t, referrer, *session.Referrer)

		daily := env.daily(t)
		assert.Equal(t, 1, daily.TotalScans)
		assert.Equal(t, 1, daily.PageViews)
		assert.Equal(t, 1, daily.UniqueVisitors)
	})

	t.Run("concurrent first scans collapse into one counted scan", func(t *testing.T) {
		db.Reset(t)
		st := newRacingStore(store.NewPGStore(db.DB), 2)
		tr := env.tracker(st, 0)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, ts := range []time.Time{at("10:00"), at("10:01")} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = tr.TrackScan(ctx, tracker.ScanInput{
					ListingID: testListingID, SessionToken: tokenA, UserAgent: iPhoneUA, OccurredAt: ts,
				})
			}()
		}
		wg.Wait()
		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		sessions := env.sessions(t)
		require.Len(t, sessions, 1)
		assert.Equal(t, 1, sessions[0].ScanCount)
		assert.True(t, sessions[0].LastSeenAt.Equal(at("10:01")))
		assert.Equal(t, 1, env.daily(t).TotalScans)
	})

	t.Run("page view without a session joins a recent qr session", func(t *testing.T) {
		db.Reset(t)
		st := store.NewPGStore(db.DB)
		tr := env.tracker(st, 5*time.Minute)

		_, err := tr.TrackScan(ctx, tracker.ScanInput{
			ListingID: testListingID, SessionToken: tokenA, UserAgent: iPhoneUA, OccurredAt: at("10:00"),
		})
		require.NoError(t, err)
		result, err := tr.TrackPageView(ctx, tracker.PageViewInput{
			ListingID: testListingID, SessionToken: tokenB, Source: domain.SourceMicrosite,
			UserAgent: iPhoneUA, OccurredAt: at("10:03"),
		})
		require.NoError(t, err)
		assert.True(t, result.Adopted)
		assert.Equal(t, tokenA, result.SessionToken)

		sessions := env.sessions(t)
		require.Len(t, sessions, 1)
		assert.Equal(t, tokenA, sessions[0].SessionToken)
		assert.Equal(t, 1, sessions[0].ScanCount)
	})

	t.Run("concurrent mixed events keep one row per token", func(t *testing.T) {
		db.Reset(t)
		st := store.NewPGStore(db.DB)
		tr := env.tracker(st, 0)

		const events = 24
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			failures []error
		)
		for i := 0; i < events; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ts := at("10:00").Add(time.Duration(i) * time.Second)
				var err error
				if i%3 == 0 {
					_, err = tr.TrackScan(ctx, tracker.ScanInput{
						ListingID: testListingID, SessionToken: tokenA, UserAgent: iPhoneUA, OccurredAt: ts,
					})
				} else {
					_, err = tr.TrackPageView(ctx, tracker.PageViewInput{
						ListingID: testListingID, SessionToken: tokenA, Source: domain.SourceMicrosite,
						UserAgent: iPhoneUA, OccurredAt: ts,
					})
				}
				if err != nil {
					mu.Lock()
					failures = append(failures, fmt.Errorf("event %d: %w", i, err))
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		require.Empty(t, failures)

		sessions := env.sessions(t)
		require.Len(t, sessions, 1)
		session := sessions[0]
		require.NotNil(t, session.Source)
		assert.Equal(t, domain.SourceQR, *session.Source)
		assert.GreaterOrEqual(t, session.ScanCount, 1)
		assert.LessOrEqual(t, session.ScanCount, events/3)
		assert.True(t, session.LastSeenAt.Equal(at("10:00").Add((events-1)*time.Second)))

		daily := env.daily(t)
		assert.Equal(t, session.ScanCount, daily.TotalScans)
		assert.Equal(t, events-events/3, daily.PageViews)
		assert.Equal(t, 1, daily.UniqueVisitors)

		var logged int64
		require.NoError(t, db.DB.Model(&schema.PageViewEvent{}).Count(&logged).Error)
		assert.EqualValues(t, events-events/3, logged)
	})
}
