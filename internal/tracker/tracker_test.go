package tracker_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lead-analytics/internal/analytics"
	"github.com/feral-file/ff-lead-analytics/internal/attribution"
	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/logger"
	"github.com/feral-file/ff-lead-analytics/internal/mocks"
	"github.com/feral-file/ff-lead-analytics/internal/store"
	"github.com/feral-file/ff-lead-analytics/internal/store/schema"
	"github.com/feral-file/ff-lead-analytics/internal/tracker"
	"github.com/feral-file/ff-lead-analytics/internal/upsert"
)

const (
	testListingID = "6f1c2c1e-9b7a-4b8e-8a55-2f4f0a1d9c3e"
	tokenA        = "01HV5Z8Y7W6X5V4T3S2R1Q0P9A"
	tokenB        = "01HV5Z8Y7W6X5V4T3S2R1Q0P9B"
	iPhoneUA      = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testTrackerMocks struct {
	ctrl       *gomock.Controller
	store      *mocks.MockStore
	aggregator *mocks.MockAggregator
	tracker    tracker.Tracker
}

func setupTestTracker(t *testing.T, window time.Duration) *testTrackerMocks {
	ctrl := gomock.NewController(t)
	calendar, err := analytics.NewCalendar("UTC")
	require.NoError(t, err)

	tm := &testTrackerMocks{
		ctrl:       ctrl,
		store:      mocks.NewMockStore(ctrl),
		aggregator: mocks.NewMockAggregator(ctrl),
	}
	tm.tracker = tracker.NewTracker(tm.store, tm.aggregator, calendar, tracker.Config{QRFallbackWindow: window})
	return tm
}

func sourcePtr(s domain.Source) *domain.Source {
	return &s
}

func TestTrackScan_FirstScanCreatesSession(t *testing.T) {
	tm := setupTestTracker(t, 5*time.Minute)
	ctx := context.Background()
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenA).Return(nil, nil)
	tm.store.EXPECT().
		CreateScanSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, s *schema.ScanSession) error {
			assert.Equal(t, testListingID, s.ListingID)
			assert.Equal(t, tokenA, s.SessionToken)
			assert.Equal(t, domain.SourceQR, *s.Source)
			assert.Equal(t, 1, s.ScanCount)
			assert.Equal(t, domain.DeviceMobile, s.DeviceType)
			assert.Equal(t, 10, s.TimeOfDay)
			return nil
		})
	tm.aggregator.EXPECT().RecordScan(gomock.Any(), testListingID, at).Return(nil)

	result, err := tm.tracker.TrackScan(ctx, tracker.ScanInput{
		ListingID:    testListingID,
		SessionToken: tokenA,
		UserAgent:    iPhoneUA,
		OccurredAt:   at,
	})

	require.NoError(t, err)
	assert.Equal(t, tokenA, result.SessionToken)
	assert.Equal(t, attribution.ActionCreate, result.Action)
	assert.Equal(t, upsert.OutcomeCreated, result.Outcome)
}

func TestTrackScan_RepeatScanIncrements(t *testing.T) {
	tm := setupTestTracker(t, 5*time.Minute)
	ctx := context.Background()
	at := time.Date(2024, 3, 9, 10, 5, 0, 0, time.UTC)

	existing := &schema.ScanSession{ID: 42, ListingID: testListingID, SessionToken: tokenA, Source: sourcePtr(domain.SourceQR), ScanCount: 1}
	tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenA).Return(existing, nil)
	tm.store.EXPECT().
		UpdateScanSession(gomock.Any(), int64(42), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id int64, u store.ScanSessionUpdate) error {
			assert.True(t, u.IncrementScanCount)
			assert.True(t, u.SetSourceQR)
			assert.Equal(t, at, u.SeenAt)
			return nil
		})
	tm.aggregator.EXPECT().RecordScan(gomock.Any(), testListingID, at).Return(nil)

	result, err := tm.tracker.TrackScan(ctx, tracker.ScanInput{ListingID: testListingID, SessionToken: tokenA, OccurredAt: at})

	require.NoError(t, err)
	assert.Equal(t, attribution.ActionIncrementScanCount, result.Action)
	assert.Equal(t, upsert.OutcomeUpdated, result.Outcome)
}

func TestTrackScan_ConcurrentFirstScanCollapses(t *testing.T) {
	tm := setupTestTracker(t, 5*time.Minute)
	ctx := context.Background()
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	winner := &schema.ScanSession{ID: 7, ListingID: testListingID, SessionToken: tokenA, Source: sourcePtr(domain.SourceQR), ScanCount: 1}
	gomock.InOrder(
		tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenA).Return(nil, nil),
		tm.store.EXPECT().CreateScanSession(gomock.Any(), gomock.Any()).Return(domain.ErrConflict),
		tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenA).Return(winner, nil),
		tm.store.EXPECT().
			UpdateScanSession(gomock.Any(), int64(7), gomock.Any()).
			DoAndReturn(func(ctx context.Context, id int64, u store.ScanSessionUpdate) error {
				assert.False(t, u.IncrementScanCount)
				assert.False(t, u.SetSourceQR)
				return nil
			}),
	)
	// The winner already counted this scan
	tm.aggregator.EXPECT().RecordScan(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := tm.tracker.TrackScan(ctx, tracker.ScanInput{ListingID: testListingID, SessionToken: tokenA, OccurredAt: at})

	require.NoError(t, err)
	assert.Equal(t, attribution.ActionUpdateMetadataOnly, result.Action)
	assert.Equal(t, upsert.OutcomeRecovered, result.Outcome)
}

func TestTrackScan_RaceAgainstPageViewUpgrades(t *testing.T) {
	tm := setupTestTracker(t, 5*time.Minute)
	ctx := context.Background()
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	winner := &schema.ScanSession{ID: 8, Source: sourcePtr(domain.SourceMicrosite)}
	gomock.InOrder(
		tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenA).Return(nil, nil),
		tm.store.EXPECT().CreateScanSession(gomock.Any(), gomock.Any()).Return(domain.ErrConflict),
		tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenA).Return(winner, nil),
		tm.store.EXPECT().
			UpdateScanSession(gomock.Any(), int64(8), gomock.Any()).
			DoAndReturn(func(ctx context.Context, id int64, u store.ScanSessionUpdate) error {
				assert.True(t, u.IncrementScanCount)
				assert.True(t, u.SetSourceQR)
				return nil
			}),
	)
	tm.aggregator.EXPECT().RecordScan(gomock.Any(), testListingID, at).Return(nil)

	result, err := tm.tracker.TrackScan(ctx, tracker.ScanInput{ListingID: testListingID, SessionToken: tokenA, OccurredAt: at})

	require.NoError(t, err)
	assert.Equal(t, attribution.ActionUpgradeSource, result.Action)
}

func TestTrackScan_AnalyticsFailureIsNotReturned(t *testing.T) {
	tm := setupTestTracker(t, 5*time.Minute)
	ctx := context.Background()
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenA).Return(nil, nil)
	tm.store.EXPECT().CreateScanSession(gomock.Any(), gomock.Any()).Return(nil)
	tm.aggregator.EXPECT().RecordScan(gomock.Any(), testListingID, at).Return(errors.New("connection reset"))

	result, err := tm.tracker.TrackScan(ctx, tracker.ScanInput{ListingID: testListingID, SessionToken: tokenA, OccurredAt: at})

	require.NoError(t, err)
	assert.Equal(t, attribution.ActionCreate, result.Action)
}

func TestTrackScan_SessionFailureIsReturned(t *testing.T) {
	tm := setupTestTracker(t, 5*time.Minute)
	ctx := context.Background()
	storeDown := errors.New("connection refused")

	tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenA).Return(nil, storeDown)

	_, err := tm.tracker.TrackScan(ctx, tracker.ScanInput{ListingID: testListingID, SessionToken: tokenA, OccurredAt: time.Now()})

	require.Error(t, err)
	assert.ErrorIs(t, err, storeDown)
	assert.ErrorIs(t, err, upsert.ErrUpsertFailed)
}

func TestTrackScan_InvalidInput(t *testing.T) {
	tm := setupTestTracker(t, 5*time.Minute)
	ctx := context.Background()

	_, err := tm.tracker.TrackScan(ctx, tracker.ScanInput{ListingID: "not-a-listing", SessionToken: tokenA, OccurredAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrInvalidListingID)

	_, err = tm.tracker.TrackScan(ctx, tracker.ScanInput{ListingID: testListingID, OccurredAt: time.Now()})
	assert.Error(t, err)
}

func TestTrackPageView_AdoptsRecentQRSession(t *testing.T) {
	tm := setupTestTracker(t, 5*time.Minute)
	ctx := context.Background()
	scanAt := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	viewAt := scanAt.Add(2 * time.Minute)

	qrSession := &schema.ScanSession{ID: 1, ListingID: testListingID, SessionToken: tokenA, Source: sourcePtr(domain.SourceQR), ScanCount: 1, FirstSeenAt: scanAt}

	gomock.InOrder(
		tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenB).Return(nil, nil),
		tm.store.EXPECT().FindRecentQRSession(gomock.Any(), testListingID, viewAt.Add(-5*time.Minute)).Return(qrSession, nil),
		tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenA).Return(qrSession, nil),
		tm.store.EXPECT().
			UpdateScanSession(gomock.Any(), int64(1), gomock.Any()).
			DoAndReturn(func(ctx context.Context, id int64, u store.ScanSessionUpdate) error {
				assert.False(t, u.IncrementScanCount)
				assert.False(t, u.SetSourceQR)
				require.NotNil(t, u.SourceIfUnset)
				assert.Equal(t, domain.SourceMicrosite, *u.SourceIfUnset)
				return nil
			}),
		tm.store.EXPECT().
			AppendPageViewEvent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *schema.PageViewEvent) error {
				assert.Equal(t, tokenA, e.SessionToken)
				assert.Equal(t, domain.SourceMicrosite, e.Source)
				return nil
			}),
		tm.aggregator.EXPECT().RecordPageView(gomock.Any(), testListingID, viewAt).Return(nil),
	)

	result, err := tm.tracker.TrackPageView(ctx, tracker.PageViewInput{
		ListingID:    testListingID,
		SessionToken: tokenB,
		Source:       domain.SourceMicrosite,
		OccurredAt:   viewAt,
	})

	require.NoError(t, err)
	assert.True(t, result.Adopted)
	assert.Equal(t, tokenA, result.SessionToken)
	assert.Equal(t, attribution.ActionUpdateMetadataOnly, result.Action)
}

func TestTrackPageView_NoRecentQRSessionCreatesSession(t *testing.T) {
	tm := setupTestTracker(t, 5*time.Minute)
	ctx := context.Background()
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenB).Return(nil, nil),
		tm.store.EXPECT().FindRecentQRSession(gomock.Any(), testListingID, gomock.Any()).Return(nil, nil),
		tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenB).Return(nil, nil),
		tm.store.EXPECT().
			CreateScanSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, s *schema.ScanSession) error {
				assert.Equal(t, domain.SourceDirect, *s.Source)
				assert.Equal(t, 0, s.ScanCount)
				return nil
			}),
		tm.store.EXPECT().AppendPageViewEvent(gomock.Any(), gomock.Any()).Return(nil),
		tm.aggregator.EXPECT().RecordPageView(gomock.Any(), testListingID, at).Return(nil),
	)

	result, err := tm.tracker.TrackPageView(ctx, tracker.PageViewInput{
		ListingID:    testListingID,
		SessionToken: tokenB,
		Source:       domain.SourceDirect,
		OccurredAt:   at,
	})

	require.NoError(t, err)
	assert.False(t, result.Adopted)
	assert.Equal(t, tokenB, result.SessionToken)
	assert.Equal(t, attribution.ActionCreate, result.Action)
}

func TestTrackPageView_FallbackDisabled(t *testing.T) {
	tm := setupTestTracker(t, 0)
	ctx := context.Background()
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	tm.store.EXPECT().FindRecentQRSession(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenB).Return(nil, nil)
	tm.store.EXPECT().CreateScanSession(gomock.Any(), gomock.Any()).Return(nil)
	tm.store.EXPECT().AppendPageViewEvent(gomock.Any(), gomock.Any()).Return(nil)
	tm.aggregator.EXPECT().RecordPageView(gomock.Any(), testListingID, at).Return(nil)

	result, err := tm.tracker.TrackPageView(ctx, tracker.PageViewInput{
		ListingID:    testListingID,
		SessionToken: tokenB,
		Source:       domain.SourceDirect,
		OccurredAt:   at,
	})

	require.NoError(t, err)
	assert.Equal(t, tokenB, result.SessionToken)
}

func TestTrackPageView_ExistingQRSessionKeepsSource(t *testing.T) {
	tm := setupTestTracker(t, 5*time.Minute)
	ctx := context.Background()
	at := time.Date(2024, 3, 9, 10, 2, 0, 0, time.UTC)

	existing := &schema.ScanSession{ID: 3, Source: sourcePtr(domain.SourceQR), ScanCount: 1}
	tm.store.EXPECT().GetScanSession(gomock.Any(), testListingID, tokenA).Return(existing, nil).Times(2)
	tm.store.EXPECT().
		UpdateScanSession(gomock.Any(), int64(3), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id int64, u store.ScanSessionUpdate) error {
			assert.False(t, u.IncrementScanCount)
			assert.False(t, u.SetSourceQR)
			return nil
		})
	tm.store.EXPECT().AppendPageViewEvent(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	tm.aggregator.EXPECT().RecordPageView(gomock.Any(), testListingID, at).Return(nil)

	result, err := tm.tracker.TrackPageView(ctx, tracker.PageViewInput{
		ListingID:    testListingID,
		SessionToken: tokenA,
		Source:       domain.SourceMicrosite,
		OccurredAt:   at,
	})

	require.NoError(t, err)
	assert.False(t, result.Adopted)
	assert.Equal(t, attribution.ActionUpdateMetadataOnly, result.Action)
}

func TestTrackPageView_RejectsQRSource(t *testing.T) {
	tm := setupTestTracker(t, 5*time.Minute)

	_, err := tm.tracker.TrackPageView(context.Background(), tracker.PageViewInput{
		ListingID:    testListingID,
		SessionToken: tokenA,
		Source:       domain.SourceQR,
		OccurredAt:   time.Now(),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidSource)
}
