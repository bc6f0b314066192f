package reconciler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-lead-analytics/internal/adapter"
	"github.com/feral-file/ff-lead-analytics/internal/analytics"
	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/reconciler"
	"github.com/feral-file/ff-lead-analytics/internal/store"
	"github.com/feral-file/ff-lead-analytics/internal/store/schema"
	"github.com/feral-file/ff-lead-analytics/internal/testutil/pgtest"
)

func TestRunAgainstDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()
	db, err := pgtest.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Terminate(ctx) })

	calendar, err := analytics.NewCalendar("UTC")
	require.NoError(t, err)
	st := store.NewPGStore(db.DB)
	r := reconciler.NewReconciler(st, calendar, adapter.NewClock(), reconciler.Config{Workers: 2, MaxRetries: 1})

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	qr := domain.SourceQR
	direct := domain.SourceDirect

	for i, s := range []struct {
		token     string
		source    *domain.Source
		scanCount int
	}{
		{"tok-1", &qr, 2},
		{"tok-2", &direct, 0},
		{"tok-3", &qr, 1},
	} {
		seen := day.Add(time.Duration(9+i) * time.Hour)
		require.NoError(t, st.CreateScanSession(ctx, &schema.ScanSession{
			ListingID:    listingA,
			SessionToken: s.token,
			Source:       s.source,
			ScanCount:    s.scanCount,
			DeviceType:   domain.DeviceMobile,
			TimeOfDay:    seen.Hour(),
			FirstSeenAt:  seen,
			LastSeenAt:   seen,
		}))
	}
	require.NoError(t, st.CreateLead(ctx, &schema.Lead{
		ListingID: listingA,
		Name:      "Ada",
		Email:     "ada@example.com",
		CreatedAt: day.Add(15 * time.Hour),
	}))

	t.Run("creates the missing record", func(t *testing.T) {
		summary, err := r.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.ListingsProcessed)
		assert.Equal(t, 1, summary.RecordsCreated)
		assert.Equal(t, 0, summary.RecordsUpdated)

		record, err := st.GetDailyAnalytics(ctx, listingA, day)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, 3, record.TotalScans)
		assert.Equal(t, 3, record.UniqueVisitors)
		assert.Equal(t, 1, record.TotalLeads)
		assert.Equal(t, 3, record.PageViews)
	})

	t.Run("overwrites drifted counters and is idempotent", func(t *testing.T) {
		require.NoError(t, db.DB.Model(&schema.AnalyticsDaily{}).
			Where("listing_id = ? AND date = ?", listingA, datatypes.Date(day)).
			Updates(map[string]any{"total_scans": 9, "unique_visitors": 1, "page_views": 12}).Error)

		for range 2 {
			summary, err := r.Run(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, summary.RecordsCreated)
			assert.Equal(t, 1, summary.RecordsUpdated)
		}

		record, err := st.GetDailyAnalytics(ctx, listingA, day)
		require.NoError(t, err)
		assert.Equal(t, 3, record.TotalScans)
		assert.Equal(t, 3, record.UniqueVisitors)
		assert.Equal(t, 1, record.TotalLeads)
		assert.Equal(t, 12, record.PageViews)
	})
}
