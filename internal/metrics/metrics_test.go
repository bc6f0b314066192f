package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordEvent(t *testing.T) {
	before := testutil.ToFloat64(EventsTotal.WithLabelValues("scan", "create"))

	RecordEvent("scan", "create")
	RecordEvent("scan", "create")

	after := testutil.ToFloat64(EventsTotal.WithLabelValues("scan", "create"))
	assert.Equal(t, before+2, after)
}

func TestRecordDroppedEvent(t *testing.T) {
	before := testutil.ToFloat64(EventsDropped.WithLabelValues("page_view", "analytics"))

	RecordDroppedEvent("page_view", "analytics")

	assert.Equal(t, before+1, testutil.ToFloat64(EventsDropped.WithLabelValues("page_view", "analytics")))
}

func TestRecordUpsertConflict_Concurrent(t *testing.T) {
	before := testutil.ToFloat64(UpsertConflicts.WithLabelValues("scan_session"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordUpsertConflict("scan_session")
			RecordUpsert("scan_session", "recovered")
		}()
	}
	wg.Wait()

	assert.Equal(t, before+50, testutil.ToFloat64(UpsertConflicts.WithLabelValues("scan_session")))
}

func TestRecordReconcileRun(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"successful run", nil, "success"},
		{"failed run", errors.New("group failed"), "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runsBefore := testutil.ToFloat64(ReconcileRuns.WithLabelValues(tt.status))
			createdBefore := testutil.ToFloat64(ReconcileRecords.WithLabelValues("created"))

			RecordReconcileRun(250*time.Millisecond, 3, 2, 0, tt.err)

			assert.Equal(t, runsBefore+1, testutil.ToFloat64(ReconcileRuns.WithLabelValues(tt.status)))
			assert.Equal(t, createdBefore+3, testutil.ToFloat64(ReconcileRecords.WithLabelValues("created")))
		})
	}
}
