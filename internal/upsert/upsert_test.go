package upsert_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/upsert"
)

type row struct {
	count int
}

// fakeTable is a single-key table where Create can be made to lose a race
type fakeTable struct {
	row          *row
	findErr      error
	createErr    error
	updateErr    error
	racedRow     *row
	findCalls    int
	createCalls  int
	updatedWith  []bool
	vanishOnFind bool
}

func (f *fakeTable) ops() upsert.Ops[row] {
	return upsert.Ops[row]{
		Target: "test",
		Find: func(ctx context.Context) (*row, error) {
			f.findCalls++
			if f.findErr != nil {
				return nil, f.findErr
			}
			if f.vanishOnFind {
				return nil, nil
			}
			return f.row, nil
		},
		Create: func(ctx context.Context) error {
			f.createCalls++
			if f.racedRow != nil {
				f.row = f.racedRow
				return domain.ErrConflict
			}
			if f.createErr != nil {
				return f.createErr
			}
			f.row = &row{count: 1}
			return nil
		},
		Update: func(ctx context.Context, existing *row, recovered bool) error {
			f.updatedWith = append(f.updatedWith, recovered)
			if f.updateErr != nil {
				return f.updateErr
			}
			existing.count++
			return nil
		},
	}
}

func TestExecute_CreatesWhenAbsent(t *testing.T) {
	table := &fakeTable{}

	outcome, err := upsert.Execute(context.Background(), table.ops())

	require.NoError(t, err)
	assert.Equal(t, upsert.OutcomeCreated, outcome)
	assert.Equal(t, 1, table.row.count)
	assert.Equal(t, 1, table.findCalls)
	assert.Empty(t, table.updatedWith)
}

func TestExecute_UpdatesWhenPresent(t *testing.T) {
	table := &fakeTable{row: &row{count: 3}}

	outcome, err := upsert.Execute(context.Background(), table.ops())

	require.NoError(t, err)
	assert.Equal(t, upsert.OutcomeUpdated, outcome)
	assert.Equal(t, 4, table.row.count)
	assert.Equal(t, 0, table.createCalls)
	assert.Equal(t, []bool{false}, table.updatedWith)
}

func TestExecute_RecoversFromConflict(t *testing.T) {
	table := &fakeTable{racedRow: &row{count: 1}}

	outcome, err := upsert.Execute(context.Background(), table.ops())

	require.NoError(t, err)
	assert.Equal(t, upsert.OutcomeRecovered, outcome)
	assert.Equal(t, 2, table.row.count)
	assert.Equal(t, 2, table.findCalls)
	assert.Equal(t, []bool{true}, table.updatedWith)
}

func TestExecute_Failures(t *testing.T) {
	storeDown := errors.New("connection refused")

	tests := []struct {
		name  string
		table *fakeTable
	}{
		{"find fails", &fakeTable{findErr: storeDown}},
		{"create fails with non-conflict error", &fakeTable{createErr: storeDown}},
		{"update of existing row fails", &fakeTable{row: &row{}, updateErr: storeDown}},
		{"update after conflict fails", &fakeTable{racedRow: &row{}, updateErr: storeDown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := upsert.Execute(context.Background(), tt.table.ops())

			require.Error(t, err)
			assert.Empty(t, outcome)
			assert.ErrorIs(t, err, upsert.ErrUpsertFailed)
			assert.ErrorIs(t, err, storeDown)
		})
	}
}

func TestExecute_RowMissingAfterConflict(t *testing.T) {
	table := &fakeTable{createErr: domain.ErrConflict, vanishOnFind: true}

	_, err := upsert.Execute(context.Background(), table.ops())

	require.Error(t, err)
	assert.ErrorIs(t, err, upsert.ErrUpsertFailed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, table.updatedWith)
}
