package upsert

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-lead-analytics/internal/domain"
	"github.com/feral-file/ff-lead-analytics/internal/logger"
	"github.com/feral-file/ff-lead-analytics/internal/metrics"
)

// Outcome describes which branch an upsert took
type Outcome string

const (
	// OutcomeCreated means the optimistic insert succeeded
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means the row already existed and was updated
	OutcomeUpdated Outcome = "updated"
	// OutcomeRecovered means the insert lost a race and the winner's row was updated
	OutcomeRecovered Outcome = "recovered"
)

// ErrUpsertFailed wraps every failure that is not an expected conflict
var ErrUpsertFailed = errors.New("upsert failed")

// Ops are the keyed operations of one upsert.
// Find and Create must address the same uniqueness key.
type Ops[T any] struct {
	// Target names the upserted table for logs and metrics
	Target string
	// Find returns the row for the key, nil if it does not exist
	Find func(ctx context.Context) (*T, error)
	// Create inserts a new row, returning domain.ErrConflict when the key already exists
	Create func(ctx context.Context) error
	// Update applies the change to an existing row.
	// recovered is true when the row was created by a concurrent writer after Find.
	Update func(ctx context.Context, existing *T, recovered bool) error
}

// Execute finds the row by its key, creates it when absent and updates it otherwise.
// A create that loses a race re-reads the winner's row and updates it instead.
func Execute[T any](ctx context.Context, ops Ops[T]) (Outcome, error) {
	existing, err := ops.Find(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: find %s: %w", ErrUpsertFailed, ops.Target, err)
	}

	if existing != nil {
		if err := ops.Update(ctx, existing, false); err != nil {
			return "", fmt.Errorf("%w: update %s: %w", ErrUpsertFailed, ops.Target, err)
		}
		metrics.RecordUpsert(ops.Target, string(OutcomeUpdated))
		return OutcomeUpdated, nil
	}

	err = ops.Create(ctx)
	if err == nil {
		metrics.RecordUpsert(ops.Target, string(OutcomeCreated))
		return OutcomeCreated, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return "", fmt.Errorf("%w: create %s: %w", ErrUpsertFailed, ops.Target, err)
	}

	// Lost the insert race, the winner's row must now be visible
	metrics.RecordUpsertConflict(ops.Target)
	logger.DebugCtx(ctx, "Unique conflict on insert, updating existing row", zap.String("target", ops.Target))

	existing, err = ops.Find(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: re-find %s after conflict: %w", ErrUpsertFailed, ops.Target, err)
	}
	if existing == nil {
		return "", fmt.Errorf("%w: %s missing after conflict: %w", ErrUpsertFailed, ops.Target, domain.ErrNotFound)
	}
	if err := ops.Update(ctx, existing, true); err != nil {
		return "", fmt.Errorf("%w: update %s after conflict: %w", ErrUpsertFailed, ops.Target, err)
	}

	metrics.RecordUpsert(ops.Target, string(OutcomeRecovered))
	return OutcomeRecovered, nil
}
