package reconcile

import (
	"context"
	"fmt"
)

// FinalizeOptions gates the finalize run.
type FinalizeOptions struct {
	// DryRun checks the gate and builds the snapshot without calling any finalizer.
	DryRun bool

	// Confirmed indicates the operator confirmed the commit.
	// If false, finalizers will not run regardless of DryRun.
	Confirmed bool
}

// Finalize checks the finalization gate and hands the snapshot to every finalizer in order.
// It returns the number of finalizers that completed and the snapshot that was (or would be) stored.
// It fails with ErrNotFinalizable while the engine cannot finalize.
func Finalize(ctx context.Context, e *Engine, finalizers []Finalizer, opts FinalizeOptions) (executed int, snap Snapshot, err error) {
	if !e.Loaded() {
		return 0, Snapshot{}, ErrNotLoaded
	}

	snap = e.Snapshot()
	if !e.CanFinalize() {
		return 0, snap, fmt.Errorf("%w: %d lines, discrepancy %d",
			ErrNotFinalizable, snap.Totals.LineCount, snap.Totals.AggregateDiscrepancy)
	}

	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return 0, snap, nil
	}

	for _, f := range finalizers {
		if err := ctx.Err(); err != nil {
			return executed, snap, err
		}
		if err := f.Finalize(ctx, snap); err != nil {
			return executed, snap, fmt.Errorf("finalizer %s failed: %w", f.Name(), err)
		}
		executed++
	}

	return executed, snap, nil
}
