// Package reconcile provides the scan-reconciliation engine used during receiving.
//
// A Manifest holds the expected lines of one document (item code, size, optional
// packing group and expected quantity). The Engine applies scan events against it:
// each event carries a pack label and the contents reported for that pack, and every
// content credits all manifest lines sharing its match key.
//
// # Architecture
//
// The package consists of four parts:
//
// 1. Manifest: validated, ordered lines plus aggregate queries. Totals are recomputed
// from line state on every call, so they can never drift.
//
// 2. Engine: the single mutation entry point. Apply validates the whole event before
// touching anything, credits matched lines, marks the pack consumed and moves the
// touched lines to the front of the working order (a stable partition).
//
// 3. Adapters: ManifestSource, PackResolver and Finalizer describe the external
// collaborators. CachedResolver adds a TTL cache with stampede protection.
//
// 4. Finalize: the gate. Nothing is persisted while the aggregate discrepancy is
// non-zero or the manifest is empty.
//
// # Errors
//
//   - *ValidationError: bad manifest input, the manifest is not built.
//   - *InvalidEventError: malformed scan, nothing applied.
//   - *UnresolvedPackError: the label could not be resolved, nothing applied.
//   - *DuplicatePackError: the label was already applied.
//
// # Usage Example
//
//	m, err := reconcile.LoadManifest("PO-1001", rawLines)
//	if err != nil {
//	    return err
//	}
//
//	engine := reconcile.NewEngine(reconcile.Options{})
//	engine.Load(m)
//
//	contents, err := resolver.ResolvePack(ctx, label)
//	res, err := engine.Apply(reconcile.ScanEvent{Label: label, Contents: contents})
//
//	if engine.CanFinalize() {
//	    _, snap, err := reconcile.Finalize(ctx, engine, finalizers, reconcile.FinalizeOptions{Confirmed: true})
//	}
//
// The Engine is not safe for concurrent use. Callers that share one across goroutines
// must guard every call with a single mutex.
package reconcile
