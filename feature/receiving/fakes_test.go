package receiving

import (
	"context"
	"fmt"
	"sync"

	"receiving-manager/core/reconcile"
	"receiving-manager/feature/receiving/source"
)

func intp(v int) *int { return &v }

type fakeManifests map[string][]reconcile.RawLine

func (f fakeManifests) LoadLines(ctx context.Context, documentID string) ([]reconcile.RawLine, error) {
	raw, ok := f[documentID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", source.ErrDocumentNotFound, documentID)
	}
	return raw, nil
}

type fakePacks struct {
	mu    sync.Mutex
	packs map[string][]reconcile.Tuple
	calls int
	err   error
}

func (f *fakePacks) ResolvePack(ctx context.Context, label string) ([]reconcile.Tuple, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	contents, ok := f.packs[label]
	if !ok {
		return nil, &reconcile.UnresolvedPackError{Label: label}
	}
	return contents, nil
}

type recordingFinalizer struct {
	name  string
	err   error
	snaps []reconcile.Snapshot
}

func (f *recordingFinalizer) Name() string { return f.name }

func (f *recordingFinalizer) Finalize(ctx context.Context, snap reconcile.Snapshot) error {
	if f.err != nil {
		return f.err
	}
	f.snaps = append(f.snaps, snap)
	return nil
}

// testSources returns a manifest PO-1 with two lines and three packs:
// PK-1 fills L1, PK-2 fills L2, PK-X matches nothing.
func testSources() (source.Set, *fakePacks, *recordingFinalizer) {
	manifests := fakeManifests{
		"PO-1": {
			{Key: "L1", Code: "SKU-1", Name: "Tee", Size: "M", Expected: intp(3)},
			{Key: "L2", Code: "SKU-2", Name: "Cap", Size: "S", Expected: intp(1)},
		},
		"PO-BAD": {
			{Key: "L1", Code: "SKU-1", Size: "M", Expected: intp(-1)},
		},
	}
	packs := &fakePacks{packs: map[string][]reconcile.Tuple{
		"PK-1": {{Code: "SKU-1", Size: "M", Quantity: 3}},
		"PK-2": {{Code: "SKU-2", Size: "S", Quantity: 1}},
		"PK-X": {{Code: "SKU-9", Size: "XL", Quantity: 1}},
	}}
	fin := &recordingFinalizer{name: "database"}

	return source.Set{Manifests: manifests, Packs: packs, Finalizers: []reconcile.Finalizer{fin}}, packs, fin
}

// gatedPacks blocks every lookup until release is closed.
type gatedPacks struct {
	next    reconcile.PackResolver
	started chan struct{}
	release chan struct{}
}

func (g *gatedPacks) ResolvePack(ctx context.Context, label string) ([]reconcile.Tuple, error) {
	g.started <- struct{}{}
	<-g.release
	return g.next.ResolvePack(ctx, label)
}
