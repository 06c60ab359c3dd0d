package reconcile

import "context"

// ManifestSource loads the expected lines of a document from an external system.
type ManifestSource interface {
	// LoadLines returns the raw lines for documentID. The engine validates and
	// normalizes them; sources should not filter or coerce.
	LoadLines(ctx context.Context, documentID string) ([]RawLine, error)
}

// PackResolver resolves a normalized pack label to the contents reported for it.
type PackResolver interface {
	// ResolvePack returns the contents of the pack. An unknown label must be reported
	// as *UnresolvedPackError so callers can tell it apart from infrastructure failures.
	ResolvePack(ctx context.Context, label string) ([]Tuple, error)
}

// Invalidator is implemented by resolvers that keep resolved contents around.
// Invalidate forgets what is held for label so the next lookup reaches the source.
type Invalidator interface {
	Invalidate(label string)
}

// Finalizer persists a reconciled snapshot.
type Finalizer interface {
	// Name identifies the finalizer in logs and errors (e.g., "database", "archive").
	Name() string

	// Finalize stores the snapshot. It must be idempotent per document.
	Finalize(ctx context.Context, snap Snapshot) error
}
