package source

import (
	"errors"
	"fmt"

	"receiving-manager/core/reconcile"
	"receiving-manager/core/server"
	"receiving-manager/core/storage"

	"gorm.io/gorm"
)

// ErrDocumentNotFound is returned by a ManifestSource that has no lines for a document.
var ErrDocumentNotFound = errors.New("document not found")

// Set groups the collaborators a receiving session needs.
type Set struct {
	Manifests  reconcile.ManifestSource
	Packs      reconcile.PackResolver
	Finalizers []reconcile.Finalizer
}

// Select builds the collaborators for the configured source kind.
// Receipts are always archived when a storage client is given; the database
// source also records them in the receipts tables.
func Select(kind string, db *gorm.DB, client storage.Client, bucket string) (Set, error) {
	var set Set

	switch kind {
	case server.SourceDatabase:
		if db == nil {
			return Set{}, fmt.Errorf("source %q requires a database connection", kind)
		}
		dbSource := NewDBSource(db)
		set.Manifests = dbSource
		set.Packs = dbSource
		set.Finalizers = append(set.Finalizers, dbSource)
	case server.SourceStorage:
		if client == nil {
			return Set{}, fmt.Errorf("source %q requires a storage client", kind)
		}
		storageSource := NewStorageSource(client, bucket)
		set.Manifests = storageSource
		set.Packs = storageSource
	default:
		return Set{}, fmt.Errorf("unknown source %q", kind)
	}

	if client != nil {
		set.Finalizers = append(set.Finalizers, NewArchiver(client, bucket))
	}
	return set, nil
}
