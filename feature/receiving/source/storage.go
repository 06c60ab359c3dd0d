package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"receiving-manager/core/reconcile"
	"receiving-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

const (
	manifestPrefix = "manifests"
	packPrefix     = "packs"
	receiptPrefix  = "receipts"
)

// ManifestDocument is the JSON layout of manifests/<document>.json.
type ManifestDocument struct {
	DocumentID string              `json:"document_id"`
	Lines      []reconcile.RawLine `json:"lines"`
}

// PackDocument is the JSON layout of packs/<LABEL>.json.
type PackDocument struct {
	Label    string            `json:"label"`
	Contents []reconcile.Tuple `json:"contents"`
}

// ReceiptDocument is the JSON layout of receipts/<document>.json.
type ReceiptDocument struct {
	reconcile.Snapshot
	FinalizedAt time.Time `json:"finalized_at"`
}

// ManifestKey returns the object key of a document's manifest.
func ManifestKey(documentID string) string {
	return fmt.Sprintf("%s/%s.json", manifestPrefix, strings.TrimSpace(documentID))
}

// PackKey returns the object key of a pack's contents.
func PackKey(label string) string {
	return fmt.Sprintf("%s/%s.json", packPrefix, reconcile.NormalizeLabel(label))
}

// ReceiptKey returns the object key of a document's archived receipt.
func ReceiptKey(documentID string) string {
	return fmt.Sprintf("%s/%s.json", receiptPrefix, strings.TrimSpace(documentID))
}

// StorageSource reads manifests and pack contents from JSON objects in a bucket.
type StorageSource struct {
	client storage.Client
	bucket string
}

// NewStorageSource creates an object storage backed source.
func NewStorageSource(client storage.Client, bucket string) *StorageSource {
	return &StorageSource{client: client, bucket: bucket}
}

// LoadLines downloads and decodes manifests/<document>.json.
func (s *StorageSource) LoadLines(ctx context.Context, documentID string) ([]reconcile.RawLine, error) {
	key := ManifestKey(documentID)

	var doc ManifestDocument
	found, err := s.readJSON(ctx, key, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, strings.TrimSpace(documentID))
	}
	return doc.Lines, nil
}

// ResolvePack downloads and decodes packs/<LABEL>.json.
func (s *StorageSource) ResolvePack(ctx context.Context, label string) ([]reconcile.Tuple, error) {
	label = reconcile.NormalizeLabel(label)

	var doc PackDocument
	found, err := s.readJSON(ctx, PackKey(label), &doc)
	if err != nil {
		return nil, err
	}
	if !found || len(doc.Contents) == 0 {
		return nil, &reconcile.UnresolvedPackError{Label: label}
	}
	return doc.Contents, nil
}

// readJSON decodes the object at key into v. A missing object is reported as found == false.
func (s *StorageSource) readJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	return readJSON(ctx, s.client, s.bucket, key, v)
}

func readJSON(ctx context.Context, client storage.Client, bucket, key string, v interface{}) (bool, error) {
	reader, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer reader.Close()

	// Minio reports a missing key on the first read, not on GetObject.
	data, err := io.ReadAll(reader)
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return true, nil
}

// Archiver writes finalized snapshots to receipts/<document>.json.
type Archiver struct {
	client storage.Client
	bucket string
	now    func() time.Time
}

// NewArchiver creates an archiving finalizer.
func NewArchiver(client storage.Client, bucket string) *Archiver {
	return &Archiver{client: client, bucket: bucket, now: time.Now}
}

// Name returns the finalizer name.
func (a *Archiver) Name() string {
	return "archive"
}

// Finalize uploads the snapshot. An existing receipt for the document is overwritten.
func (a *Archiver) Finalize(ctx context.Context, snap reconcile.Snapshot) error {
	doc := ReceiptDocument{Snapshot: snap, FinalizedAt: a.now().UTC()}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}

	key := ReceiptKey(snap.DocumentID)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
