package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"receiving-manager/core/reconcile"
	"receiving-manager/feature/receiving/models"

	"gorm.io/gorm"
)

// defaultBatchSize bounds the rows per INSERT when writing receipt lines.
const defaultBatchSize = 200

// DBSource reads manifests and pack contents from SQL tables and writes receipts back.
type DBSource struct {
	db        *gorm.DB
	batchSize int
	now       func() time.Time
}

// NewDBSource creates a database backed source.
func NewDBSource(db *gorm.DB) *DBSource {
	return &DBSource{db: db, batchSize: defaultBatchSize, now: time.Now}
}

// Name returns the finalizer name.
func (s *DBSource) Name() string {
	return "database"
}

// LoadLines returns the manifest lines of a document in insertion order.
func (s *DBSource) LoadLines(ctx context.Context, documentID string) ([]reconcile.RawLine, error) {
	documentID = strings.TrimSpace(documentID)

	var rows []models.ManifestLine
	if err := s.db.WithContext(ctx).Where("document_id = ?", documentID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query manifest lines for %s: %w", documentID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, documentID)
	}

	raw := make([]reconcile.RawLine, len(rows))
	for i, row := range rows {
		raw[i] = row.ToRaw()
	}
	return raw, nil
}

// ResolvePack returns the contents recorded for a pack label.
func (s *DBSource) ResolvePack(ctx context.Context, label string) ([]reconcile.Tuple, error) {
	label = reconcile.NormalizeLabel(label)

	var rows []models.PackContent
	if err := s.db.WithContext(ctx).Where("pack_label = ?", label).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query pack %s: %w", label, err)
	}
	if len(rows) == 0 {
		return nil, &reconcile.UnresolvedPackError{Label: label}
	}

	contents := make([]reconcile.Tuple, len(rows))
	for i, row := range rows {
		contents[i] = row.ToTuple()
	}
	return contents, nil
}

// Finalize replaces any previous receipt for the document with the snapshot, in one transaction.
func (s *DBSource) Finalize(ctx context.Context, snap reconcile.Snapshot) error {
	receipt := models.NewReceipt(snap, s.now().UTC())
	lines := receipt.Lines
	receipt.Lines = nil

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		previous := tx.Model(&models.Receipt{}).Select("id").Where("document_id = ?", snap.DocumentID)
		if err := tx.Where("receipt_id IN (?)", previous).Delete(&models.ReceiptLine{}).Error; err != nil {
			return fmt.Errorf("failed to clear receipt lines: %w", err)
		}
		if err := tx.Where("document_id = ?", snap.DocumentID).Delete(&models.Receipt{}).Error; err != nil {
			return fmt.Errorf("failed to clear receipt: %w", err)
		}

		if err := tx.Create(&receipt).Error; err != nil {
			return fmt.Errorf("failed to insert receipt: %w", err)
		}
		if len(lines) == 0 {
			return nil
		}

		for i := range lines {
			lines[i].ReceiptID = receipt.ID
		}
		if err := tx.CreateInBatches(&lines, s.batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert receipt lines: %w", err)
		}
		return nil
	})
}
