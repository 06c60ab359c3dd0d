package models

import (
	"strconv"
	"strings"
	"time"

	"receiving-manager/core/reconcile"
)

// ManifestLine is one expected line of an inbound document ('manifest_lines').
type ManifestLine struct {
	ID           uint    `gorm:"column:id;primaryKey"`
	DocumentID   string  `gorm:"column:document_id;size:64;index:idx_manifest_lines_document"`
	LineRef      string  `gorm:"column:line_ref;size:64"`
	ItemCode     string  `gorm:"column:item_code;size:64"`
	Barcode      string  `gorm:"column:barcode;size:64"`
	ItemName     string  `gorm:"column:item_name;size:255"`
	Size         string  `gorm:"column:size;size:32"`
	PackingGroup *string `gorm:"column:packing_group;size:64"`
	ExpectedQty  *int    `gorm:"column:expected_qty"`
}

// TableName overrides the table name.
func (ManifestLine) TableName() string {
	return "manifest_lines"
}

// MatchCode returns the barcode when present, otherwise the item code.
func (m ManifestLine) MatchCode() string {
	if strings.TrimSpace(m.Barcode) != "" {
		return m.Barcode
	}
	return m.ItemCode
}

// ToRaw converts the row to an unvalidated manifest line.
// The line reference is used as key, falling back to the row id.
func (m ManifestLine) ToRaw() reconcile.RawLine {
	key := m.LineRef
	if key == "" && m.ID != 0 {
		key = strconv.FormatUint(uint64(m.ID), 10)
	}
	return reconcile.RawLine{
		Key:      key,
		Code:     m.MatchCode(),
		Name:     m.ItemName,
		Size:     m.Size,
		Group:    m.PackingGroup,
		Expected: m.ExpectedQty,
	}
}

// PackContent is one item/size row reported under a pack label ('pack_contents').
type PackContent struct {
	ID           uint    `gorm:"column:id;primaryKey"`
	PackLabel    string  `gorm:"column:pack_label;size:64;index:idx_pack_contents_label"`
	ItemCode     string  `gorm:"column:item_code;size:64"`
	Barcode      string  `gorm:"column:barcode;size:64"`
	Size         string  `gorm:"column:size;size:32"`
	PackingGroup *string `gorm:"column:packing_group;size:64"`
	Quantity     int     `gorm:"column:quantity"`
}

// TableName overrides the table name.
func (PackContent) TableName() string {
	return "pack_contents"
}

// ToTuple converts the row to a scan tuple.
func (p PackContent) ToTuple() reconcile.Tuple {
	code := p.ItemCode
	if strings.TrimSpace(p.Barcode) != "" {
		code = p.Barcode
	}
	return reconcile.Tuple{
		Code:     code,
		Size:     p.Size,
		Group:    p.PackingGroup,
		Quantity: p.Quantity,
	}
}

// Receipt is the header of a finalized document ('receipts').
type Receipt struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	DocumentID    string    `gorm:"column:document_id;size:64;uniqueIndex"`
	LineCount     int       `gorm:"column:line_count"`
	TotalExpected int       `gorm:"column:total_expected"`
	TotalObserved int       `gorm:"column:total_observed"`
	MatchedCount  int       `gorm:"column:matched_count"`
	Discrepancy   int       `gorm:"column:discrepancy"`
	PackCount     int       `gorm:"column:pack_count"`
	FinalizedAt   time.Time `gorm:"column:finalized_at"`

	Lines []ReceiptLine `gorm:"foreignKey:ReceiptID"`
}

// TableName overrides the table name.
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptLine is the final state of one manifest line ('receipt_lines').
type ReceiptLine struct {
	ID           uint   `gorm:"column:id;primaryKey"`
	ReceiptID    uint   `gorm:"column:receipt_id;index"`
	Position     int    `gorm:"column:position"`
	LineKey      string `gorm:"column:line_key;size:64"`
	ItemCode     string `gorm:"column:item_code;size:64"`
	Size         string `gorm:"column:size;size:32"`
	PackingGroup string `gorm:"column:packing_group;size:64"`
	ExpectedQty  int    `gorm:"column:expected_qty"`
	ObservedQty  int    `gorm:"column:observed_qty"`
}

// TableName overrides the table name.
func (ReceiptLine) TableName() string {
	return "receipt_lines"
}

// NewReceipt builds the receipt rows for a snapshot. Lines keep the snapshot's working order.
func NewReceipt(snap reconcile.Snapshot, at time.Time) Receipt {
	r := Receipt{
		DocumentID:    snap.DocumentID,
		LineCount:     snap.Totals.LineCount,
		TotalExpected: snap.Totals.TotalExpected,
		TotalObserved: snap.Totals.TotalObserved,
		MatchedCount:  snap.Totals.MatchedCount,
		Discrepancy:   snap.Totals.AggregateDiscrepancy,
		PackCount:     len(snap.Packs),
		FinalizedAt:   at,
	}
	for i, l := range snap.Lines {
		r.Lines = append(r.Lines, ReceiptLine{
			Position:     i,
			LineKey:      l.Key,
			ItemCode:     l.Code,
			Size:         l.Size,
			PackingGroup: l.Group,
			ExpectedQty:  l.Expected,
			ObservedQty:  l.Observed,
		})
	}
	return r
}

// All returns one value of every receiving model, for migrations and schema checks.
func All() []interface{} {
	return []interface{}{&ManifestLine{}, &PackContent{}, &Receipt{}, &ReceiptLine{}}
}
