package reconcile

import "strings"

// MatchKey is the composite identity used to match scanned contents against manifest lines.
// It is comparable and is used directly as a map key.
type MatchKey struct {
	// Code is the item code or barcode.
	Code string `json:"code"`

	// Size is the size variant of the item.
	Size string `json:"size"`

	// Group is the packing group label. Empty means no group.
	Group string `json:"group"`
}

// NewMatchKey builds a MatchKey, trimming surrounding whitespace from every component.
// A nil group and an empty group produce the same key.
func NewMatchKey(code, size string, group *string) MatchKey {
	k := MatchKey{
		Code: strings.TrimSpace(code),
		Size: strings.TrimSpace(size),
	}
	if group != nil {
		k.Group = strings.TrimSpace(*group)
	}
	return k
}

// String renders the key as code/size/group, omitting an empty group.
func (k MatchKey) String() string {
	if k.Group == "" {
		return k.Code + "/" + k.Size
	}
	return k.Code + "/" + k.Size + "/" + k.Group
}

// Less orders keys by code, then size, then group.
func (k MatchKey) Less(o MatchKey) bool {
	if k.Code != o.Code {
		return k.Code < o.Code
	}
	if k.Size != o.Size {
		return k.Size < o.Size
	}
	return k.Group < o.Group
}

// LineStatus describes where a line stands against its expected quantity.
type LineStatus string

const (
	// StatusMatched means observed equals expected.
	StatusMatched LineStatus = "matched"
	// StatusShort means fewer units were observed than expected.
	StatusShort LineStatus = "short"
	// StatusOver means more units were observed than expected.
	StatusOver LineStatus = "over"
)

// Line is one expected item/size/group combination within a manifest.
type Line struct {
	// Key uniquely identifies the line within its manifest.
	Key string `json:"key"`

	// Code is the item code or barcode the line is matched on.
	Code string `json:"code"`

	// Name is the display name.
	Name string `json:"name"`

	// Size is the size variant.
	Size string `json:"size"`

	// Group is the expected packing group, empty when the line has none.
	Group string `json:"group,omitempty"`

	// Expected is the quantity on the manifest. It never changes after load.
	Expected int `json:"expected"`

	// Observed is the quantity credited by scans so far.
	Observed int `json:"observed"`
}

// MatchKey returns the composite key the line is matched on.
func (l Line) MatchKey() MatchKey {
	return MatchKey{Code: l.Code, Size: l.Size, Group: l.Group}
}

// Discrepancy returns expected minus observed. Negative means over-scanned.
func (l Line) Discrepancy() int {
	return l.Expected - l.Observed
}

// Matched reports whether observed equals expected.
func (l Line) Matched() bool {
	return l.Discrepancy() == 0
}

// Status classifies the line by the sign of its discrepancy.
func (l Line) Status() LineStatus {
	switch d := l.Discrepancy(); {
	case d > 0:
		return StatusShort
	case d < 0:
		return StatusOver
	default:
		return StatusMatched
	}
}

// RawLine is an unvalidated manifest line as delivered by a ManifestSource.
type RawLine struct {
	// Key is the source's identifier for the line. When empty a key is derived
	// from the match key.
	Key string `json:"key"`

	Code     string  `json:"code" validate:"required"`
	Name     string  `json:"name"`
	Size     string  `json:"size"`
	Group    *string `json:"group"`
	Expected *int    `json:"expected" validate:"required,min=0"`
}

// Tuple is one reported content of a pack: an item/size/group and a unit count.
type Tuple struct {
	Code     string  `json:"code"`
	Size     string  `json:"size"`
	Group    *string `json:"group,omitempty"`
	Quantity int     `json:"quantity"`
}

// MatchKey returns the composite key the tuple is matched on.
func (t Tuple) MatchKey() MatchKey {
	return NewMatchKey(t.Code, t.Size, t.Group)
}

// ScanEvent is one resolved observation of a physical pack.
type ScanEvent struct {
	// Label is the pack label. It is normalized by Apply.
	Label string `json:"label"`

	// Contents lists what the pack is reported to contain.
	Contents []Tuple `json:"contents"`
}

// NormalizeLabel trims whitespace and upper-cases a pack label.
func NormalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// Outcome classifies a scan event as a whole.
type Outcome string

const (
	// OutcomeFullyMatched means every tuple matched at least one line.
	OutcomeFullyMatched Outcome = "fully_matched"
	// OutcomePartiallyMatched means some tuples matched and some did not.
	OutcomePartiallyMatched Outcome = "partially_matched"
	// OutcomeNoMatch means no tuple matched any line. Nothing was mutated.
	OutcomeNoMatch Outcome = "no_match"
)

// Succeeded reports whether the outcome mutated the manifest.
func (o Outcome) Succeeded() bool {
	return o == OutcomeFullyMatched || o == OutcomePartiallyMatched
}

// TupleDelta records the effect of a single tuple of an event.
type TupleDelta struct {
	// Tuple is the tuple as received.
	Tuple Tuple `json:"tuple"`

	// LineKeys lists every line the tuple credited, in canonical manifest order.
	LineKeys []string `json:"line_keys"`

	// Quantity is the amount added to each line in LineKeys.
	Quantity int `json:"quantity"`

	// Matched is false when the tuple matched no line.
	Matched bool `json:"matched"`
}

// Result is the per-event outcome returned by Engine.Apply.
type Result struct {
	Label           string       `json:"label"`
	Outcome         Outcome      `json:"outcome"`
	MatchedLineKeys []string     `json:"matched_line_keys"`
	Deltas          []TupleDelta `json:"deltas"`
	Unmatched       int          `json:"unmatched"`
}

// Totals is an aggregate view of a manifest, recomputed on every call.
type Totals struct {
	LineCount     int `json:"line_count"`
	TotalExpected int `json:"total_expected"`
	TotalObserved int `json:"total_observed"`
	MatchedCount  int `json:"matched_count"`

	// AggregateDiscrepancy is TotalExpected minus TotalObserved. Zero means fully reconciled.
	AggregateDiscrepancy int `json:"aggregate_discrepancy"`
}

// Snapshot is the final state attached to a finalize call.
type Snapshot struct {
	DocumentID string `json:"document_id"`
	Totals     Totals `json:"totals"`

	// Lines are in working order.
	Lines []Line `json:"lines"`

	// Packs lists the consumed pack labels in the order they were applied.
	Packs []string `json:"packs"`
}
