package receiving

import (
	"bytes"
	"fmt"

	"receiving-manager/core/reconcile"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	linesSheet   = "Lines"
)

// ReportContentType is the MIME type of RenderReport's output.
const ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var lineHeadings = []string{"Key", "Code", "Name", "Size", "Group", "Expected", "Observed", "Discrepancy", "Status"}

// RenderReport builds an XLSX workbook with a totals sheet and one row per line in working order.
func RenderReport(snap reconcile.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if _, err := f.NewSheet(linesSheet); err != nil {
		return nil, fmt.Errorf("failed to create lines sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Document", snap.DocumentID},
		{"Lines", snap.Totals.LineCount},
		{"Expected", snap.Totals.TotalExpected},
		{"Observed", snap.Totals.TotalObserved},
		{"Matched lines", snap.Totals.MatchedCount},
		{"Discrepancy", snap.Totals.AggregateDiscrepancy},
		{"Packs", len(snap.Packs)},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}

	headings := make([]interface{}, len(lineHeadings))
	for i, h := range lineHeadings {
		headings[i] = h
	}
	if err := setRow(f, linesSheet, 1, headings); err != nil {
		return nil, err
	}
	for i, l := range snap.Lines {
		row := []interface{}{l.Key, l.Code, l.Name, l.Size, l.Group, l.Expected, l.Observed, l.Discrepancy(), string(l.Status())}
		if err := setRow(f, linesSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
