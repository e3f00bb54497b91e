// =============================================================================
// Store Sales Analyzer - Workbook Exporter
// =============================================================================
//
// This module serializes the aggregates of one run into a single Excel
// workbook, one named sheet per aggregate:
//
//   1. 店舗別_売上来客客単価   - store summary
//   2. 店舗別_商品別販売       - product matrix
//   3. 店舗別_来客数_時間帯別  - visits per 30-minute slot
//   4. 店舗別_販売個数_時間帯別 - piece counts per 30-minute slot
//
// Sheet names and order are fixed; other tooling at the stores keys on them.
// When a run produced no time-slot aggregates, the workbook is still written
// with only the first two sheets.
//
// =============================================================================

package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/TanakaTsuyoshi-10/analys-anual/internal/analyzer"
)

// =============================================================================
// FIXED ARTIFACT PROPERTIES
// =============================================================================

// Sheet names, in workbook order.
const (
	SheetStores     = "店舗別_売上来客客単価"
	SheetProducts   = "店舗別_商品別販売"
	SheetSlotVisits = "店舗別_来客数_時間帯別"
	SheetSlotUnits  = "店舗別_販売個数_時間帯別"
)

// DownloadFilename is the fixed name of the downloadable artifact.
const DownloadFilename = "販売分析結果.xlsx"

// ContentType is the MIME type of the artifact.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// =============================================================================
// WORKBOOK GENERATION
// =============================================================================

// Workbook builds the multi-sheet workbook for one report.
func Workbook(report *analyzer.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	// The first sheet reuses the workbook's default sheet under the agreed
	// name; the rest are created.
	if err := f.SetSheetName(f.GetSheetName(0), SheetStores); err != nil {
		return nil, fmt.Errorf("failed to name sheet %q: %w", SheetStores, err)
	}
	if err := writeStoreSheet(f, report.Stores); err != nil {
		return nil, err
	}

	if err := writePivotSheet(f, SheetProducts, report.Products); err != nil {
		return nil, err
	}

	if report.HasBuckets() {
		if err := writePivotSheet(f, SheetSlotVisits, report.Buckets.Visits); err != nil {
			return nil, err
		}
		if err := writePivotSheet(f, SheetSlotUnits, report.Buckets.Units); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Write serializes the workbook for one report to w.
func Write(report *analyzer.Report, w io.Writer) error {
	f, err := Workbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeStoreSheet writes the store summary.
func writeStoreSheet(f *excelize.File, summary *analyzer.StoreSummary) error {
	header := []interface{}{
		analyzer.LabelStore,
		analyzer.LabelRevenue,
		analyzer.LabelVisits,
		analyzer.LabelAvgTicket,
	}
	if err := f.SetSheetRow(SheetStores, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", SheetStores, err)
	}

	for i, row := range summary.Rows {
		cells := []interface{}{
			row.Store,
			row.Revenue.InexactFloat64(),
			row.Visits,
			row.AvgTicket.IntPart(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d of %q: %w", i+2, SheetStores, err)
		}
		if err := f.SetSheetRow(SheetStores, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+2, SheetStores, err)
		}
	}

	return nil
}

// writePivotSheet writes one store × dimension matrix to a new sheet.
func writePivotSheet(f *excelize.File, sheet string, p *analyzer.Pivot) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	header := make([]interface{}, 0, len(p.Columns)+1)
	header = append(header, p.Index)
	for _, col := range p.Columns {
		header = append(header, col)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet, err)
	}

	for i, store := range p.Stores {
		cells := make([]interface{}, 0, len(p.Columns)+1)
		cells = append(cells, store)
		for _, v := range p.Cells[i] {
			cells = append(cells, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d of %q: %w", i+2, sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+2, sheet, err)
		}
	}

	return nil
}
