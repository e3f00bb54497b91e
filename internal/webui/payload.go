// =============================================================================
// Store Sales Analyzer - JSON Payloads
// =============================================================================
//
// Wire representation of a finished report for the JSON API. Decimal money
// values go out as plain numbers; integer matrices stay integers.
//
// =============================================================================

package webui

import "github.com/TanakaTsuyoshi-10/analys-anual/internal/analyzer"

// ReportPayload is the JSON shape of one report.
type ReportPayload struct {
	Stores     []StorePayload `json:"stores"`
	Products   *PivotPayload  `json:"products"`
	SlotVisits *PivotPayload  `json:"slot_visits,omitempty"`
	SlotUnits  *PivotPayload  `json:"slot_units,omitempty"`
	Advisory   string         `json:"advisory,omitempty"`
}

// StorePayload is one row of the store summary.
type StorePayload struct {
	Store     string  `json:"store"`
	Revenue   float64 `json:"revenue"`
	Visits    int     `json:"visits"`
	AvgTicket int64   `json:"avg_ticket"`
}

// PivotPayload is one store × dimension matrix.
type PivotPayload struct {
	Index   string    `json:"index"`
	Stores  []string  `json:"stores"`
	Columns []string  `json:"columns"`
	Cells   [][]int64 `json:"cells"`
}

// buildPayload converts a report into its wire shape.
func buildPayload(report *analyzer.Report) *ReportPayload {
	payload := &ReportPayload{
		Stores:   make([]StorePayload, 0, len(report.Stores.Rows)),
		Products: pivotPayload(report.Products),
	}

	for _, row := range report.Stores.Rows {
		payload.Stores = append(payload.Stores, StorePayload{
			Store:     row.Store,
			Revenue:   row.Revenue.InexactFloat64(),
			Visits:    row.Visits,
			AvgTicket: row.AvgTicket.IntPart(),
		})
	}

	if report.HasBuckets() {
		payload.SlotVisits = pivotPayload(report.Buckets.Visits)
		payload.SlotUnits = pivotPayload(report.Buckets.Units)
	} else {
		payload.Advisory = Advisory
	}

	return payload
}

// pivotPayload converts one matrix.
func pivotPayload(p *analyzer.Pivot) *PivotPayload {
	return &PivotPayload{
		Index:   p.Index,
		Stores:  p.Stores,
		Columns: p.Columns,
		Cells:   p.Cells,
	}
}
