// =============================================================================
// Store Sales Analyzer - Store Summary Aggregate
// =============================================================================
//
// Per-store revenue, visit count and average ticket.
//
// A receipt spans one row per line item, all sharing the receipt number and
// the receipt total. Rows are therefore deduplicated by receipt number
// (first occurrence wins) BEFORE grouping, so a multi-line receipt counts
// one visit and its total is added to revenue exactly once.
//
// =============================================================================

package analyzer

import (
	"sort"

	"github.com/shopspring/decimal"
)

// StoreRow is one row of the store summary.
type StoreRow struct {
	// Store is the resolved store name.
	Store string

	// Revenue is the sum of unique-receipt totals, in yen.
	Revenue decimal.Decimal

	// Visits is the number of distinct receipts.
	Visits int

	// AvgTicket is Revenue / Visits, rounded half-to-even to a whole yen.
	AvgTicket decimal.Decimal
}

// StoreSummary is the per-store revenue/visits/average-ticket aggregate,
// sorted by store name.
type StoreSummary struct {
	Rows []StoreRow
}

// Row returns the summary row for a store, or nil when the store is absent.
func (s *StoreSummary) Row(store string) *StoreRow {
	for i := range s.Rows {
		if s.Rows[i].Store == store {
			return &s.Rows[i]
		}
	}
	return nil
}

// SummarizeStores computes the store summary from normalized records.
func SummarizeStores(records []Record) *StoreSummary {
	type group struct {
		revenue decimal.Decimal
		visits  int
	}

	seen := make(map[string]bool)
	groups := make(map[string]*group)

	for _, rec := range records {
		// One row per receipt; later line items of the same receipt repeat
		// the total and must not count again.
		if seen[rec.Receipt] {
			continue
		}
		seen[rec.Receipt] = true

		// Rows without a resolved store have no grouping key.
		if rec.Store == "" {
			continue
		}

		g := groups[rec.Store]
		if g == nil {
			g = &group{}
			groups[rec.Store] = g
		}
		g.visits++
		if rec.HasAmount {
			g.revenue = g.revenue.Add(rec.Amount)
		}
	}

	summary := &StoreSummary{Rows: make([]StoreRow, 0, len(groups))}
	for store, g := range groups {
		summary.Rows = append(summary.Rows, StoreRow{
			Store:   store,
			Revenue: g.revenue,
			Visits:  g.visits,
			// A group exists only because at least one receipt landed in
			// it, so visits is never zero here.
			AvgTicket: g.revenue.Div(decimal.NewFromInt(int64(g.visits))).RoundBank(0),
		})
	}

	sort.Slice(summary.Rows, func(i, j int) bool {
		return summary.Rows[i].Store < summary.Rows[j].Store
	})

	return summary
}
