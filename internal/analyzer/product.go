// =============================================================================
// Store Sales Analyzer - Product Sales Aggregate
// =============================================================================
//
// Per-store, per-product sold counts plus a per-store total piece count.
//
// Only products in the units-per-package master table participate: anything
// else is a non-retail line item (delivery fees, sauces, seasonal bundles)
// and never becomes a matrix column. The trailing 総販売個数 column is summed
// from the grouped rows directly rather than re-derived from the matrix, so
// two product names collapsing into one column cannot double-count.
//
// =============================================================================

package analyzer

// PivotProducts reshapes sold counts into a store × product matrix with a
// trailing total-units column. The units argument is the read-only
// units-per-package master table.
func PivotProducts(records []Record, units map[string]int) *Pivot {
	sold := make(map[string]map[string]float64)
	totals := make(map[string]float64)

	for _, rec := range records {
		if _, recognized := units[rec.Product]; !recognized {
			continue
		}
		if rec.Store == "" {
			continue
		}

		cols := sold[rec.Store]
		if cols == nil {
			cols = make(map[string]float64)
			sold[rec.Store] = cols
		}
		if rec.HasQuantity {
			cols[rec.Product] += rec.Quantity
		} else {
			// Keep the (store, product) combination visible as 0 even when
			// the quantity failed to parse.
			cols[rec.Product] += 0
		}
		if rec.HasUnits {
			totals[rec.Store] += rec.Units
		}
	}

	p := buildPivot(LabelStore, sold)
	p.appendColumn(LabelTotalUnits, totals)
	return p
}
