// =============================================================================
// Store Sales Analyzer - Pivot Matrix
// =============================================================================
//
// Pivot is the shared shape of the reshaped aggregates: stores as rows, a
// second dimension (product names or time-bucket labels) as columns, and
// integer cells. Combinations absent from the input are filled with 0 rather
// than left missing.
//
// A Pivot is built once per run and never mutated afterwards.
//
// =============================================================================

package analyzer

import "sort"

// Pivot is a store × dimension integer matrix.
type Pivot struct {
	// Index is the label of the row dimension (the store-name column).
	Index string

	// Stores holds the row keys, sorted lexicographically.
	Stores []string

	// Columns holds the column keys, sorted lexicographically. For time
	// buckets the lexicographic order is also chronological order, since
	// the labels are zero-padded 24-hour clock strings.
	Columns []string

	// Cells holds one row per store in Stores order, one value per column
	// in Columns order.
	Cells [][]int64
}

// buildPivot reshapes grouped values[store][column] into a zero-filled,
// integer-cast matrix with sorted row and column keys.
func buildPivot(index string, values map[string]map[string]float64) *Pivot {
	p := &Pivot{Index: index}

	colSeen := make(map[string]bool)
	for store, cols := range values {
		p.Stores = append(p.Stores, store)
		for col := range cols {
			if !colSeen[col] {
				colSeen[col] = true
				p.Columns = append(p.Columns, col)
			}
		}
	}
	sort.Strings(p.Stores)
	sort.Strings(p.Columns)

	p.Cells = make([][]int64, len(p.Stores))
	for i, store := range p.Stores {
		row := make([]int64, len(p.Columns))
		for j, col := range p.Columns {
			row[j] = int64(values[store][col])
		}
		p.Cells[i] = row
	}

	return p
}

// appendColumn adds a trailing column with per-store values. Stores without
// a value get 0.
func (p *Pivot) appendColumn(label string, values map[string]float64) {
	p.Columns = append(p.Columns, label)
	for i, store := range p.Stores {
		p.Cells[i] = append(p.Cells[i], int64(values[store]))
	}
}

// Cell returns the value at (store, column), or 0 when either key is absent.
func (p *Pivot) Cell(store, column string) int64 {
	i := indexOf(p.Stores, store)
	j := indexOf(p.Columns, column)
	if i < 0 || j < 0 {
		return 0
	}
	return p.Cells[i][j]
}

// HasStore reports whether the matrix carries a row for the store.
func (p *Pivot) HasStore(store string) bool {
	return indexOf(p.Stores, store) >= 0
}

// indexOf returns the position of v in s, or -1.
func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
