package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanakaTsuyoshi-10/analys-anual/internal/config"
)

// item builds a record with a quantity and its derived unit count for tests.
func item(receipt, store, product string, qty float64, units map[string]int) Record {
	return Record{
		Receipt:     receipt,
		Store:       store,
		Product:     product,
		Quantity:    qty,
		HasQuantity: true,
		Units:       qty * float64(units[product]),
		HasUnits:    true,
	}
}

func TestPivotProductsCells(t *testing.T) {
	units := config.Default().ProductUnits
	records := []Record{
		item("No.3-001", "鷹尾", "ぎょうざ２０個", 2, units),
		item("No.3-002", "鷹尾", "ぎょうざ２０個", 1, units),
		item("No.3-003", "鷹尾", "ぎょうざ３０個", 1, units),
		item("No.2-001", "隼人", "ぎょうざ３０個", 4, units),
	}

	p := PivotProducts(records, units)

	assert.Equal(t, int64(3), p.Cell("鷹尾", "ぎょうざ２０個"))
	assert.Equal(t, int64(1), p.Cell("鷹尾", "ぎょうざ３０個"))
	assert.Equal(t, int64(4), p.Cell("隼人", "ぎょうざ３０個"))

	// A combination absent from the input is 0, not missing.
	require.True(t, p.HasStore("隼人"))
	assert.Equal(t, int64(0), p.Cell("隼人", "ぎょうざ２０個"))
}

func TestPivotProductsExcludesUnrecognizedProducts(t *testing.T) {
	units := config.Default().ProductUnits
	records := []Record{
		item("No.3-001", "鷹尾", "ぎょうざ２０個", 2, units),
		item("No.3-002", "鷹尾", "餃子のタレ", 5, units),
	}

	p := PivotProducts(records, units)

	// Non-retail items never become matrix columns.
	assert.Equal(t, []string{"ぎょうざ２０個", LabelTotalUnits}, p.Columns)
}

func TestPivotProductsTotalUnits(t *testing.T) {
	units := config.Default().ProductUnits
	records := []Record{
		item("No.3-001", "鷹尾", "ぎょうざ２０個", 2, units), // 40 pieces
		item("No.3-002", "鷹尾", "ぎょうざ３０個", 1, units), // 30 pieces
		item("No.2-001", "隼人", "ぎょうざ５０個", 3, units), // 150 pieces
	}

	p := PivotProducts(records, units)

	assert.Equal(t, int64(70), p.Cell("鷹尾", LabelTotalUnits))
	assert.Equal(t, int64(150), p.Cell("隼人", LabelTotalUnits))
}

func TestPivotProductsSkipsUnresolvedStores(t *testing.T) {
	units := config.Default().ProductUnits
	records := []Record{
		item("No.99-001", "", "ぎょうざ２０個", 2, units),
	}

	p := PivotProducts(records, units)
	assert.Empty(t, p.Stores)
}

func TestPivotProductsAbsentQuantity(t *testing.T) {
	units := config.Default().ProductUnits
	records := []Record{
		{Receipt: "No.3-001", Store: "鷹尾", Product: "ぎょうざ２０個"},
	}

	p := PivotProducts(records, units)

	// The combination stays visible with a 0 cell even though the quantity
	// failed to parse.
	require.True(t, p.HasStore("鷹尾"))
	assert.Equal(t, int64(0), p.Cell("鷹尾", "ぎょうざ２０個"))
	assert.Equal(t, int64(0), p.Cell("鷹尾", LabelTotalUnits))
}
