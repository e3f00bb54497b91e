package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanakaTsuyoshi-10/analys-anual/internal/config"
)

// TestRunEndToEnd walks one receipt with two line items through the whole
// pipeline and checks every aggregate.
func TestRunEndToEnd(t *testing.T) {
	cfg := config.Default()
	tbl := table(saleHeaders,
		[]string{"No.3-001", "ぎょうざ２０個", "2", "1,000", "2024年01月05日(金) 09:10"},
		[]string{"No.3-001", "ぎょうざ３０個", "1", "1,000", "2024年01月05日(金) 09:20"},
	)

	report := Run(tbl, cfg)

	// Store summary: one receipt, so one visit and its total once.
	row := report.Stores.Row("鷹尾")
	require.NotNil(t, row)
	assert.Equal(t, "1000", row.Revenue.String())
	assert.Equal(t, 1, row.Visits)
	assert.Equal(t, "1000", row.AvgTicket.String())

	// Product matrix: sold counts per product, pieces in the total column.
	assert.Equal(t, int64(2), report.Products.Cell("鷹尾", "ぎょうざ２０個"))
	assert.Equal(t, int64(1), report.Products.Cell("鷹尾", "ぎょうざ３０個"))
	assert.Equal(t, int64(70), report.Products.Cell("鷹尾", LabelTotalUnits))

	// Time slots: both line items fall into 09:00〜 and count one visit.
	require.True(t, report.HasBuckets())
	assert.Equal(t, int64(1), report.Buckets.Visits.Cell("鷹尾", "09:00〜"))
	assert.Equal(t, int64(70), report.Buckets.Units.Cell("鷹尾", "09:00〜"))
}

func TestRunWithoutTimestampColumn(t *testing.T) {
	cfg := config.Default()
	tbl := table([]string{"レシート番号", "商品名", "数量", "合計"},
		[]string{"No.3-001", "ぎょうざ２０個", "2", "1,000"},
	)

	report := Run(tbl, cfg)

	assert.False(t, report.HasBuckets())
	require.NotNil(t, report.Stores.Row("鷹尾"))
}

func TestRunWithUnparseableTimestamps(t *testing.T) {
	cfg := config.Default()
	tbl := table(saleHeaders,
		[]string{"No.3-001", "ぎょうざ２０個", "2", "1,000", "いつか"},
	)

	report := Run(tbl, cfg)

	// A timestamp column where nothing parses behaves like a missing one.
	assert.False(t, report.HasBuckets())
}

// TestRunRevenueMatchesDeduplicatedInput checks that summing the store
// summary equals summing unique receipts across the whole input.
func TestRunRevenueMatchesDeduplicatedInput(t *testing.T) {
	cfg := config.Default()
	tbl := table(saleHeaders,
		[]string{"No.3-001", "ぎょうざ２０個", "2", "1,000", ""},
		[]string{"No.3-001", "ぎょうざ３０個", "1", "1,000", ""},
		[]string{"No.2-010", "ぎょうざ５０個", "1", "2,500", ""},
		[]string{"No.2-011", "餃子のタレ", "1", "200", ""},
	)

	report := Run(tbl, cfg)

	total := int64(0)
	for _, row := range report.Stores.Rows {
		total += row.Revenue.IntPart()
	}

	// Unique receipts: 1000 + 2500 + 200.
	assert.Equal(t, int64(3700), total)
}
