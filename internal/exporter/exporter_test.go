package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/TanakaTsuyoshi-10/analys-anual/internal/analyzer"
	"github.com/TanakaTsuyoshi-10/analys-anual/internal/config"
	"github.com/TanakaTsuyoshi-10/analys-anual/internal/loader"
)

// buildReport runs the pipeline on a small in-memory export.
func buildReport(t *testing.T, withTimestamps bool) *analyzer.Report {
	t.Helper()
	cfg := config.Default()

	headers := []string{"レシート番号", "商品名", "数量", "合計"}
	rows := [][]string{
		{"No.3-001", "ぎょうざ２０個", "2", "1,000"},
		{"No.2-001", "ぎょうざ３０個", "1", "500"},
	}
	if withTimestamps {
		headers = append(headers, "販売日時")
		rows[0] = append(rows[0], "2024年01月05日(金) 09:10")
		rows[1] = append(rows[1], "2024年01月05日(金) 10:00")
	}

	tbl := &loader.Table{Headers: headers}
	for _, r := range rows {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			row[h] = r[i]
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	return analyzer.Run(tbl, cfg)
}

// roundTrip serializes a report and reopens the workbook.
func roundTrip(t *testing.T, report *analyzer.Report) *excelize.File {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Write(report, &buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWorkbookSheetOrder(t *testing.T) {
	f := roundTrip(t, buildReport(t, true))

	assert.Equal(t, []string{
		SheetStores,
		SheetProducts,
		SheetSlotVisits,
		SheetSlotUnits,
	}, f.GetSheetList())
}

func TestWorkbookWithoutTimeSlots(t *testing.T) {
	f := roundTrip(t, buildReport(t, false))

	// The artifact is still produced with only the two available sheets.
	assert.Equal(t, []string{SheetStores, SheetProducts}, f.GetSheetList())
}

func TestStoreSheetContent(t *testing.T) {
	f := roundTrip(t, buildReport(t, true))

	rows, err := f.GetRows(SheetStores)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"店舗名", "売上金額", "来客数", "客単価"}, rows[0])

	// Rows are sorted by store name: 隼人 before 鷹尾.
	require.Len(t, rows, 3)
	assert.Equal(t, "隼人", rows[1][0])
	assert.Equal(t, "500", rows[1][1])
	assert.Equal(t, "鷹尾", rows[2][0])
	assert.Equal(t, "1000", rows[2][1])
	assert.Equal(t, "1", rows[2][2])
	assert.Equal(t, "1000", rows[2][3])
}

func TestProductSheetContent(t *testing.T) {
	f := roundTrip(t, buildReport(t, true))

	rows, err := f.GetRows(SheetProducts)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	assert.Equal(t, []string{"店舗名", "ぎょうざ２０個", "ぎょうざ３０個", "総販売個数"}, rows[0])
}

func TestSlotSheetContent(t *testing.T) {
	f := roundTrip(t, buildReport(t, true))

	rows, err := f.GetRows(SheetSlotVisits)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	// A 09:10 sale lands in 09:00〜 and a 10:00 sale in 10:00〜.
	assert.Equal(t, []string{"店舗名", "09:00〜", "10:00〜"}, rows[0])
}
