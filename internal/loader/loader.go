// =============================================================================
// Store Sales Analyzer - Loader Module
// =============================================================================
//
// This module reads a POS export into a raw row-oriented table with string
// column labels. Two export formats exist:
//
//   - CSV  : CP932-encoded delimited text with 2 banner rows before the
//            header row.
//   - XLSX : a workbook whose first sheet carries the headers on the 4th
//            physical row.
//
// Both paths produce the same Table shape, so everything downstream is
// format-agnostic. Numeric coercion does NOT happen here; the loader hands
// over raw strings and the analyzer decides what is parseable.
//
// Load failures (undecodable bytes, unreadable workbook, missing required
// columns) are returned to the caller and reported to the user; they are
// never fatal to the process.
//
// =============================================================================

package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/TanakaTsuyoshi-10/analys-anual/internal/config"
)

// =============================================================================
// FORMAT DETECTION
// =============================================================================

// Format identifies the declared format of an uploaded export.
type Format string

const (
	// FormatCSV is CP932 delimited text.
	FormatCSV Format = "csv"

	// FormatXLSX is an Excel workbook.
	FormatXLSX Format = "xlsx"
)

// DetectFormat derives the export format from a file name.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported file type %q (expected .csv or .xlsx)", filepath.Ext(filename))
	}
}

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table is the raw parsed export.
type Table struct {
	// Headers contains the whitespace-trimmed column labels in file order.
	Headers []string

	// Rows contains the data rows as header -> value maps.
	// Cell values are whitespace-trimmed; absent cells are empty strings.
	Rows []map[string]string
}

// HasColumn reports whether the table carries a column with the given label.
func (t *Table) HasColumn(label string) bool {
	for _, h := range t.Headers {
		if h == label {
			return true
		}
	}
	return false
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads one export from r in the declared format.
func Load(r io.Reader, format Format, cfg *config.Config) (*Table, error) {
	var (
		tbl *Table
		err error
	)

	switch format {
	case FormatCSV:
		tbl, err = readCSV(r, cfg)
	case FormatXLSX:
		tbl, err = readXLSX(r, cfg)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if err := validateColumns(tbl, cfg); err != nil {
		return nil, err
	}

	return tbl, nil
}

// readCSV reads a delimited-text export.
//
// The POS system writes CP932 with 2 banner rows; both are configurable.
// The decoder fails on byte sequences that are not valid in the configured
// encoding, which surfaces truncated or mis-declared files as load errors.
func readCSV(r io.Reader, cfg *config.Config) (*Table, error) {
	var decoded io.Reader = r
	switch cfg.CSV.Encoding {
	case "cp932", "shift_jis":
		decoded = transform.NewReader(r, japanese.ShiftJIS.NewDecoder())
	case "utf-8":
		// Already usable as-is.
	default:
		return nil, fmt.Errorf("unsupported encoding %q", cfg.CSV.Encoding)
	}

	reader := csv.NewReader(decoded)
	// POS exports occasionally pad short rows; tolerate ragged records.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) <= cfg.CSV.SkipRows {
		return nil, fmt.Errorf("CSV has no header row (need at least %d rows, got %d)", cfg.CSV.SkipRows+1, len(allRows))
	}

	headers := cleanHeaders(allRows[cfg.CSV.SkipRows])
	rows := buildRows(allRows[cfg.CSV.SkipRows+1:], headers)

	return &Table{Headers: headers, Rows: rows}, nil
}

// readXLSX reads a spreadsheet export from the first sheet of the workbook.
func readXLSX(r io.Reader, cfg *config.Config) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	allRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	headerIndex := cfg.XLSX.HeaderRow - 1
	if len(allRows) <= headerIndex {
		return nil, fmt.Errorf("workbook has no header row (need at least %d rows, got %d)", cfg.XLSX.HeaderRow, len(allRows))
	}

	headers := cleanHeaders(allRows[headerIndex])
	rows := buildRows(allRows[headerIndex+1:], headers)

	return &Table{Headers: headers, Rows: rows}, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// cleanHeaders trims whitespace from every column label.
// Empty labels get a positional placeholder so map keys stay unique.
func cleanHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}
	return headers
}

// buildRows converts raw rows into header -> value maps, skipping rows that
// are entirely empty.
func buildRows(raw [][]string, headers []string) []map[string]string {
	rows := make([]map[string]string, 0, len(raw))

	for _, record := range raw {
		if isRowEmpty(record) {
			continue
		}

		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// validateColumns checks that the export carries every column the pipeline
// depends on. The timestamp column is deliberately not required; exports
// without it simply skip the time-bucket aggregates.
func validateColumns(tbl *Table, cfg *config.Config) error {
	required := []string{
		cfg.Columns.Receipt,
		cfg.Columns.Product,
		cfg.Columns.Quantity,
		cfg.Columns.Total,
	}

	var missing []string
	for _, label := range required {
		if !tbl.HasColumn(label) {
			missing = append(missing, label)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("export is missing required columns: %s", strings.Join(missing, ", "))
	}

	return nil
}
