// =============================================================================
// Store Sales Analyzer - Record Normalization
// =============================================================================
//
// This file turns the raw string table from the loader into typed sale
// records. Normalization is deliberately lossy in very specific, field-scoped
// ways:
//
//   - A row is dropped only when BOTH the receipt number and product name
//     are empty. A row missing just one of them stays.
//   - A receipt number that does not match "No.<digits>-" yields no store
//     code and no store name; the row stays but drops out of every
//     store-keyed aggregate later.
//   - An unparseable amount or quantity becomes absent for that field only;
//     the row stays and the field is excluded from sums.
//   - An unparseable timestamp becomes absent for that field only; the row
//     drops out of the time-bucket aggregates and nothing else.
//
// These drop conditions are kept separate on purpose; they are not one
// generic "skip invalid" rule.
//
// =============================================================================

package analyzer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TanakaTsuyoshi-10/analys-anual/internal/config"
	"github.com/TanakaTsuyoshi-10/analys-anual/internal/loader"
)

// =============================================================================
// OUTPUT COLUMN LABELS
// =============================================================================
// Fixed labels of the aggregate tables, shared by the CLI renderer, the HTTP
// viewer and the workbook exporter.

const (
	// LabelStore is the store-name index column.
	LabelStore = "店舗名"

	// LabelRevenue is the per-store revenue column.
	LabelRevenue = "売上金額"

	// LabelVisits is the per-store visit-count column.
	LabelVisits = "来客数"

	// LabelAvgTicket is the per-store average-ticket column.
	LabelAvgTicket = "客単価"

	// LabelTotalUnits is the total-units column of the product matrix.
	LabelTotalUnits = "総販売個数"
)

// receiptPattern extracts the numeric store code from a receipt number of
// the form "No.<code>-<sequence>".
var receiptPattern = regexp.MustCompile(`No\.(\d+)-`)

// annotationPattern matches the parenthetical day-of-week annotation the POS
// system appends to sale timestamps, e.g. "(金)" in "2024年01月05日(金) 09:10".
var annotationPattern = regexp.MustCompile(`\(.+?\)`)

// timestampLayout is the POS sale timestamp format once the parenthetical
// annotation is removed.
const timestampLayout = "2006年01月02日 15:04"

// =============================================================================
// RECORD STRUCTURE
// =============================================================================

// Record is one normalized sale line.
//
// Optional fields carry a Has* flag instead of a sentinel value, mirroring
// the "absent, not zero" coercion policy: an absent amount is excluded from
// revenue sums, while a genuine zero amount would count.
type Record struct {
	// Receipt is the raw receipt number, e.g. "No.3-001".
	Receipt string

	// Product is the product name.
	Product string

	// StoreCode is the numeric code extracted from the receipt number.
	// Empty when the receipt number does not match the expected pattern.
	StoreCode string

	// Store is the resolved store name. Empty when the code is absent or
	// not in the master table; such rows drop out of store-keyed grouping.
	Store string

	// Quantity is the line-item quantity.
	Quantity    float64
	HasQuantity bool

	// Amount is the receipt total in yen.
	Amount    decimal.Decimal
	HasAmount bool

	// Units is the derived piece count: quantity × units-per-package.
	// Products outside the master table use multiplier 0, so their rows
	// carry Units 0 rather than an absent value.
	Units    float64
	HasUnits bool

	// Time is the parsed sale timestamp.
	Time    time.Time
	HasTime bool
}

// Dataset is the normalized form of one export.
type Dataset struct {
	// Records holds every retained sale line.
	Records []Record

	// HasTimestamps reports whether the export carried the sale timestamp
	// column at all. When false, the time-bucket aggregates are skipped and
	// the presentation layer surfaces an advisory instead.
	HasTimestamps bool
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// Normalize converts the raw table into typed sale records.
func Normalize(tbl *loader.Table, cfg *config.Config) *Dataset {
	hasTimestamps := tbl.HasColumn(cfg.Columns.Timestamp)

	records := make([]Record, 0, len(tbl.Rows))

	for _, row := range tbl.Rows {
		receipt := row[cfg.Columns.Receipt]
		product := row[cfg.Columns.Product]

		// A line with neither a receipt number nor a product name carries
		// no usable signal at all.
		if receipt == "" && product == "" {
			continue
		}

		rec := Record{
			Receipt: receipt,
			Product: product,
		}

		if m := receiptPattern.FindStringSubmatch(receipt); m != nil {
			rec.StoreCode = m[1]
			if name, ok := cfg.StoreName(rec.StoreCode); ok {
				rec.Store = name
			}
		}

		rec.Quantity, rec.HasQuantity = parseQuantity(row[cfg.Columns.Quantity])
		rec.Amount, rec.HasAmount = parseAmount(row[cfg.Columns.Total])

		// Unit count follows quantity: absent quantity means absent units,
		// while a recognized product with quantity 0 means zero units.
		if rec.HasQuantity {
			rec.Units = rec.Quantity * float64(cfg.UnitsPerPackage(product))
			rec.HasUnits = true
		}

		if hasTimestamps {
			rec.Time, rec.HasTime = parseTimestamp(row[cfg.Columns.Timestamp])
		}

		records = append(records, rec)
	}

	return &Dataset{Records: records, HasTimestamps: hasTimestamps}
}

// parseAmount coerces a currency string such as "1,000" to a decimal.
// Thousands separators are stripped first; anything unparseable is absent.
func parseAmount(value string) (decimal.Decimal, bool) {
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseQuantity coerces a quantity string to a number.
// No separator stripping here; quantities never carry them.
func parseQuantity(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	q, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return q, true
}

// parseTimestamp coerces a sale timestamp such as "2024年01月05日(金) 09:10".
// The parenthetical annotation is removed before parsing; values that still
// fail to parse are absent.
func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(annotationPattern.ReplaceAllString(value, ""))
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(timestampLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
