// =============================================================================
// Store Sales Analyzer - Pipeline Orchestration
// =============================================================================
//
// This file runs the full aggregation pipeline for one export:
//
//   1. Normalize the raw table into typed sale records
//   2. Store summary      (revenue / visits / average ticket)
//   3. Product matrix     (sold counts + total piece counts)
//   4. Time-slot matrices (visits and piece counts per 30-minute slot),
//      only when the export carries a sale timestamp column
//
// The three aggregation passes are independent: each one re-reads the
// normalized records and applies its own drop rules, so a row excluded from
// one aggregate still participates in the others.
//
// =============================================================================

package analyzer

import (
	"log/slog"

	"github.com/TanakaTsuyoshi-10/analys-anual/internal/config"
	"github.com/TanakaTsuyoshi-10/analys-anual/internal/loader"
)

// Advisory is the message every presentation surface shows in place of the
// time-slot tables when a report has no usable sale timestamp column.
const Advisory = "『販売日時』列が見つかりませんでした。時間帯集計はスキップされました。"

// Report holds the aggregates of one pipeline run. It is built once and not
// mutated afterwards; nothing survives past the run that produced it.
type Report struct {
	// Stores is the per-store revenue/visits/average-ticket summary.
	Stores *StoreSummary

	// Products is the store × product sold-count matrix with the trailing
	// total-units column.
	Products *Pivot

	// Buckets holds the time-slot matrices. It is nil when the export has
	// no sale timestamp column (or no timestamp survived parsing); the
	// presentation layer then shows an advisory instead of the two tables.
	Buckets *TimeBuckets
}

// HasBuckets reports whether the time-slot section was produced.
func (r *Report) HasBuckets() bool {
	return r.Buckets != nil
}

// Run executes the aggregation pipeline on one loaded export.
func Run(tbl *loader.Table, cfg *config.Config) *Report {
	ds := Normalize(tbl, cfg)

	slog.Debug("normalized export",
		slog.Int("rows_in", len(tbl.Rows)),
		slog.Int("records", len(ds.Records)),
		slog.Bool("has_timestamps", ds.HasTimestamps))

	report := &Report{
		Stores:   SummarizeStores(ds.Records),
		Products: PivotProducts(ds.Records, cfg.ProductUnits),
	}

	if ds.HasTimestamps {
		buckets := BucketByTime(ds.Records)
		// A timestamp column where every value failed to parse produces
		// empty matrices; treat that the same as a missing column so the
		// user sees the advisory rather than two blank tables.
		if len(buckets.Visits.Stores) > 0 {
			report.Buckets = buckets
		}
	}

	if report.Buckets == nil {
		slog.Info("sale timestamp column missing or unparseable, skipping time-slot aggregates")
	}

	return report
}
