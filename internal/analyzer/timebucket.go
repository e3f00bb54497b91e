// =============================================================================
// Store Sales Analyzer - Time-Bucket Aggregates
// =============================================================================
//
// Per-store visit counts and piece counts in 30-minute slots.
//
// Each sale timestamp is floored to the preceding half-hour boundary and
// labeled "HH:MM〜" ("from HH:MM"). A receipt with several line items in the
// same slot counts one visit; piece counts sum the per-row unit counts,
// including the zeros contributed by non-retail items.
//
// Rows whose timestamp failed to parse are absent from these matrices and
// nothing else.
//
// =============================================================================

package analyzer

import "time"

// bucketInterval is the width of one time slot.
const bucketInterval = 30 * time.Minute

// TimeBuckets holds the two store × time-slot matrices.
type TimeBuckets struct {
	// Visits counts distinct receipts per (store, slot).
	Visits *Pivot

	// Units sums piece counts per (store, slot).
	Units *Pivot
}

// BucketLabel floors a timestamp to its 30-minute slot label, e.g. a sale
// at 09:47 falls in "09:30〜" and a sale at exactly 10:00 in "10:00〜".
func BucketLabel(t time.Time) string {
	return t.Truncate(bucketInterval).Format("15:04") + "〜"
}

// BucketByTime computes the time-slot matrices from normalized records.
// Callers must only invoke this when the export carried a timestamp column;
// the per-store grouping silently skips rows without a resolved store.
func BucketByTime(records []Record) *TimeBuckets {
	receipts := make(map[string]map[string]map[string]bool)
	units := make(map[string]map[string]float64)

	for _, rec := range records {
		if !rec.HasTime || rec.Store == "" {
			continue
		}

		slot := BucketLabel(rec.Time)

		bySlot := receipts[rec.Store]
		if bySlot == nil {
			bySlot = make(map[string]map[string]bool)
			receipts[rec.Store] = bySlot
		}
		if bySlot[slot] == nil {
			bySlot[slot] = make(map[string]bool)
		}
		bySlot[slot][rec.Receipt] = true

		unitCols := units[rec.Store]
		if unitCols == nil {
			unitCols = make(map[string]float64)
			units[rec.Store] = unitCols
		}
		if rec.HasUnits {
			unitCols[slot] += rec.Units
		} else {
			unitCols[slot] += 0
		}
	}

	visits := make(map[string]map[string]float64, len(receipts))
	for store, bySlot := range receipts {
		visits[store] = make(map[string]float64, len(bySlot))
		for slot, ids := range bySlot {
			visits[store][slot] = float64(len(ids))
		}
	}

	return &TimeBuckets{
		Visits: buildPivot(LabelStore, visits),
		Units:  buildPivot(LabelStore, units),
	}
}
