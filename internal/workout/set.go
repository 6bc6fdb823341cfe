package workout

import "time"

// Source identifies which collaborator a normalized set came from.
type Source string

const (
	SourceSheet   Source = "sheet"
	SourceTracker Source = "tracker"
)

// Weight unit tags as reported by the tracker export.
const (
	UnitPound    = "POUND"
	UnitKilogram = "KILOGRAM"
)

// LbsPerKg converts kilograms to the table's canonical pounds.
const LbsPerKg = 2.20462

// Set is one performed exercise set, normalized to the canonical schema.
// Weight and Volume are always in pounds. Sets are never mutated after creation.
type Set struct {
	Date       time.Time `json:"date"`
	Exercise   string    `json:"exercise"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight_lbs"`
	Volume     float64   `json:"volume"`
	Source     Source    `json:"source"`
	ActivityID int64     `json:"activity_id,omitempty"`
}

// Table is an ordered collection of normalized sets. All metrics operate on a
// Table slice; functions return new tables and never modify their input.
type Table []Set

// Filter returns the sets with start <= Date < end.
func (t Table) Filter(start, end time.Time) Table {
	var out Table
	for _, s := range t {
		if !s.Date.Before(start) && s.Date.Before(end) {
			out = append(out, s)
		}
	}
	return out
}

// Exercises returns the distinct exercise names in first-appearance order.
// Names are compared exactly: "Bench Press" and "bench press" are distinct.
func (t Table) Exercises() []string {
	seen := make(map[string]bool, len(t))
	var names []string
	for _, s := range t {
		if !seen[s.Exercise] {
			seen[s.Exercise] = true
			names = append(names, s.Exercise)
		}
	}
	return names
}

// TotalVolume sums reps × weight across the table.
func (t Table) TotalVolume() float64 {
	var total float64
	for _, s := range t {
		total += s.Volume
	}
	return total
}

// PoundsFrom converts a tracker weight to pounds. POUND values pass through;
// KILOGRAM and any unrecognized unit are treated as kilograms and converted,
// so the whole table carries one canonical unit.
func PoundsFrom(weight float64, unit string) float64 {
	if unit == UnitPound {
		return weight
	}
	return weight * LbsPerKg
}
