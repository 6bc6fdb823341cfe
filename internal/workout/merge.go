package workout

import "sort"

// dedupKey identifies one physical set across sources. Truncating the date to
// the day matches the sheet's day-granular dates against tracker timestamps.
// The occurrence ordinal distinguishes legitimately repeated sets within one
// source (three straight sets of 8×135 are three rows, not one) while still
// collapsing the same set logged in both sources.
type dedupKey struct {
	date       string
	exercise   string
	reps       int
	weight     float64
	occurrence int
}

// Merge unions the two source tables into one, sorted by date, with
// cross-source duplicates collapsed: a tracker set matching a manually entered
// set on (date, exercise, reps, weight, occurrence) is the same physical set
// logged twice, so one row survives. The tie-break is explicit: a sheet-sourced
// row always beats its tracker-sourced duplicate — manual entries are the
// user's authoritative log; otherwise the later occurrence in date order wins.
//
// An empty table on either side degrades to pass-through of the other; two
// empty tables merge to an empty table. Neither case is an error.
func Merge(sheet, tracker Table) Table {
	combined := make([]keyedSet, 0, len(sheet)+len(tracker))
	combined = append(combined, withOccurrences(sheet)...)
	combined = append(combined, withOccurrences(tracker)...)
	if len(combined) == 0 {
		return nil
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].set.Date.Before(combined[j].set.Date)
	})

	index := make(map[dedupKey]int, len(combined))
	var out Table
	for _, c := range combined {
		if i, ok := index[c.key]; ok {
			if out[i].Source == SourceSheet && c.set.Source == SourceTracker {
				continue
			}
			out[i] = c.set
			continue
		}
		index[c.key] = len(out)
		out = append(out, c.set)
	}
	return out
}

type keyedSet struct {
	set Set
	key dedupKey
}

// withOccurrences assigns each set its occurrence ordinal among identical
// (day, exercise, reps, weight) rows within a single source table.
func withOccurrences(t Table) []keyedSet {
	counts := make(map[dedupKey]int, len(t))
	out := make([]keyedSet, 0, len(t))
	for _, s := range t {
		base := dedupKey{
			date:     s.Date.Format("2006-01-02"),
			exercise: s.Exercise,
			reps:     s.Reps,
			weight:   s.Weight,
		}
		k := base
		k.occurrence = counts[base]
		counts[base]++
		out = append(out, keyedSet{set: s, key: k})
	}
	return out
}
