package workout

import "time"

// ExplodeEntry turns one spreadsheet entry's parsed rep and weight lists into
// normalized sets, pairing reps[i] with weights[i]. When the lists disagree in
// length the longer one is truncated — dirty hand-entered rows lose their
// unmatched trailing values rather than failing the whole entry.
func ExplodeEntry(date time.Time, exercise string, reps []int, weights []float64) Table {
	n := len(reps)
	if len(weights) < n {
		n = len(weights)
	}
	if n == 0 {
		return nil
	}
	sets := make(Table, 0, n)
	for i := 0; i < n; i++ {
		sets = append(sets, Set{
			Date:     date,
			Exercise: exercise,
			Reps:     reps[i],
			Weight:   weights[i],
			Volume:   float64(reps[i]) * weights[i],
			Source:   SourceSheet,
		})
	}
	return sets
}

// NormalizeSheetEntry parses an entry's raw notation and explodes it into sets.
// dropped counts the rep and weight tokens the parsers discarded.
func NormalizeSheetEntry(date time.Time, exercise, repsNotation, weightNotation string) (sets Table, dropped int) {
	reps, droppedReps := ParseReps(repsNotation)
	weights, droppedWeights := ParseWeights(weightNotation, SetCount(repsNotation))
	return ExplodeEntry(date, exercise, reps, weights), droppedReps + droppedWeights
}

// NormalizeTrackerSet builds the normalized set for one tracker record. Tracker
// records are already one-per-set, so this is the identity transform after unit
// conversion.
func NormalizeTrackerSet(date time.Time, exercise string, reps int, weight float64, unit string, activityID int64) Set {
	lbs := PoundsFrom(weight, unit)
	return Set{
		Date:       date,
		Exercise:   exercise,
		Reps:       reps,
		Weight:     lbs,
		Volume:     float64(reps) * lbs,
		Source:     SourceTracker,
		ActivityID: activityID,
	}
}

// EntryVolume is the row-level total volume: sum of reps[i] × weights[i] over
// the paired prefix.
func EntryVolume(reps []int, weights []float64) float64 {
	n := len(reps)
	if len(weights) < n {
		n = len(weights)
	}
	var total float64
	for i := 0; i < n; i++ {
		total += float64(reps[i]) * weights[i]
	}
	return total
}

// MaxWeight returns the largest weight in the list, or 0 for an empty list.
func MaxWeight(weights []float64) float64 {
	var max float64
	for _, w := range weights {
		if w > max {
			max = w
		}
	}
	return max
}
