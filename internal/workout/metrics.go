package workout

import (
	"sort"
	"time"
)

// StreakThreshold is the number of sets an ISO week needs to keep a streak
// alive. The threshold counts sets, not workouts.
const StreakThreshold = 5

// WeeklyCount is the set count for one ISO calendar week.
type WeeklyCount struct {
	Year int `json:"year"`
	Week int `json:"week"`
	Sets int `json:"sets"`
}

// WeeklyCounts groups the table's sets by ISO (year, week), ascending. Weeks
// with no rows are absent from the result, never zero-filled — a week the user
// skipped entirely produces no entry at all.
func WeeklyCounts(t Table) []WeeklyCount {
	type week struct{ year, wk int }
	counts := make(map[week]int)
	for _, s := range t {
		y, w := s.Date.ISOWeek()
		counts[week{y, w}]++
	}

	out := make([]WeeklyCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, WeeklyCount{Year: k.year, Week: k.wk, Sets: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Week < out[j].Week
	})
	return out
}

// Streak returns the longest run of consecutive qualifying weeks (set count >=
// StreakThreshold) together with the weekly counts. A week under the threshold
// resets the running count; the reported streak is the maximum run seen, not
// the run in progress. Consecutive here means adjacent in the sequence of
// weeks that have data: a week absent from the table cannot qualify, but it
// also cannot appear as an explicit zero row.
func Streak(t Table) (int, []WeeklyCount) {
	weekly := WeeklyCounts(t)

	var streak, current int
	for _, w := range weekly {
		if w.Sets >= StreakThreshold {
			current++
			if current > streak {
				streak = current
			}
		} else {
			current = 0
		}
	}
	return streak, weekly
}

// PersonalRecord is the best single set for one exercise by some ranking key.
// Estimated1RM is the Epley one-rep-max estimate for the record set,
// weight × (1 + reps/30).
type PersonalRecord struct {
	Exercise     string    `json:"exercise"`
	Date         time.Time `json:"date"`
	Reps         int       `json:"reps"`
	Weight       float64   `json:"weight_lbs"`
	Volume       float64   `json:"volume"`
	Estimated1RM float64   `json:"estimated_1rm"`
}

// PersonalRecords computes the max-weight and max-volume record per exercise
// over the table. Tie-break is documented and deliberate: scanning in table
// order, a row replaces the incumbent when its key is greater than or equal,
// so among equal candidates the last occurrence wins. Results are ordered by
// first appearance of the exercise in the table.
func PersonalRecords(t Table) (maxWeight, maxVolume []PersonalRecord) {
	byWeight := make(map[string]Set)
	byVolume := make(map[string]Set)
	for _, s := range t {
		if best, ok := byWeight[s.Exercise]; !ok || s.Weight >= best.Weight {
			byWeight[s.Exercise] = s
		}
		if best, ok := byVolume[s.Exercise]; !ok || s.Volume >= best.Volume {
			byVolume[s.Exercise] = s
		}
	}

	for _, name := range t.Exercises() {
		maxWeight = append(maxWeight, recordFrom(byWeight[name]))
		maxVolume = append(maxVolume, recordFrom(byVolume[name]))
	}
	return maxWeight, maxVolume
}

func recordFrom(s Set) PersonalRecord {
	return PersonalRecord{
		Exercise:     s.Exercise,
		Date:         s.Date,
		Reps:         s.Reps,
		Weight:       s.Weight,
		Volume:       s.Volume,
		Estimated1RM: epley1RM(s.Weight, s.Reps),
	}
}

// epley1RM estimates a one-rep max from a submaximal set.
func epley1RM(weight float64, reps int) float64 {
	if reps == 0 {
		return 0
	}
	return weight * (1 + float64(reps)/30)
}

// ProgressPoint is one day's best weight and total volume for an exercise.
type ProgressPoint struct {
	Date        time.Time `json:"date"`
	MaxWeight   float64   `json:"max_weight_lbs"`
	TotalVolume float64   `json:"total_volume"`
}

// Progress returns the time-ordered progress series for one exercise: per day,
// the heaviest set and the summed volume. An exercise with no rows in the
// table yields an empty series, which is a valid result rather than an error.
func Progress(t Table, exercise string) []ProgressPoint {
	byDay := make(map[string]*ProgressPoint)
	var order []string
	for _, s := range t {
		if s.Exercise != exercise {
			continue
		}
		day := s.Date.Format("2006-01-02")
		p, ok := byDay[day]
		if !ok {
			p = &ProgressPoint{Date: s.Date.Truncate(24 * time.Hour)}
			byDay[day] = p
			order = append(order, day)
		}
		if s.Weight > p.MaxWeight {
			p.MaxWeight = s.Weight
		}
		p.TotalVolume += s.Volume
	}

	sort.Strings(order)
	out := make([]ProgressPoint, 0, len(order))
	for _, day := range order {
		out = append(out, *byDay[day])
	}
	return out
}
