package workout

import (
	"strconv"
	"strings"
)

// Bodyweight exercises are logged without an explicit load ("Body", "Body+Band").
// Two different base constants are in play depending on how the token is reached:
// a single "body" token broadcast across multiple sets uses the 70 lb base, while
// tokens resolved one-by-one use the 120 lb base. The split is historical — merged
// metrics were computed with both, so unifying them would silently change every
// previously reported volume and PR. Keep both until a deliberate migration.
const (
	// BroadcastBodyweightLbs is the base applied when a single bodyweight token
	// covers every set of an entry.
	BroadcastBodyweightLbs = 70

	// PerTokenBodyweightLbs is the base applied when bodyweight tokens are
	// resolved individually.
	PerTokenBodyweightLbs = 120

	// BandOffsetLbs is added for resistance-band assisted bodyweight work.
	BandOffsetLbs = 10
)

// ParseReps parses semicolon-delimited rep notation like "8;8;6" into ints.
// Empty or whitespace-only input yields nil. Tokens that are not pure
// non-negative integers are dropped silently; dropped reports how many.
func ParseReps(notation string) (reps []int, dropped int) {
	if strings.TrimSpace(notation) == "" {
		return nil, 0
	}
	for _, tok := range strings.Split(notation, ";") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			dropped++
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			dropped++
			continue
		}
		reps = append(reps, n)
	}
	return reps, dropped
}

// ParseWeights parses semicolon-delimited weight notation into pounds.
// setCount is the number of sets the entry's rep notation declared.
//
// A single token containing "body" with setCount > 1 is shorthand for "bodyweight
// on every set": the broadcast base (plus the band offset when the token also
// contains "band") is repeated setCount times. In every other case tokens are
// resolved independently: bodyweight tokens use the per-token base, numeric
// tokens are kept as floats, and anything else is dropped silently.
func ParseWeights(notation string, setCount int) (weights []float64, dropped int) {
	if strings.TrimSpace(notation) == "" {
		return nil, 0
	}
	tokens := strings.Split(notation, ";")

	if len(tokens) == 1 && setCount > 1 && strings.Contains(strings.ToLower(tokens[0]), "body") {
		w := float64(BroadcastBodyweightLbs)
		if strings.Contains(strings.ToLower(tokens[0]), "band") {
			w += BandOffsetLbs
		}
		weights = make([]float64, setCount)
		for i := range weights {
			weights[i] = w
		}
		return weights, 0
	}

	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		switch {
		case strings.Contains(tok, "body"):
			w := float64(PerTokenBodyweightLbs)
			if strings.Contains(tok, "band") {
				w += BandOffsetLbs
			}
			weights = append(weights, w)
		default:
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil || f < 0 {
				dropped++
				continue
			}
			weights = append(weights, f)
		}
	}
	return weights, dropped
}

// SetCount reports how many sets a rep notation declares: the number of
// semicolon-separated fields, zero for empty input. Non-numeric fields still
// count here — the original sheet format treats every field as one set slot.
func SetCount(repsNotation string) int {
	if strings.TrimSpace(repsNotation) == "" {
		return 0
	}
	return len(strings.Split(repsNotation, ";"))
}
