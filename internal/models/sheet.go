package models

import (
	"fmt"
	"time"
)

// SheetDateLayout is the day-first date format used by the spreadsheet export.
const SheetDateLayout = "02/01/2006"

// Required and optional column headers of the spreadsheet CSV export.
const (
	SheetColDate     = "Date"
	SheetColExercise = "Exercise"
	SheetColReps     = "Reps"
	SheetColWeight   = "Weight"
	SheetColDuration = "Time seconds"
)

// ParseSheetDate parses a DD/MM/YYYY spreadsheet date.
func ParseSheetDate(s string) (time.Time, error) {
	t, err := time.Parse(SheetDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse sheet date %q: %w", s, err)
	}
	return t, nil
}

// SheetEntry is one logged row of the spreadsheet export: an exercise with its
// rep and weight notation strings, still unparsed.
type SheetEntry struct {
	Date           time.Time
	Exercise       string
	RepsNotation   string
	WeightNotation string
	DurationSec    *float64
}
