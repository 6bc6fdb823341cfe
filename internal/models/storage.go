package models

import "time"

// SheetEntryRow is a row ready for insertion into the sheet_entries table.
type SheetEntryRow struct {
	UserID         int
	Date           time.Time
	Exercise       string
	RepsNotation   string
	WeightNotation string
	DurationSec    *float64
}

// TrackerSetRow is a row ready for insertion into the tracker_sets table.
// Weight is stored in pounds; the unit Garmin reported is kept for provenance.
type TrackerSetRow struct {
	UserID       int
	ActivityID   int64
	Date         time.Time
	ExerciseName string
	Category     string
	SetNumber    int
	Reps         int
	WeightLbs    float64
	WeightUnit   string
}
