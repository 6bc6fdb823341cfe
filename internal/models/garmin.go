package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// GarminTime handles the Garmin Connect local time format: "2006-01-02 15:04:05".
// Also handles date-only "2006-01-02" for resilience against trimmed exports.
type GarminTime struct {
	time.Time
}

const (
	GarminTimeLayout     = "2006-01-02 15:04:05"
	GarminDateOnlyLayout = "2006-01-02"
)

func (t *GarminTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.Parse(s)
}

func (t GarminTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(GarminTimeLayout))
}

// Parse parses a Garmin time string, trying full datetime first, then date-only.
func (t *GarminTime) Parse(s string) error {
	parsed, err := time.Parse(GarminTimeLayout, s)
	if err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err2 := time.Parse(GarminDateOnlyLayout, s)
	if err2 == nil {
		t.Time = parsed
		return nil
	}
	return fmt.Errorf("cannot parse Garmin time %q: %w", s, err)
}

// ActivityTypeStrength is the Garmin typeKey for strength workouts.
// Only activities of this type carry exercise sets worth ingesting.
const ActivityTypeStrength = "STRENGTH_TRAINING"

// Weight units reported by Garmin per set.
const (
	WeightUnitPound    = "POUND"
	WeightUnitKilogram = "KILOGRAM"
)

// GarminPayload is the top-level JSON structure of a Garmin Connect
// activities export.
type GarminPayload struct {
	Activities []GarminActivity `json:"activities"`
}

// GarminActivity is a single exported activity with its nested exercise sets.
type GarminActivity struct {
	ActivityID     int64              `json:"activityId"`
	ActivityName   string             `json:"activityName"`
	StartTimeLocal GarminTime         `json:"startTimeLocal"`
	ActivityType   GarminActivityType `json:"activityType"`
	Duration       float64            `json:"duration,omitempty"`
	ExerciseSets   []GarminExercise   `json:"exerciseSets"`
}

// GarminActivityType carries the activity classification.
type GarminActivityType struct {
	TypeKey string `json:"typeKey"`
}

// IsStrength reports whether the activity is a strength training workout.
func (a GarminActivity) IsStrength() bool {
	return a.ActivityType.TypeKey == ActivityTypeStrength
}

// GarminExercise groups the sets recorded for one exercise within an activity.
type GarminExercise struct {
	ExerciseName string      `json:"exerciseName"`
	Category     string      `json:"category,omitempty"`
	Sets         []GarminSet `json:"sets"`
}

// GarminSet is one recorded set: reps and weight in the unit Garmin reports.
type GarminSet struct {
	SetNumber       int     `json:"setNumber"`
	RepetitionCount int     `json:"repetitionCount"`
	WeightValue     float64 `json:"weightValue"`
	WeightUnit      string  `json:"weightUnit"`
	DurationSec     float64 `json:"duration,omitempty"`
}
