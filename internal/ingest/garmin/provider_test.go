package garmin

import (
	"encoding/json"
	"testing"

	"github.com/claude/gymtrack/internal/models"
)

// TestFlattenActivity verifies the nested exercise sets of one activity are
// flattened into per-set rows with weights converted to pounds.
func TestFlattenActivity(t *testing.T) {
	raw := `{
		"activityId": 42,
		"activityName": "Strength",
		"startTimeLocal": "2024-03-15 18:05:30",
		"activityType": {"typeKey": "STRENGTH_TRAINING"},
		"exerciseSets": [
			{
				"exerciseName": "BENCH_PRESS",
				"category": "BENCH_PRESS",
				"sets": [
					{"setNumber": 1, "repetitionCount": 8, "weightValue": 100, "weightUnit": "KILOGRAM"},
					{"setNumber": 2, "repetitionCount": 6, "weightValue": 135, "weightUnit": "POUND"}
				]
			},
			{
				"exerciseName": "LAT_PULLDOWN",
				"sets": [
					{"setNumber": 1, "repetitionCount": 10, "weightValue": 120, "weightUnit": "POUND"}
				]
			}
		]
	}`
	var activity models.GarminActivity
	if err := json.Unmarshal([]byte(raw), &activity); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	rows := flattenActivity(activity, 1)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	// Kilogram weights convert to pounds at ingest
	r1 := rows[0]
	if r1.WeightLbs != 100*2.20462 {
		t.Errorf("r1.WeightLbs = %f, want %f", r1.WeightLbs, 100*2.20462)
	}
	if r1.WeightUnit != models.WeightUnitKilogram {
		t.Errorf("r1.WeightUnit = %q, original unit should be kept", r1.WeightUnit)
	}

	// Pound weights pass through unchanged
	r2 := rows[1]
	if r2.WeightLbs != 135 {
		t.Errorf("r2.WeightLbs = %f, want 135", r2.WeightLbs)
	}

	r3 := rows[2]
	if r3.ExerciseName != "LAT_PULLDOWN" || r3.ActivityID != 42 {
		t.Errorf("r3 = %+v", r3)
	}
	if r3.Date.Day() != 15 || r3.Date.Hour() != 18 {
		t.Errorf("r3.Date = %v", r3.Date)
	}
}

// TestFlattenActivityNoSets verifies an activity without exercise sets yields
// no rows. Strength activities logged without set tracking are legal.
func TestFlattenActivityNoSets(t *testing.T) {
	activity := models.GarminActivity{ActivityID: 7}
	if rows := flattenActivity(activity, 1); len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}
