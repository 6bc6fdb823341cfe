package sample

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/claude/gymtrack/internal/ingest/sheet"
	"github.com/claude/gymtrack/internal/models"
	"github.com/claude/gymtrack/internal/workout"
)

// TestDeterministic verifies the same seed produces identical exports.
func TestDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if _, err := New(30, 42).WriteSheet(&a); err != nil {
		t.Fatal(err)
	}
	if _, err := New(30, 42).WriteSheet(&b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("same seed produced different sheets")
	}
}

// TestSheetParses verifies the generated CSV round-trips through the sheet
// parser with no skipped rows and normalizes without dropped tokens.
func TestSheetParses(t *testing.T) {
	var buf bytes.Buffer
	dates, err := New(60, 7).WriteSheet(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) == 0 {
		t.Fatal("no workout days generated")
	}

	entries, skipped, err := sheet.Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(entries) < len(dates)*3 {
		t.Errorf("entries = %d, want at least 3 per workout day (%d days)", len(entries), len(dates))
	}

	for _, e := range entries {
		table, dropped := workout.NormalizeSheetEntry(e.Date, e.Exercise, e.RepsNotation, e.WeightNotation)
		if dropped != 0 {
			t.Errorf("%s %s: dropped %d tokens", e.Date.Format("2006-01-02"), e.Exercise, dropped)
		}
		if len(table) == 0 {
			t.Errorf("%s %s: normalized to zero sets", e.Date.Format("2006-01-02"), e.Exercise)
		}
	}
}

// TestGarminDecodes verifies the generated Garmin export decodes as a payload
// of strength activities matching the sheet's workout dates.
func TestGarminDecodes(t *testing.T) {
	g := New(45, 99)

	var sheetBuf bytes.Buffer
	dates, err := g.WriteSheet(&sheetBuf)
	if err != nil {
		t.Fatal(err)
	}

	var garminBuf bytes.Buffer
	if err := g.WriteGarmin(&garminBuf, dates); err != nil {
		t.Fatal(err)
	}

	var payload models.GarminPayload
	if err := json.Unmarshal(garminBuf.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if len(payload.Activities) != len(dates) {
		t.Fatalf("activities = %d, want %d", len(payload.Activities), len(dates))
	}

	ids := map[int64]bool{}
	for i, a := range payload.Activities {
		if !a.IsStrength() {
			t.Errorf("activity %d type = %q, want strength", i, a.ActivityType.TypeKey)
		}
		if ids[a.ActivityID] {
			t.Errorf("duplicate activity ID %d", a.ActivityID)
		}
		ids[a.ActivityID] = true
		ay, am, ad := a.StartTimeLocal.Date()
		wy, wm, wd := dates[i].Date()
		if ay != wy || am != wm || ad != wd {
			t.Errorf("activity %d date = %v, want %v", i, a.StartTimeLocal.Time, dates[i])
		}
		for _, ex := range a.ExerciseSets {
			for _, set := range ex.Sets {
				if set.WeightUnit != models.WeightUnitKilogram {
					t.Errorf("weight unit = %q, want kilogram", set.WeightUnit)
				}
				if set.RepetitionCount < 1 {
					t.Errorf("reps = %d, want at least 1", set.RepetitionCount)
				}
			}
		}
	}
}
