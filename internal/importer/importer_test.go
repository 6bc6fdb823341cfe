package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDryRunImport verifies a dry run parses both export types, reports
// counts, and never needs a database connection.
func TestDryRunImport(t *testing.T) {
	dir := t.TempDir()

	sheetDir := filepath.Join(dir, "Sheet")
	if err := os.MkdirAll(sheetDir, 0o755); err != nil {
		t.Fatal(err)
	}
	csv := "Date,Exercise,Reps,Weight\n" +
		"03/04/2024,Bench Press,8;8;6,135;135;145\n" +
		"03/04/2024,Pull Ups,10;10;8,Body\n" +
		"bad-date,Squat,5,225\n"
	if err := os.WriteFile(filepath.Join(sheetDir, "export.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	garminDir := filepath.Join(dir, "Garmin")
	if err := os.MkdirAll(garminDir, 0o755); err != nil {
		t.Fatal(err)
	}
	payload := `{"activities":[
		{"activityId":1,"activityName":"Strength","startTimeLocal":"2024-04-03 18:00:00",
		 "activityType":{"typeKey":"STRENGTH_TRAINING"},"exerciseSets":[]},
		{"activityId":2,"activityName":"Run","startTimeLocal":"2024-04-04 07:00:00",
		 "activityType":{"typeKey":"running"},"exerciseSets":[]}
	]}`
	if err := os.WriteFile(filepath.Join(garminDir, "activities.json"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	imp := New(nil, discardLogger(), true)
	stats, err := imp.Import(context.Background(), dir, 1)
	if err != nil {
		t.Fatal(err)
	}

	if stats.FilesProcessed != 2 {
		t.Errorf("FilesProcessed = %d, want 2", stats.FilesProcessed)
	}
	if stats.SheetRowsSkipped != 1 {
		t.Errorf("SheetRowsSkipped = %d, want 1 (bad date row)", stats.SheetRowsSkipped)
	}
	if stats.ActivitiesIngested != 1 {
		t.Errorf("ActivitiesIngested = %d, want 1 (strength only)", stats.ActivitiesIngested)
	}
}

// TestDryRunBadGarminPayload verifies malformed JSON counts as a file error
// rather than aborting the run.
func TestDryRunBadGarminPayload(t *testing.T) {
	dir := t.TempDir()
	garminDir := filepath.Join(dir, "Garmin")
	if err := os.MkdirAll(garminDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(garminDir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	imp := New(nil, discardLogger(), true)
	stats, err := imp.Import(context.Background(), dir, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesErrored != 1 {
		t.Errorf("FilesErrored = %d, want 1", stats.FilesErrored)
	}
	if stats.FilesProcessed != 0 {
		t.Errorf("FilesProcessed = %d, want 0", stats.FilesProcessed)
	}
}
