package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/gymtrack/internal/cache"
	"github.com/claude/gymtrack/internal/models"
	"github.com/claude/gymtrack/internal/view"
)

// stubStore serves fixed raw rows so handlers can be exercised without a
// database.
type stubStore struct {
	sheet   []models.SheetEntryRow
	tracker []models.TrackerSetRow
}

func (s *stubStore) QuerySheetEntries(ctx context.Context, start, end time.Time, userID int) ([]models.SheetEntryRow, error) {
	return s.sheet, nil
}

func (s *stubStore) QueryTrackerSets(ctx context.Context, start, end time.Time, userID int) ([]models.TrackerSetRow, error) {
	return s.tracker, nil
}

func testServer(store *stubStore) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := view.New(store, cache.New(time.Hour), log)
	return &Server{view: v, log: log}
}

// TestHandleSets verifies the sets endpoint returns the derived table with
// its count and total volume.
func TestHandleSets(t *testing.T) {
	s := testServer(&stubStore{
		sheet: []models.SheetEntryRow{
			{UserID: 1, Date: time.Now().AddDate(0, 0, -2), Exercise: "Bench Press", RepsNotation: "8;6", WeightNotation: "135;145"},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sets", nil)
	rec := httptest.NewRecorder()
	s.handleSets(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Count       int     `json:"count"`
		TotalVolume float64 `json:"total_volume"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
	if want := 8*135.0 + 6*145.0; resp.TotalVolume != want {
		t.Errorf("total_volume = %f, want %f", resp.TotalVolume, want)
	}
}

// TestHandleSetsBadSource verifies an unknown sources token is a 400, not a
// silently empty table.
func TestHandleSetsBadSource(t *testing.T) {
	s := testServer(&stubStore{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sets?sources=fitbit", nil)
	rec := httptest.NewRecorder()
	s.handleSets(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleProgressRequiresExercise verifies the progress endpoint rejects
// requests without an exercise parameter.
func TestHandleProgressRequiresExercise(t *testing.T) {
	s := testServer(&stubStore{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil)
	rec := httptest.NewRecorder()
	s.handleProgress(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// TestHandleProgressUnknownExercise verifies an unknown exercise yields an
// empty series with 200, matching the tolerant error model.
func TestHandleProgressUnknownExercise(t *testing.T) {
	s := testServer(&stubStore{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress?exercise=Snatch", nil)
	rec := httptest.NewRecorder()
	s.handleProgress(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Exercise string            `json:"exercise"`
		Series   []json.RawMessage `json:"series"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Series) != 0 {
		t.Errorf("series = %v, want empty", resp.Series)
	}
}

// TestHandleStreakEmpty verifies the streak endpoint reports zero for a user
// with no data instead of erroring.
func TestHandleStreakEmpty(t *testing.T) {
	s := testServer(&stubStore{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/streak", nil)
	rec := httptest.NewRecorder()
	s.handleStreak(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		StreakWeeks int `json:"streak_weeks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StreakWeeks != 0 {
		t.Errorf("streak_weeks = %d, want 0", resp.StreakWeeks)
	}
}

// TestParseTimeRangeDefaults verifies the windowing defaults: sets queries
// cover the last 30 days, history queries cover all time.
func TestParseTimeRangeDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sets", nil)

	start, end, err := parseTimeRange(req, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window := end.Sub(start); window < 30*24*time.Hour || window > 32*24*time.Hour {
		t.Errorf("default window = %v, want about 31 days", window)
	}

	start, _, err = parseTimeRange(req, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.IsZero() {
		t.Errorf("all-time start = %v, want zero time", start)
	}
}

// TestParseTimeRangeDateOnly verifies date-only end params extend to the end
// of that day so the named day is included.
func TestParseTimeRangeDateOnly(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sets?start=2024-01-01&end=2024-01-31", nil)
	start, end, err := parseTimeRange(req, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Day() != 1 {
		t.Errorf("start = %v", start)
	}
	if end.Day() != 1 || end.Month() != 2 {
		t.Errorf("end = %v, want pushed past Jan 31", end)
	}
}

// TestParseTimeRangeInvalid verifies malformed time params are rejected.
func TestParseTimeRangeInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sets?start=lastweek", nil)
	if _, _, err := parseTimeRange(req, false); err == nil {
		t.Fatal("expected error for malformed start")
	}
}

// TestParseSources verifies source selection tokens, including the garmin
// alias for the tracker source.
func TestParseSources(t *testing.T) {
	cases := []struct {
		raw           string
		sheet, track  bool
		expectFailure bool
	}{
		{raw: "", sheet: true, track: true},
		{raw: "sheet", sheet: true},
		{raw: "tracker", track: true},
		{raw: "garmin", track: true},
		{raw: "sheet,tracker", sheet: true, track: true},
		{raw: "strava", expectFailure: true},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sets?sources="+tc.raw, nil)
		gotSheet, gotTrack, err := parseSources(req)
		if tc.expectFailure {
			if err == nil {
				t.Errorf("sources=%q: expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("sources=%q: unexpected error: %v", tc.raw, err)
			continue
		}
		if gotSheet != tc.sheet || gotTrack != tc.track {
			t.Errorf("sources=%q: got (%t, %t), want (%t, %t)", tc.raw, gotSheet, gotTrack, tc.sheet, tc.track)
		}
	}
}
