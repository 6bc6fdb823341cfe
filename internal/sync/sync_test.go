package sync

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/claude/gymtrack/internal/ingest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeExportTree creates a temp export directory with one sheet CSV and one
// Garmin JSON export.
func writeExportTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	sheetDir := filepath.Join(root, "Sheet")
	if err := os.MkdirAll(sheetDir, 0o755); err != nil {
		t.Fatal(err)
	}
	csv := "Date,Exercise,Reps,Weight\n03/04/2024,Bench Press,8;8;6,135;135;145\n"
	if err := os.WriteFile(filepath.Join(sheetDir, "workouts.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	garminDir := filepath.Join(root, "Garmin")
	if err := os.MkdirAll(garminDir, 0o755); err != nil {
		t.Fatal(err)
	}
	payload := `{"activities":[]}`
	if err := os.WriteFile(filepath.Join(garminDir, "activities.json"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	return root
}

// newIngestServer returns a test server that accepts both ingest endpoints,
// counts requests per path, and checks the API key header.
func newIngestServer(t *testing.T, requests map[string]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("X-API-Key = %q, want test-key", got)
		}
		switch r.URL.Path {
		case "/api/v1/ingest/sheet", "/api/v1/ingest/garmin":
			requests[r.URL.Path]++
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(ingest.Result{RowsReceived: 1, RowsInserted: 3})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
}

// TestSyncRun verifies a full sync run sends both export files and records
// them in the state DB.
func TestSyncRun(t *testing.T) {
	root := writeExportTree(t)
	requests := map[string]int{}
	ts := newIngestServer(t, requests)
	defer ts.Close()

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	s := New(NewClient(ts.URL, "test-key"), state, root, false, discardLogger())
	stats, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}

	if stats.FilesTotal != 2 || stats.FilesSynced != 2 {
		t.Errorf("stats = %+v, want 2 files total and synced", stats)
	}
	if stats.RowsInserted != 6 {
		t.Errorf("RowsInserted = %d, want 6", stats.RowsInserted)
	}
	if requests["/api/v1/ingest/sheet"] != 1 || requests["/api/v1/ingest/garmin"] != 1 {
		t.Errorf("requests = %v, want one per endpoint", requests)
	}
}

// TestSyncSkipsUnchanged verifies the second run skips files already recorded
// in the state DB, and a modified file syncs again.
func TestSyncSkipsUnchanged(t *testing.T) {
	root := writeExportTree(t)
	requests := map[string]int{}
	ts := newIngestServer(t, requests)
	defer ts.Close()

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	client := NewClient(ts.URL, "test-key")
	log := discardLogger()

	if _, err := New(client, state, root, false, log).Run(); err != nil {
		t.Fatal(err)
	}

	stats, err := New(client, state, root, false, log).Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesSkipped != 2 || stats.FilesSynced != 0 {
		t.Errorf("second run stats = %+v, want 2 skipped, 0 synced", stats)
	}

	// Appending a row changes size and hash, so the file syncs again.
	csvPath := filepath.Join(root, "Sheet", "workouts.csv")
	f, err := os.OpenFile(csvPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("04/04/2024,Squat,5,225\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	stats, err = New(client, state, root, false, log).Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesSynced != 1 || stats.FilesSkipped != 1 {
		t.Errorf("third run stats = %+v, want 1 synced, 1 skipped", stats)
	}
}

// TestSyncDryRun verifies dry-run mode sends nothing and records nothing.
func TestSyncDryRun(t *testing.T) {
	root := writeExportTree(t)
	requests := map[string]int{}
	ts := newIngestServer(t, requests)
	defer ts.Close()

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	client := NewClient(ts.URL, "test-key")
	stats, err := New(client, state, root, true, discardLogger()).Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesSynced != 2 {
		t.Errorf("dry-run stats = %+v, want 2 synced", stats)
	}
	if len(requests) != 0 {
		t.Errorf("dry-run sent requests: %v", requests)
	}

	// Nothing recorded, so a real run still sends both files.
	stats, err = New(client, state, root, false, discardLogger()).Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesSynced != 2 {
		t.Errorf("post-dry-run stats = %+v, want 2 synced", stats)
	}
}

// TestClientBadPayloadNoRetry verifies a 400 response fails without
// exhausting retries.
func TestClientBadPayloadNoRetry(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":"bad csv"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "test-key")
	if _, err := client.SendSheet([]byte("not,a,sheet")); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", calls)
	}
}

// TestResolveExportDir verifies export dir resolution.
func TestResolveExportDir(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "GymExports")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := ResolveExportDir(root); got != nested {
		t.Errorf("ResolveExportDir(%q) = %q, want %q", root, got, nested)
	}
	if got := ResolveExportDir(nested); got != nested {
		t.Errorf("ResolveExportDir(%q) = %q, want itself", nested, got)
	}
	plain := t.TempDir()
	if got := ResolveExportDir(plain); got != plain {
		t.Errorf("ResolveExportDir(%q) = %q, want itself", plain, got)
	}
}
