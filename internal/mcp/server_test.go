package mcp

import (
	"context"
	"testing"
	"time"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestQueryRangeDefaults verifies the windowed default (~31 days ending
// tomorrow) and the all-time default (zero start).
func TestQueryRangeDefaults(t *testing.T) {
	start, end, err := queryRange("", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := end.Sub(start); diff.Hours() < 31*24-1 || diff.Hours() > 31*24+1 {
		t.Errorf("default range = %.0f hours, want ~%d", diff.Hours(), 31*24)
	}
	if end.Before(time.Now()) {
		t.Errorf("default end = %v, want beyond now", end)
	}

	start, _, err = queryRange("", "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.IsZero() {
		t.Errorf("all-time start = %v, want zero", start)
	}
}

// TestQueryRangeExplicit verifies explicit date parsing in both accepted
// layouts.
func TestQueryRangeExplicit(t *testing.T) {
	start, end, err := queryRange("2024-01-01", "2024-01-31", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2024 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
	if end.Year() != 2024 || end.Month() != 1 || end.Day() != 31 {
		t.Errorf("end = %v, want 2024-01-31", end)
	}

	start, _, err = queryRange("2024-06-15T10:30:00Z", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}
}

// TestQueryRangeInvalid verifies malformed timestamps are rejected.
func TestQueryRangeInvalid(t *testing.T) {
	if _, _, err := queryRange("not-a-date", "", false); err == nil {
		t.Error("expected error for invalid start")
	}
	if _, _, err := queryRange("", "31/01/2024", true); err == nil {
		t.Error("expected error for invalid end")
	}
}
