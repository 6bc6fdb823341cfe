package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/claude/gymtrack/internal/view"
	"github.com/mark3labs/mcp-go/mcp"
)

// queryRange returns start/end for a tool call. Without parameters, set
// listings default to the last 30 days; history tools (streak, PRs,
// progress) cover all time so records are never silently truncated.
func queryRange(startStr, endStr string, allTime bool) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now().Add(24 * time.Hour)
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else if !allTime {
		start = end.AddDate(0, 0, -31)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// queryFromRequest builds a view query from the common tool parameters.
func queryFromRequest(ctx context.Context, req mcp.CallToolRequest, allTime bool) (view.Query, error) {
	start, end, err := queryRange(req.GetString("start", ""), req.GetString("end", ""), allTime)
	if err != nil {
		return view.Query{}, err
	}

	q := view.Query{
		UserID:         UserIDFromContext(ctx),
		Start:          start,
		End:            end,
		IncludeSheet:   true,
		IncludeTracker: true,
	}
	if raw := req.GetString("sources", ""); raw != "" {
		q.IncludeSheet, q.IncludeTracker = false, false
		for _, tok := range strings.Split(raw, ",") {
			switch strings.TrimSpace(tok) {
			case "sheet":
				q.IncludeSheet = true
			case "tracker", "garmin":
				q.IncludeTracker = true
			}
		}
	}
	return q, nil
}

// --- Tool definitions ---

var toolGetSets = mcp.NewTool("get_sets",
	mcp.WithDescription("Retrieve the normalized set table: one row per performed set with date, exercise, reps, weight (lbs), volume, and source. Spreadsheet and Garmin data are merged with duplicates removed."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithString("sources", mcp.Description("Comma-separated source filter: 'sheet', 'tracker', or both. Defaults to both.")),
)

var toolGetStreak = mcp.NewTool("get_streak",
	mcp.WithDescription("Get the longest run of consecutive weeks with at least 5 logged sets, plus per-week set counts. Covers all recorded history unless a range is given."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to the beginning of recorded history.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Per-exercise personal records: the heaviest set and the highest-volume set, each with an Epley estimated one-rep max. Covers all recorded history unless a range is given."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to the beginning of recorded history.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Per-day training progression for one exercise: max weight and total volume per training day, ascending. Exercise names match exactly."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exact exercise name (e.g. 'Bench Press')")),
	mcp.WithString("start", mcp.Description("Start date. Defaults to the beginning of recorded history.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("Aggregate statistics over stored raw data: row counts per source, activity count, date range, and the most-logged exercises."),
)

// --- Tool handlers ---

func (h *handlers) getSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := queryFromRequest(ctx, req, false)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	table, err := h.ds.Sets(ctx, q)
	if err != nil {
		h.log.Error("mcp get_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"sets":         table,
		"count":        len(table),
		"total_volume": table.TotalVolume(),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStreak(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := queryFromRequest(ctx, req, true)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	streak, weeks, err := h.ds.Streak(ctx, q)
	if err != nil {
		h.log.Error("mcp get_streak", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"streak_weeks": streak,
		"weekly_sets":  weeks,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := queryFromRequest(ctx, req, true)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	maxWeight, maxVolume, err := h.ds.PersonalRecords(ctx, q)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"max_weight": maxWeight,
		"max_volume": maxVolume,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	q, err := queryFromRequest(ctx, req, true)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	series, err := h.ds.Progress(ctx, q, exercise)
	if err != nil {
		h.log.Error("mcp get_exercise_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercise": exercise,
		"series":   series,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDataStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.Stats(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
