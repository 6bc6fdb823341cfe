package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/gymtrack/internal/view"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) recentTraining(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	end := time.Now().Add(24 * time.Hour)
	start := end.AddDate(0, 0, -15)

	q := view.Query{
		UserID:         uid,
		Start:          start,
		End:            end,
		IncludeSheet:   true,
		IncludeTracker: true,
	}

	table, err := h.ds.Sets(ctx, q)
	if err != nil {
		return nil, err
	}

	// Streak over all recorded history, not only the recent window
	streak, _, err := h.ds.Streak(ctx, view.Query{
		UserID:         uid,
		End:            end,
		IncludeSheet:   true,
		IncludeTracker: true,
	})
	if err != nil {
		h.log.Warn("recent_training: streak query failed", "error", err)
	}

	summary := map[string]any{
		"window_days":  14,
		"sets":         table,
		"total_sets":   len(table),
		"total_volume": table.TotalVolume(),
		"exercises":    table.Exercises(),
		"streak_weeks": streak,
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
