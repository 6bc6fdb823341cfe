package mcp

import (
	"context"

	"github.com/claude/gymtrack/internal/storage"
	"github.com/claude/gymtrack/internal/view"
	"github.com/claude/gymtrack/internal/workout"
)

// DataSource abstracts the data layer for MCP tools. Local (view over a
// direct DB connection) and HTTPClient (remote via REST API) both satisfy it.
type DataSource interface {
	Sets(ctx context.Context, q view.Query) (workout.Table, error)
	Streak(ctx context.Context, q view.Query) (int, []workout.WeeklyCount, error)
	PersonalRecords(ctx context.Context, q view.Query) (maxWeight, maxVolume []workout.PersonalRecord, err error)
	Progress(ctx context.Context, q view.Query, exercise string) ([]workout.ProgressPoint, error)
	Stats(ctx context.Context, userID int) (*storage.DataStats, error)
}

// Local serves MCP tools from an in-process view and database.
type Local struct {
	*view.View
	DB *storage.DB
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// Stats returns aggregate statistics over the stored raw rows.
func (l *Local) Stats(ctx context.Context, userID int) (*storage.DataStats, error) {
	return l.DB.GetDataStats(ctx, userID)
}
