// Package view derives the normalized set table from stored raw rows. It is
// the orchestration seam between storage and the pure computation core:
// load raw rows, normalize, merge, memoize. Both the HTTP handlers and the
// MCP tools read through it.
package view

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/gymtrack/internal/cache"
	"github.com/claude/gymtrack/internal/models"
	"github.com/claude/gymtrack/internal/workout"
)

// Store is the slice of the storage layer the view reads raw rows from.
// *storage.DB satisfies it; tests use an in-memory fake.
type Store interface {
	QuerySheetEntries(ctx context.Context, start, end time.Time, userID int) ([]models.SheetEntryRow, error)
	QueryTrackerSets(ctx context.Context, start, end time.Time, userID int) ([]models.TrackerSetRow, error)
}

// Query selects the raw rows a derived table is built from.
type Query struct {
	UserID         int
	Start, End     time.Time
	IncludeSheet   bool
	IncludeTracker bool
}

func (q Query) cacheKey() string {
	return fmt.Sprintf("%d|%t|%t|%d|%d",
		q.UserID, q.IncludeSheet, q.IncludeTracker, q.Start.Unix(), q.End.Unix())
}

// View builds and memoizes derived set tables.
type View struct {
	store Store
	cache *cache.Cache
	log   *slog.Logger
}

// New creates a view over the given store.
func New(store Store, c *cache.Cache, log *slog.Logger) *View {
	return &View{store: store, cache: c, log: log}
}

// Sets returns the normalized, merged set table for the query, from cache
// when a recent identical query already built it.
func (v *View) Sets(ctx context.Context, q Query) (workout.Table, error) {
	key := q.cacheKey()
	if table, ok := v.cache.Get(key); ok {
		return table, nil
	}

	table, err := v.build(ctx, q)
	if err != nil {
		return nil, err
	}
	v.cache.Put(key, table)
	return table, nil
}

func (v *View) build(ctx context.Context, q Query) (workout.Table, error) {
	var sheetTable, trackerTable workout.Table
	dropped := 0

	if q.IncludeSheet {
		entries, err := v.store.QuerySheetEntries(ctx, q.Start, q.End, q.UserID)
		if err != nil {
			return nil, fmt.Errorf("loading sheet entries: %w", err)
		}
		for _, e := range entries {
			sets, d := workout.NormalizeSheetEntry(e.Date, e.Exercise, e.RepsNotation, e.WeightNotation)
			sheetTable = append(sheetTable, sets...)
			dropped += d
		}
	}

	if q.IncludeTracker {
		rows, err := v.store.QueryTrackerSets(ctx, q.Start, q.End, q.UserID)
		if err != nil {
			return nil, fmt.Errorf("loading tracker sets: %w", err)
		}
		for _, r := range rows {
			// Stored weights are already pounds.
			trackerTable = append(trackerTable,
				workout.NormalizeTrackerSet(r.Date, r.ExerciseName, r.Reps, r.WeightLbs, workout.UnitPound, r.ActivityID))
		}
	}

	table := workout.Merge(sheetTable, trackerTable)
	v.log.Debug("derived set table",
		"sheet_sets", len(sheetTable),
		"tracker_sets", len(trackerTable),
		"merged", len(table),
		"tokens_dropped", dropped)
	return table, nil
}

// Streak returns the longest qualifying-week run and the weekly counts behind it.
func (v *View) Streak(ctx context.Context, q Query) (int, []workout.WeeklyCount, error) {
	table, err := v.Sets(ctx, q)
	if err != nil {
		return 0, nil, err
	}
	streak, weeks := workout.Streak(table)
	return streak, weeks, nil
}

// PersonalRecords returns the max-weight and max-volume record per exercise.
func (v *View) PersonalRecords(ctx context.Context, q Query) (maxWeight, maxVolume []workout.PersonalRecord, err error) {
	table, err := v.Sets(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	maxWeight, maxVolume = workout.PersonalRecords(table)
	return maxWeight, maxVolume, nil
}

// Progress returns the per-day (max weight, total volume) series for one
// exercise. An unknown exercise yields an empty series, not an error.
func (v *View) Progress(ctx context.Context, q Query, exercise string) ([]workout.ProgressPoint, error) {
	table, err := v.Sets(ctx, q)
	if err != nil {
		return nil, err
	}
	return workout.Progress(table, exercise), nil
}

// Exercises returns the distinct exercise names in the query window.
func (v *View) Exercises(ctx context.Context, q Query) ([]string, error) {
	table, err := v.Sets(ctx, q)
	if err != nil {
		return nil, err
	}
	return table.Exercises(), nil
}

// Invalidate drops all memoized tables. Called after every ingest.
func (v *View) Invalidate() {
	v.cache.Clear()
}
