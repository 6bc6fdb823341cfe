package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about all stored raw data.
type DataStats struct {
	TotalSheetEntries int64           `json:"total_sheet_entries"`
	TotalTrackerSets  int64           `json:"total_tracker_sets"`
	TotalActivities   int64           `json:"total_activities"`
	EarliestData      *time.Time      `json:"earliest_data"`
	LatestData        *time.Time      `json:"latest_data"`
	TopExercises      []ExerciseCount `json:"top_exercises"`
}

// ExerciseCount is the raw row count for one exercise name across both sources.
type ExerciseCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sheet_entries WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSheetEntries)
	if err != nil {
		return nil, fmt.Errorf("counting sheet entries: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT activity_id) FROM tracker_sets WHERE user_id = $1`, userID,
	).Scan(&stats.TotalTrackerSets, &stats.TotalActivities)
	if err != nil {
		return nil, fmt.Errorf("counting tracker sets: %w", err)
	}

	// Date range across both raw tables
	err = db.Pool.QueryRow(ctx,
		`SELECT MIN(t), MAX(t) FROM (
			SELECT MIN(date) AS t FROM sheet_entries WHERE user_id = $1
			UNION ALL
			SELECT MIN(date) FROM tracker_sets WHERE user_id = $1
			UNION ALL
			SELECT MAX(date) FROM sheet_entries WHERE user_id = $1
			UNION ALL
			SELECT MAX(date) FROM tracker_sets WHERE user_id = $1
		) sub`, userID,
	).Scan(&stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("querying date range: %w", err)
	}

	// Most-logged exercises, raw row counts from both sources
	rows, err := db.Pool.Query(ctx,
		`SELECT name, SUM(cnt) FROM (
			SELECT exercise AS name, COUNT(*) AS cnt FROM sheet_entries WHERE user_id = $1 GROUP BY exercise
			UNION ALL
			SELECT exercise_name, COUNT(*) FROM tracker_sets WHERE user_id = $1 GROUP BY exercise_name
		) sub
		GROUP BY name
		ORDER BY SUM(cnt) DESC
		LIMIT 10`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying top exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e ExerciseCount
		if err := rows.Scan(&e.Name, &e.Count); err != nil {
			return nil, fmt.Errorf("scanning exercise count: %w", err)
		}
		stats.TopExercises = append(stats.TopExercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
