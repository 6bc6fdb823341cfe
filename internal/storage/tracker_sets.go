package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/gymtrack/internal/models"
)

// InsertTrackerSets batch-inserts Garmin set rows. Returns count inserted.
func (db *DB) InsertTrackerSets(ctx context.Context, rows []models.TrackerSetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO tracker_sets (user_id, activity_id, date, exercise_name,
		category, set_number, reps, weight_lbs, weight_unit) VALUES `
	args := make([]any, 0, len(rows)*9)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, r.UserID, r.ActivityID, r.Date, r.ExerciseName,
			r.Category, r.SetNumber, r.Reps, r.WeightLbs, r.WeightUnit)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting tracker sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteTrackerSets removes all sets for one activity so a re-import always
// reflects the latest export of that activity.
func (db *DB) DeleteTrackerSets(ctx context.Context, activityID int64, userID int) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM tracker_sets WHERE activity_id = $1 AND user_id = $2`,
		activityID, userID)
	if err != nil {
		return fmt.Errorf("deleting tracker sets for activity %d: %w", activityID, err)
	}
	return nil
}

// QueryTrackerSets retrieves Garmin set rows in a date range, oldest first.
func (db *DB) QueryTrackerSets(ctx context.Context, start, end time.Time, userID int) ([]models.TrackerSetRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, activity_id, date, exercise_name, category, set_number, reps, weight_lbs, weight_unit
		 FROM tracker_sets
		 WHERE date >= $1 AND date < $2 AND user_id = $3
		 ORDER BY date ASC, activity_id ASC, set_number ASC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying tracker sets: %w", err)
	}
	defer rows.Close()

	var result []models.TrackerSetRow
	for rows.Next() {
		var r models.TrackerSetRow
		if err := rows.Scan(&r.UserID, &r.ActivityID, &r.Date, &r.ExerciseName,
			&r.Category, &r.SetNumber, &r.Reps, &r.WeightLbs, &r.WeightUnit); err != nil {
			return nil, fmt.Errorf("scanning tracker set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
