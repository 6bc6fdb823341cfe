package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/gymtrack/internal/models"
)

// InsertSheetEntries batch-inserts spreadsheet rows. Returns count inserted;
// rows already present (same date, exercise and notation) are skipped.
func (db *DB) InsertSheetEntries(ctx context.Context, rows []models.SheetEntryRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO sheet_entries (user_id, date, exercise, reps_notation,
		weight_notation, duration_sec) VALUES `
	args := make([]any, 0, len(rows)*6)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 6
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		args = append(args, r.UserID, r.Date, r.Exercise, r.RepsNotation,
			r.WeightNotation, r.DurationSec)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting sheet entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QuerySheetEntries retrieves spreadsheet rows in a date range, oldest first.
func (db *DB) QuerySheetEntries(ctx context.Context, start, end time.Time, userID int) ([]models.SheetEntryRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, date, exercise, reps_notation, weight_notation, duration_sec
		 FROM sheet_entries
		 WHERE date >= $1 AND date < $2 AND user_id = $3
		 ORDER BY date ASC, exercise ASC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sheet entries: %w", err)
	}
	defer rows.Close()

	var result []models.SheetEntryRow
	for rows.Next() {
		var r models.SheetEntryRow
		if err := rows.Scan(&r.UserID, &r.Date, &r.Exercise, &r.RepsNotation,
			&r.WeightNotation, &r.DurationSec); err != nil {
			return nil, fmt.Errorf("scanning sheet entry: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
