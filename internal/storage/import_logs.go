package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Import log statuses.
const (
	ImportStatusRunning = "running"
	ImportStatusSuccess = "success"
	ImportStatusError   = "error"
)

// ImportLog represents a single import operation's outcome.
type ImportLog struct {
	ID            uuid.UUID `json:"id"`
	UserID        int       `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	Source        string    `json:"source"`
	Status        string    `json:"status"`
	RowsReceived  int       `json:"rows_received"`
	RowsInserted  int64     `json:"rows_inserted"`
	RowsSkipped   int64     `json:"rows_skipped"`
	TokensDropped int       `json:"tokens_dropped"`
	DurationMs    *int      `json:"duration_ms"`
	ErrorMessage  *string   `json:"error_message"`
}

// InsertImportLog creates a new import log entry and returns its generated ID.
func (db *DB) InsertImportLog(ctx context.Context, log ImportLog) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO import_logs (id, user_id, source, status, rows_received,
		 rows_inserted, rows_skipped, tokens_dropped, duration_ms, error_message)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		id, log.UserID, log.Source, log.Status, log.RowsReceived,
		log.RowsInserted, log.RowsSkipped, log.TokensDropped,
		log.DurationMs, log.ErrorMessage,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting import log: %w", err)
	}
	return id, nil
}

// UpdateImportLog updates an existing import log entry (typically from
// "running" to "success" or "error").
func (db *DB) UpdateImportLog(ctx context.Context, id uuid.UUID, log ImportLog) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE import_logs SET
		 status = $2, rows_received = $3, rows_inserted = $4, rows_skipped = $5,
		 tokens_dropped = $6, duration_ms = $7, error_message = $8
		 WHERE id = $1`,
		id, log.Status, log.RowsReceived, log.RowsInserted, log.RowsSkipped,
		log.TokensDropped, log.DurationMs, log.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("updating import log %s: %w", id, err)
	}
	return nil
}

// QueryImportLogs returns the most recent import logs for a user.
func (db *DB) QueryImportLogs(ctx context.Context, userID, limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, created_at, source, status, rows_received,
		 rows_inserted, rows_skipped, tokens_dropped, duration_ms, error_message
		 FROM import_logs
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying import logs: %w", err)
	}
	defer rows.Close()

	var result []ImportLog
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.CreatedAt, &l.Source, &l.Status,
			&l.RowsReceived, &l.RowsInserted, &l.RowsSkipped, &l.TokensDropped,
			&l.DurationMs, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
