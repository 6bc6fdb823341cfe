package sheet

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/gymtrack/internal/ingest"
	"github.com/claude/gymtrack/internal/models"
	"github.com/claude/gymtrack/internal/storage"
	"github.com/claude/gymtrack/internal/workout"
)

// Provider processes spreadsheet CSV exports.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new spreadsheet ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest parses a CSV export and stores the raw rows. Notation strings are
// stored verbatim; they are run through the parsers here only to count
// dropped tokens for the import log.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error) {
	entries, skippedRows, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	result := &ingest.Result{RowsReceived: len(entries) + skippedRows}
	if skippedRows > 0 {
		p.log.Warn("skipped unparseable sheet rows", "count", skippedRows)
		result.Message = fmt.Sprintf("%d rows skipped for unparseable dates", skippedRows)
	}

	rows := make([]models.SheetEntryRow, 0, len(entries))
	for _, e := range entries {
		_, dropped := workout.NormalizeSheetEntry(e.Date, e.Exercise, e.RepsNotation, e.WeightNotation)
		result.TokensDropped += dropped

		rows = append(rows, models.SheetEntryRow{
			UserID:         userID,
			Date:           e.Date,
			Exercise:       e.Exercise,
			RepsNotation:   e.RepsNotation,
			WeightNotation: e.WeightNotation,
			DurationSec:    e.DurationSec,
		})
	}

	if len(rows) > 0 {
		inserted, err := p.db.InsertSheetEntries(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("inserting sheet entries: %w", err)
		}
		result.RowsInserted = inserted
		result.RowsSkipped = int64(len(rows)) - inserted
	}

	p.log.Info("sheet ingest complete",
		"received", result.RowsReceived,
		"inserted", result.RowsInserted,
		"skipped", result.RowsSkipped,
		"tokens_dropped", result.TokensDropped)

	return result, nil
}
