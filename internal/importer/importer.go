// Package importer loads export files from a local directory straight into
// the database, bypassing the HTTP API. Used for bulk backfills where the
// round trip through the server adds nothing.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/gymtrack/internal/ingest"
	"github.com/claude/gymtrack/internal/ingest/garmin"
	"github.com/claude/gymtrack/internal/ingest/sheet"
	"github.com/claude/gymtrack/internal/models"
	"github.com/claude/gymtrack/internal/storage"
)

// Stats tracks import progress across all processed files.
type Stats struct {
	FilesProcessed int
	FilesErrored   int

	SheetRowsInserted   int64
	SheetRowsSkipped    int64
	TokensDropped       int
	ActivitiesIngested  int
	TrackerSetsInserted int64
}

// Importer reads export files from a directory and inserts rows into the DB.
type Importer struct {
	db     *storage.DB
	sheet  *sheet.Provider
	garmin *garmin.Provider
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer.
func New(db *storage.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{
		db:     db,
		sheet:  sheet.NewProvider(db, log),
		garmin: garmin.NewProvider(db, log),
		log:    log,
		dryRun: dryRun,
	}
}

// Import processes Sheet/*.csv and Garmin/*.json under the export directory.
func (imp *Importer) Import(ctx context.Context, dir string, userID int) (*Stats, error) {
	sheetDir := filepath.Join(dir, "Sheet")
	if _, err := os.Stat(sheetDir); err == nil {
		if err := imp.importSheets(ctx, sheetDir, userID); err != nil {
			return &imp.stats, fmt.Errorf("importing sheets: %w", err)
		}
	}

	garminDir := filepath.Join(dir, "Garmin")
	if _, err := os.Stat(garminDir); err == nil {
		if err := imp.importGarmin(ctx, garminDir, userID); err != nil {
			return &imp.stats, fmt.Errorf("importing garmin exports: %w", err)
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) importSheets(ctx context.Context, dir string, userID int) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return err
	}

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			imp.log.Warn("open failed", "file", path, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		var result *ingest.Result
		if imp.dryRun {
			result, err = imp.dryRunSheet(f)
		} else {
			result, err = imp.sheet.Ingest(ctx, f, userID)
		}
		f.Close()

		if err != nil {
			imp.log.Warn("sheet import failed", "file", path, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		imp.stats.FilesProcessed++
		imp.stats.SheetRowsInserted += result.RowsInserted
		imp.stats.SheetRowsSkipped += result.RowsSkipped
		imp.stats.TokensDropped += result.TokensDropped
		imp.log.Info("imported sheet",
			"file", filepath.Base(path),
			"inserted", result.RowsInserted,
			"skipped", result.RowsSkipped,
		)
	}
	return nil
}

// dryRunSheet parses a sheet without touching the database, reporting what a
// real import would receive.
func (imp *Importer) dryRunSheet(f *os.File) (*ingest.Result, error) {
	entries, skipped, err := sheet.Parse(f)
	if err != nil {
		return nil, err
	}
	return &ingest.Result{
		RowsReceived: len(entries) + skipped,
		RowsSkipped:  int64(skipped),
		Message:      "dry run",
	}, nil
}

func (imp *Importer) importGarmin(ctx context.Context, dir string, userID int) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			imp.log.Warn("open failed", "file", path, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		var result *ingest.Result
		if imp.dryRun {
			result, err = imp.dryRunGarmin(f)
		} else {
			result, err = imp.garmin.Ingest(ctx, f, userID)
		}
		f.Close()

		if err != nil {
			imp.log.Warn("garmin import failed", "file", path, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		imp.stats.FilesProcessed++
		imp.stats.ActivitiesIngested += result.ActivitiesIngested
		imp.stats.TrackerSetsInserted += result.RowsInserted
		imp.log.Info("imported garmin export",
			"file", filepath.Base(path),
			"activities", result.ActivitiesIngested,
			"sets", result.RowsInserted,
		)
	}
	return nil
}

func (imp *Importer) dryRunGarmin(f *os.File) (*ingest.Result, error) {
	var payload models.GarminPayload
	if err := json.NewDecoder(f).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding garmin payload: %w", err)
	}
	strength := 0
	for _, a := range payload.Activities {
		if a.IsStrength() {
			strength++
		}
	}
	return &ingest.Result{
		ActivitiesReceived: len(payload.Activities),
		ActivitiesIngested: strength,
		Message:            "dry run",
	}, nil
}
