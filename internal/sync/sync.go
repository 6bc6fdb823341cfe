package sync

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/gymtrack/internal/ingest"
)

// Stats tracks sync progress across a run.
type Stats struct {
	FilesTotal    int
	FilesSynced   int
	FilesSkipped  int
	FilesErrored  int
	RowsInserted  int64
	RowsSkipped   int64
	TokensDropped int
}

// Syncer walks an export directory, sends new sheet CSVs and Garmin JSON
// exports to the GymTrack server, and records synced files in the state DB.
type Syncer struct {
	client *Client
	state  *StateDB
	root   string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Syncer rooted at the export directory.
func New(client *Client, state *StateDB, root string, dryRun bool, log *slog.Logger) *Syncer {
	return &Syncer{
		client: client,
		state:  state,
		root:   root,
		dryRun: dryRun,
		log:    log,
	}
}

// Run executes the sync pipeline: Sheet/*.csv first, then Garmin/*.json.
func (s *Syncer) Run() (*Stats, error) {
	sheetDir := filepath.Join(s.root, "Sheet")
	if _, err := os.Stat(sheetDir); err == nil {
		if err := s.processDir(sheetDir, "*.csv", s.client.SendSheet); err != nil {
			return &s.stats, fmt.Errorf("syncing sheet exports: %w", err)
		}
	}

	garminDir := filepath.Join(s.root, "Garmin")
	if _, err := os.Stat(garminDir); err == nil {
		if err := s.processDir(garminDir, "*.json", s.client.SendGarmin); err != nil {
			return &s.stats, fmt.Errorf("syncing garmin exports: %w", err)
		}
	}

	return &s.stats, nil
}

// processDir sends every new file matching pattern in dir via send.
func (s *Syncer) processDir(dir, pattern string, send func([]byte) (*ingest.Result, error)) error {
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return err
	}

	for _, f := range files {
		s.stats.FilesTotal++

		relPath, _ := filepath.Rel(s.root, f)
		info, err := os.Stat(f)
		if err != nil {
			s.log.Warn("stat failed", "file", f, "error", err)
			s.stats.FilesErrored++
			continue
		}

		hash, err := HashFile(f)
		if err != nil {
			s.log.Warn("hash failed", "file", f, "error", err)
			s.stats.FilesErrored++
			continue
		}

		synced, err := s.state.IsSynced(relPath, info.Size(), hash)
		if err != nil {
			s.log.Warn("state check failed", "file", f, "error", err)
			s.stats.FilesErrored++
			continue
		}
		if synced {
			s.stats.FilesSkipped++
			continue
		}

		data, err := os.ReadFile(f)
		if err != nil {
			s.log.Warn("read failed", "file", f, "error", err)
			s.stats.FilesErrored++
			continue
		}

		if s.dryRun {
			s.log.Info("dry-run: would send", "file", relPath, "bytes", len(data))
			s.stats.FilesSynced++
			continue
		}

		result, err := send(data)
		if err != nil {
			s.log.Warn("send failed", "file", relPath, "error", err)
			s.stats.FilesErrored++
			continue
		}

		s.stats.RowsInserted += result.RowsInserted
		s.stats.RowsSkipped += result.RowsSkipped
		s.stats.TokensDropped += result.TokensDropped

		if err := s.state.MarkSynced(relPath, info.Size(), hash); err != nil {
			s.log.Warn("failed to mark synced", "file", relPath, "error", err)
		}
		s.stats.FilesSynced++

		s.log.Info("synced file",
			"file", relPath,
			"inserted", result.RowsInserted,
			"skipped", result.RowsSkipped,
			"dropped_tokens", result.TokensDropped,
		)
	}

	return nil
}

// ResolveExportDir resolves the export directory from a user-provided path.
// If the path contains a GymExports subdirectory, returns its path.
// Otherwise returns the original path.
func ResolveExportDir(path string) string {
	if filepath.Base(path) == "GymExports" {
		return path
	}
	candidate := filepath.Join(path, "GymExports")
	if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
		return candidate
	}
	return path
}
