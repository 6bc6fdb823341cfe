package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/claude/gymtrack/internal/ingest"
	"github.com/claude/gymtrack/internal/storage"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context(), defaultUserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := s.db.QueryImportLogs(r.Context(), defaultUserID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// importLogStore is the slice of storage the import lifecycle writes to.
type importLogStore interface {
	InsertImportLog(ctx context.Context, log storage.ImportLog) (uuid.UUID, error)
	UpdateImportLog(ctx context.Context, id uuid.UUID, log storage.ImportLog) error
}

// beginImport records the start of an ingest as a running import log row, so
// in-flight and crashed imports are visible in the history. Returns uuid.Nil
// when the row could not be written; the ingest itself proceeds regardless.
func beginImport(store importLogStore, log *slog.Logger, uid int, source string) uuid.UUID {
	ctx, cancel := contextWithTimeout()
	defer cancel()

	id, err := store.InsertImportLog(ctx, storage.ImportLog{
		UserID: uid,
		Source: source,
		Status: storage.ImportStatusRunning,
	})
	if err != nil {
		log.Error("failed to record import start", "source", source, "error", err)
		return uuid.Nil
	}
	return id
}

// finishImport resolves a running import log row to success or error with the
// final counts. result may be nil when the ingest failed before producing
// counts. When the running row never made it in, the outcome is inserted as a
// fresh row so the import is still recorded.
func finishImport(store importLogStore, log *slog.Logger, id uuid.UUID, uid int, source string, result *ingest.Result, importErr error, durationMs int) {
	status := storage.ImportStatusSuccess
	var errMsg *string
	if importErr != nil {
		status = storage.ImportStatusError
		msg := importErr.Error()
		errMsg = &msg
	}
	if result == nil {
		result = &ingest.Result{}
	}

	entry := storage.ImportLog{
		UserID:        uid,
		Source:        source,
		Status:        status,
		RowsReceived:  result.RowsReceived,
		RowsInserted:  result.RowsInserted,
		RowsSkipped:   result.RowsSkipped,
		TokensDropped: result.TokensDropped,
		DurationMs:    &durationMs,
		ErrorMessage:  errMsg,
	}

	ctx, cancel := contextWithTimeout()
	defer cancel()

	var err error
	if id == uuid.Nil {
		_, err = store.InsertImportLog(ctx, entry)
	} else {
		err = store.UpdateImportLog(ctx, id, entry)
	}
	if err != nil {
		log.Error("failed to finalize import log", "source", source, "error", err)
	}
}

// contextWithTimeout returns a background context with a 5-second timeout for async logging.
func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
