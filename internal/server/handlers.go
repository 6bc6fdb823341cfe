package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/claude/gymtrack/internal/ingest"
	"github.com/claude/gymtrack/internal/view"
)

func (s *Server) handleSheetIngest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logID := beginImport(s.db, s.log, defaultUserID, ingest.SourceSheet)
	result, err := s.sheet.Ingest(r.Context(), r.Body, defaultUserID)
	finishImport(s.db, s.log, logID, defaultUserID, ingest.SourceSheet, result, err, int(time.Since(start).Milliseconds()))
	if err != nil {
		s.log.Error("sheet ingest error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.view.Invalidate()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGarminIngest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logID := beginImport(s.db, s.log, defaultUserID, ingest.SourceGarmin)
	result, err := s.garmin.Ingest(r.Context(), r.Body, defaultUserID)
	finishImport(s.db, s.log, logID, defaultUserID, ingest.SourceGarmin, result, err, int(time.Since(start).Milliseconds()))
	if err != nil {
		s.log.Error("garmin ingest error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.view.Invalidate()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSets(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r, false)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	table, err := s.view.Sets(r.Context(), q)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sets":         table,
		"count":        len(table),
		"total_volume": table.TotalVolume(),
	})
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r, true)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	names, err := s.view.Exercises(r.Context(), q)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r, true)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	streak, weeks, err := s.view.Streak(r.Context(), q)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"streak_weeks": streak,
		"weekly_sets":  weeks,
	})
}

func (s *Server) handlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r, true)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	maxWeight, maxVolume, err := s.view.PersonalRecords(r.Context(), q)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"max_weight": maxWeight,
		"max_volume": maxVolume,
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}

	q, err := parseQuery(r, true)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	series, err := s.view.Progress(r.Context(), q, exercise)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"exercise": exercise,
		"series":   series,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseQuery builds a view query from the request. Sets queries default to
// the last 30 days; history metrics (streak, PRs, progress) default to all
// time so a missing window never truncates a streak or erases a record.
func parseQuery(r *http.Request, allTimeDefault bool) (view.Query, error) {
	q := view.Query{UserID: defaultUserID}

	start, end, err := parseTimeRange(r, allTimeDefault)
	if err != nil {
		return q, err
	}
	q.Start, q.End = start, end

	q.IncludeSheet, q.IncludeTracker, err = parseSources(r)
	return q, err
}

func parseSources(r *http.Request) (includeSheet, includeTracker bool, err error) {
	raw := r.URL.Query().Get("sources")
	if raw == "" {
		return true, true, nil
	}
	for _, tok := range strings.Split(raw, ",") {
		switch strings.TrimSpace(tok) {
		case "sheet":
			includeSheet = true
		case "tracker", "garmin":
			includeTracker = true
		default:
			return false, false, fmt.Errorf("unknown source %q (want sheet, tracker)", strings.TrimSpace(tok))
		}
	}
	return includeSheet, includeTracker, nil
}

func parseTimeRange(r *http.Request, allTimeDefault bool) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" && endStr == "" {
		end = time.Now().Add(24 * time.Hour)
		if allTimeDefault {
			return time.Time{}, end, nil
		}
		// Default: last 30 days
		return end.AddDate(0, 0, -31), end, nil
	}

	if startStr == "" {
		start = time.Time{}
	} else {
		start, err = parseTimeParam(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now().Add(24 * time.Hour)
	} else {
		end, err = parseTimeParam(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if len(endStr) == len("2006-01-02") {
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return start, end, nil
}

func parseTimeParam(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
