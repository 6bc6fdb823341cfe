package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/gymtrack/internal/ingest"
	"github.com/claude/gymtrack/internal/models"
	"github.com/claude/gymtrack/internal/storage"
	"github.com/claude/gymtrack/internal/workout"
)

// Provider processes Garmin Connect activity exports.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new Garmin ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest decodes a Garmin export, keeps only strength training activities and
// stores their sets with weights converted to pounds. Existing sets of each
// activity are deleted first so re-imports always reflect the latest export.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error) {
	var payload models.GarminPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}

	result := &ingest.Result{ActivitiesReceived: len(payload.Activities)}

	for _, activity := range payload.Activities {
		if !activity.IsStrength() {
			continue
		}
		result.ActivitiesIngested++

		if err := p.db.DeleteTrackerSets(ctx, activity.ActivityID, userID); err != nil {
			return result, fmt.Errorf("clearing activity %d: %w", activity.ActivityID, err)
		}

		rows := flattenActivity(activity, userID)
		result.RowsReceived += len(rows)
		if len(rows) == 0 {
			continue
		}

		inserted, err := p.db.InsertTrackerSets(ctx, rows)
		if err != nil {
			return result, fmt.Errorf("inserting sets for activity %d: %w", activity.ActivityID, err)
		}
		result.RowsInserted += inserted
		result.RowsSkipped += int64(len(rows)) - inserted
	}

	p.log.Info("garmin ingest complete",
		"activities", result.ActivitiesReceived,
		"strength", result.ActivitiesIngested,
		"sets_received", result.RowsReceived,
		"sets_inserted", result.RowsInserted)

	return result, nil
}

// flattenActivity turns an activity's nested exercise sets into storage rows.
// Weights convert to pounds here so the stored table has a single unit.
func flattenActivity(activity models.GarminActivity, userID int) []models.TrackerSetRow {
	var rows []models.TrackerSetRow
	for _, exercise := range activity.ExerciseSets {
		for _, set := range exercise.Sets {
			rows = append(rows, models.TrackerSetRow{
				UserID:       userID,
				ActivityID:   activity.ActivityID,
				Date:         activity.StartTimeLocal.Time,
				ExerciseName: exercise.ExerciseName,
				Category:     exercise.Category,
				SetNumber:    set.SetNumber,
				Reps:         set.RepetitionCount,
				WeightLbs:    workout.PoundsFrom(set.WeightValue, set.WeightUnit),
				WeightUnit:   set.WeightUnit,
			})
		}
	}
	return rows
}
