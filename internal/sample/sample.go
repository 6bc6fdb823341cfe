// Package sample generates realistic demo exports: a training sheet CSV and
// a matching Garmin activity JSON. Useful for trying the server without real
// data and for seeding local development.
package sample

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/claude/gymtrack/internal/models"
)

// exerciseConfig holds the working weight range for one exercise.
// Bodyweight exercises have no range and log "Body" in the weight column.
type exerciseConfig struct {
	name       string
	minWeight  int
	maxWeight  int
	bodyweight bool
}

var exercises = []exerciseConfig{
	{name: "Bench Press", minWeight: 135, maxWeight: 225},
	{name: "Squat", minWeight: 185, maxWeight: 315},
	{name: "Deadlift", minWeight: 225, maxWeight: 405},
	{name: "Shoulder Press", minWeight: 95, maxWeight: 155},
	{name: "Barbell Row", minWeight: 135, maxWeight: 225},
	{name: "Pull Ups", bodyweight: true},
	{name: "Push Ups", bodyweight: true},
}

// Generator produces deterministic sample data for a date range.
type Generator struct {
	faker *gofakeit.Faker
	days  int
	end   time.Time
}

// New creates a Generator covering the given number of days ending today.
// The same seed always produces the same exports.
func New(days int, seed int64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
		days:  days,
		end:   time.Now().Truncate(24 * time.Hour),
	}
}

type workoutDay struct {
	date      time.Time
	exercises []sheetRow
}

type sheetRow struct {
	exercise string
	reps     string
	weights  string
	setCount int
}

// plan builds the workout schedule: roughly 4 workouts per week, 3 to 5
// exercises per workout, with weights progressing toward each exercise's max
// over the covered range.
func (g *Generator) plan() []workoutDay {
	start := g.end.AddDate(0, 0, -g.days)
	var days []workoutDay

	for d := start; d.Before(g.end); d = d.AddDate(0, 0, 1) {
		if g.faker.Float64Range(0, 1) > 0.6 {
			continue
		}

		progress := float64(d.Sub(start)) / float64(g.end.Sub(start))
		n := g.faker.Number(3, 5)
		picked := g.pickExercises(n)

		day := workoutDay{date: d}
		for _, ex := range picked {
			day.exercises = append(day.exercises, g.rowFor(ex, progress))
		}
		days = append(days, day)
	}
	return days
}

// pickExercises selects n distinct exercises.
func (g *Generator) pickExercises(n int) []exerciseConfig {
	perm := make([]exerciseConfig, len(exercises))
	copy(perm, exercises)
	g.faker.ShuffleAnySlice(perm)
	return perm[:n]
}

// rowFor builds one sheet row for an exercise. Weights climb with progress,
// capped at 70 percent of the exercise's full range. Bodyweight rows log
// "Body" as a single broadcast token.
func (g *Generator) rowFor(ex exerciseConfig, progress float64) sheetRow {
	sets := g.faker.Number(3, 4)

	if ex.bodyweight {
		reps := make([]string, sets)
		for i := range reps {
			reps[i] = strconv.Itoa(g.faker.Number(8, 14))
		}
		return sheetRow{
			exercise: ex.name,
			reps:     strings.Join(reps, ";"),
			weights:  "Body",
			setCount: sets,
		}
	}

	ceiling := float64(ex.minWeight) + float64(ex.maxWeight-ex.minWeight)*progress*0.7
	reps := make([]string, sets)
	weights := make([]string, sets)
	for i := range sets {
		reps[i] = strconv.Itoa(g.faker.Number(5, 12))
		weights[i] = strconv.Itoa(int(g.faker.Float64Range(float64(ex.minWeight), ceiling)))
	}

	// Occasionally log a single weight for all sets, the common shorthand
	// for straight sets.
	weightCol := strings.Join(weights, ";")
	if g.faker.Float64Range(0, 1) < 0.25 {
		weightCol = weights[0]
	}

	return sheetRow{
		exercise: ex.name,
		reps:     strings.Join(reps, ";"),
		weights:  weightCol,
		setCount: sets,
	}
}

// WriteSheet writes the sample sheet CSV and returns the workout dates, for
// generating a matching Garmin export.
func (g *Generator) WriteSheet(w io.Writer) ([]time.Time, error) {
	days := g.plan()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{models.SheetColDate, models.SheetColExercise, models.SheetColReps, models.SheetColWeight}); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	var dates []time.Time
	for _, day := range days {
		dates = append(dates, day.date)
		for _, row := range day.exercises {
			rec := []string{
				day.date.Format(models.SheetDateLayout),
				row.exercise,
				row.reps,
				row.weights,
			}
			if err := cw.Write(rec); err != nil {
				return nil, fmt.Errorf("writing row: %w", err)
			}
		}
	}
	cw.Flush()
	return dates, cw.Error()
}

// WriteGarmin writes a Garmin activity export covering the given dates. Each
// date gets one strength activity with a few exercises and per-set reps and
// weights in kilograms, the unit Garmin exports.
func (g *Generator) WriteGarmin(w io.Writer, dates []time.Time) error {
	payload := models.GarminPayload{}

	for i, d := range dates {
		activity := models.GarminActivity{
			ActivityID:     int64(10_000_000 + i),
			ActivityName:   "Strength",
			StartTimeLocal: models.GarminTime{Time: d.Add(time.Duration(g.faker.Number(7, 19)) * time.Hour)},
			ActivityType:   models.GarminActivityType{TypeKey: models.ActivityTypeStrength},
			Duration:       float64(g.faker.Number(30, 90) * 60),
		}

		for _, ex := range g.pickExercises(g.faker.Number(2, 4)) {
			if ex.bodyweight {
				continue
			}
			sets := g.faker.Number(3, 4)
			exercise := models.GarminExercise{
				ExerciseName: strings.ToUpper(strings.ReplaceAll(ex.name, " ", "_")),
				Category:     "STRENGTH",
			}
			for s := range sets {
				lbs := g.faker.Float64Range(float64(ex.minWeight), float64(ex.maxWeight))
				exercise.Sets = append(exercise.Sets, models.GarminSet{
					SetNumber:       s + 1,
					RepetitionCount: g.faker.Number(5, 12),
					WeightValue:     lbs / 2.20462,
					WeightUnit:      models.WeightUnitKilogram,
					DurationSec:     float64(g.faker.Number(30, 120)),
				})
			}
			activity.ExerciseSets = append(activity.ExerciseSets, exercise)
		}

		payload.Activities = append(payload.Activities, activity)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
