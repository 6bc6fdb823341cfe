package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/gymtrack/internal/sample"
)

func main() {
	outDir := flag.String("out", ".", "output directory (Sheet/ and Garmin/ are created under it)")
	days := flag.Int("days", 90, "number of days of training history to generate")
	seed := flag.Int64("seed", 1, "random seed (same seed, same exports)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	sheetDir := filepath.Join(*outDir, "Sheet")
	garminDir := filepath.Join(*outDir, "Garmin")
	for _, dir := range []string{sheetDir, garminDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("failed to create output dir", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	g := sample.New(*days, *seed)

	sheetPath := filepath.Join(sheetDir, "sample_workouts.csv")
	sheetFile, err := os.Create(sheetPath)
	if err != nil {
		log.Error("failed to create sheet file", "error", err)
		os.Exit(1)
	}
	dates, err := g.WriteSheet(sheetFile)
	if err != nil {
		log.Error("failed to write sheet", "error", err)
		os.Exit(1)
	}
	if err := sheetFile.Close(); err != nil {
		log.Error("failed to close sheet file", "error", err)
		os.Exit(1)
	}

	garminPath := filepath.Join(garminDir, "sample_activities.json")
	garminFile, err := os.Create(garminPath)
	if err != nil {
		log.Error("failed to create garmin file", "error", err)
		os.Exit(1)
	}
	if err := g.WriteGarmin(garminFile, dates); err != nil {
		log.Error("failed to write garmin export", "error", err)
		os.Exit(1)
	}
	if err := garminFile.Close(); err != nil {
		log.Error("failed to close garmin file", "error", err)
		os.Exit(1)
	}

	log.Info("sample data written",
		"workout_days", len(dates),
		"sheet", sheetPath,
		"garmin", garminPath,
	)
	fmt.Printf("\nImport directly:  gymtrack-import -config config.yaml -path %s\n", *outDir)
	fmt.Printf("Or sync over HTTP: gymtrack-sync -server <URL> -api-key <KEY> -path %s\n", *outDir)
}
