package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/claude/gymtrack/internal/sync"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	// .env is optional. Flags beat environment values.
	_ = godotenv.Load()

	serverURL := flag.String("server", os.Getenv("GYMTRACK_SERVER_URL"), "GymTrack server URL (e.g. https://gymtrack.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("GYMTRACK_API_KEY"), "API key for ingest endpoints")
	exportPath := flag.String("path", "", "path to export directory (or parent containing GymExports/)")
	dryRun := flag.Bool("dry-run", false, "list files that would sync without sending them")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymtrack-sync", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: gymtrack-sync -server <URL> -api-key <KEY> -path <export dir> [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *serverURL == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
		os.Exit(1)
	}

	root := sync.ResolveExportDir(*exportPath)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		log.Error("export directory not found", "path", root, "original", *exportPath)
		os.Exit(1)
	}
	log.Info("using export directory", "path", root)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	state, err := sync.OpenStateDB(filepath.Join(homeDir, ".gymtrack-sync"))
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if *dryRun {
		log.Info("DRY RUN mode — files will be listed but not sent")
	}

	client := sync.NewClient(*serverURL, *apiKey)
	stats, err := sync.New(client, state, root, *dryRun, log).Run()
	if err != nil {
		log.Error("sync failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("sync complete")
}

func printStats(stats *sync.Stats) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	fmt.Println()
	bold.Println("=== Sync Summary ===")
	fmt.Printf("  Files total:    %d\n", stats.FilesTotal)
	green.Printf("  Files synced:   %d\n", stats.FilesSynced)
	fmt.Printf("  Files skipped:  %d (already synced)\n", stats.FilesSkipped)
	if stats.FilesErrored > 0 {
		red.Printf("  Files errored:  %d\n", stats.FilesErrored)
	}
	fmt.Println()
	fmt.Printf("  Rows inserted:  %d\n", stats.RowsInserted)
	fmt.Printf("  Rows skipped:   %d (duplicates)\n", stats.RowsSkipped)
	if stats.TokensDropped > 0 {
		yellow.Printf("  Tokens dropped: %d (unparseable rep or weight tokens)\n", stats.TokensDropped)
	}
	fmt.Println()
}
