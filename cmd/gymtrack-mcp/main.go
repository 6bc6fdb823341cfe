package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/gymtrack/internal/cache"
	"github.com/claude/gymtrack/internal/config"
	"github.com/claude/gymtrack/internal/mcp"
	"github.com/claude/gymtrack/internal/storage"
	"github.com/claude/gymtrack/internal/view"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// The MCP server speaks the protocol on stdout, so logs go to stderr.
func main() {
	configPath := flag.String("config", "", "path to config file (local mode, connects to the database)")
	serverURL := flag.String("server", "", "GymTrack server URL (remote mode, proxies the REST API)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymtrack-mcp", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	switch {
	case *serverURL != "":
		ds = mcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "server", *serverURL)

	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		ds = &mcp.Local{
			View: view.New(db, cache.New(cache.DefaultTTL), log),
			DB:   db,
		}
		log.Info("local mode", "database", cfg.Database.Host)

	default:
		fmt.Fprintf(os.Stderr, "Usage: gymtrack-mcp [-config config.yaml | -server <URL>]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
