package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/codescout/codescout/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Load .env if present (API keys, repository settings).
	_ = godotenv.Load()

	// Structured logs to stderr; stdout is reserved for the MCP protocol in
	// serve mode.
	level := slog.LevelInfo
	if os.Getenv("CODESCOUT_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("codescout\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Build Mode: %s\n", storage.BuildMode)
	fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
}
