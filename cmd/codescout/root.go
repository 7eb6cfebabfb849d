package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codescout/codescout/internal/config"
	"github.com/codescout/codescout/internal/mcp"
	"github.com/codescout/codescout/internal/run"
	"github.com/codescout/codescout/internal/storage"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "codescout",
		Short:         "Analyze a codebase with an LLM and extract structured knowledge",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	var (
		skipClone  bool
		outputFile string
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a full analysis of the configured repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := run.Options{
				SkipClone:  skipClone,
				OutputFile: outputFile,
			}
			if !noHistory {
				store, err := openStore()
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				opts.Store = store
			}

			result, err := run.Execute(ctx, cfg, opts)
			if err != nil {
				return err
			}

			fmt.Printf("Project: %s\n", result.Report.ProjectOverview.Name)
			fmt.Printf("Files Analyzed: %d\n", result.Report.Statistics.TotalFiles)
			fmt.Printf("Classes Identified: %d\n", result.Report.DetailedAnalysis.TotalClassesIdentified)
			fmt.Printf("Complexity Level: %s\n", result.Report.ProjectOverview.EstimatedComplexity)
			fmt.Printf("JSON Output: %s\n", result.JSONPath)
			fmt.Printf("Text Summary: %s\n", result.SummaryPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipClone, "skip-clone", false,
		"skip cloning/updating the repository (use existing local copy)")
	cmd.Flags().StringVar(&outputFile, "output-file", "",
		"custom output filename (default: analysis_results_TIMESTAMP.json)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false,
		"do not record this run in the history database")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer as an MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			if err := cfg.Validate(); err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(cfg, store)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion()
		},
	}
}

func openStore() (storage.Store, error) {
	dbPath := os.Getenv("CODESCOUT_DB_PATH")
	if dbPath == "" {
		var err error
		dbPath, err = mcp.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	return storage.NewSQLiteStore(dbPath)
}
