// Package run executes one complete analysis: read the repository, chunk the
// documents under the token budget, drive the summarizer and metrics passes,
// aggregate the final report, and persist it.
package run

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/codescout/codescout/internal/aggregate"
	"github.com/codescout/codescout/internal/chunker"
	"github.com/codescout/codescout/internal/config"
	"github.com/codescout/codescout/internal/cost"
	"github.com/codescout/codescout/internal/llm"
	"github.com/codescout/codescout/internal/metrics"
	"github.com/codescout/codescout/internal/pipeline"
	"github.com/codescout/codescout/internal/repo"
	"github.com/codescout/codescout/internal/report"
	"github.com/codescout/codescout/internal/storage"
	"github.com/codescout/codescout/pkg/types"
)

// Options adjusts a single execution.
type Options struct {
	// SkipClone uses the existing local working tree without contacting the
	// remote.
	SkipClone bool

	// OutputFile overrides the timestamped default JSON filename.
	OutputFile string

	// Store, when non-nil, receives the completed run for history.
	Store storage.Store
}

// Result is the outcome of one execution.
type Result struct {
	Report      *types.Report
	JSONPath    string
	SummaryPath string
	RunID       int64
}

// Execute performs a full analysis run. Startup and structural errors abort;
// per-file and per-chunk failures degrade inside the report instead.
func Execute(ctx context.Context, cfg config.Config, opts Options) (*Result, error) {
	logger := slog.Default().With("component", "run")
	started := time.Now().UTC()

	summarizer, err := llm.New(cfg)
	if err != nil {
		return nil, err
	}

	manager := repo.NewManager(cfg)
	if !opts.SkipClone {
		if err := manager.Clone(ctx); err != nil {
			return nil, err
		}
	}
	info := manager.Info(ctx)

	documents, err := manager.ReadCodebase()
	if err != nil {
		return nil, err
	}
	if len(documents) == 0 {
		return nil, types.ErrNoDocuments
	}
	logger.Info("documents loaded", "files", len(documents))

	estimator := cost.NewCached(cost.NewHeuristic(), cost.DefaultCacheSize)
	ck, err := chunker.New(cfg.MaxTokensPerChunk, estimator)
	if err != nil {
		return nil, err
	}

	chunks := ck.Chunk(documents)
	if err := ck.Verify(documents, chunks); err != nil {
		// A coverage or budget violation means the chunker itself is broken;
		// fail loudly rather than produce a report with silent gaps.
		return nil, fmt.Errorf("chunker invariant violation: %w", err)
	}
	logger.Info("documents chunked", "chunks", len(chunks), "budget", cfg.MaxTokensPerChunk)

	pipe := pipeline.New(summarizer, metrics.New(), pipeline.Config{
		Workers: cfg.Workers,
		Timeout: cfg.RequestTimeout,
	})

	overview, err := pipe.RunOverview(ctx, documents, info)
	if err != nil {
		return nil, err
	}

	partials, err := pipe.RunChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}
	if len(partials) != len(chunks) {
		return nil, fmt.Errorf("%w: %d partials for %d chunks", types.ErrCoverage, len(partials), len(chunks))
	}

	metricEntries := pipe.RunMetrics(documents)
	signatures := pipe.ExtractSignatures(documents)

	rep := aggregate.Build(aggregate.Inputs{
		Overview:      overview,
		Partials:      partials,
		Metrics:       metricEntries,
		CodeStructure: signatures,
		Documents:     documents,
		Chunks:        chunks,
		Repository:    info,
		Provider:      cfg.Provider,
		GeneratedAt:   started,
	})

	sink, err := report.NewSink(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	jsonPath, err := sink.WriteJSON(&rep, opts.OutputFile, started)
	if err != nil {
		return nil, err
	}
	summaryPath, err := sink.WriteSummary(&rep, started)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Report:      &rep,
		JSONPath:    jsonPath,
		SummaryPath: summaryPath,
	}

	if opts.Store != nil {
		runRecord, err := buildRunRecord(cfg, &rep)
		if err != nil {
			return nil, err
		}
		if err := opts.Store.SaveRun(ctx, runRecord); err != nil {
			return nil, fmt.Errorf("save run history: %w", err)
		}
		result.RunID = runRecord.ID
	}

	logger.Info("analysis complete",
		"project", rep.ProjectOverview.Name,
		"files", rep.Statistics.TotalFiles,
		"chunks", rep.Statistics.TotalChunks,
		"classes", rep.DetailedAnalysis.TotalClassesIdentified,
		"elapsed", time.Since(started))
	return result, nil
}

func buildRunRecord(cfg config.Config, rep *types.Report) (*storage.Run, error) {
	body, err := json.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("marshal report for history: %w", err)
	}
	return &storage.Run{
		ProjectName:     rep.ProjectOverview.Name,
		RepoURL:         rep.Metadata.Repository.URL,
		Provider:        cfg.Provider,
		Model:           cfg.Model(),
		TotalFiles:      rep.Statistics.TotalFiles,
		TotalChunks:     rep.Statistics.TotalChunks,
		OversizedChunks: rep.Statistics.OversizedChunks,
		ClassesFound:    rep.DetailedAnalysis.TotalClassesIdentified,
		AvgComplexity:   rep.ComplexityAnalysis.Summary.AverageComplexity,
		ReportJSON:      string(body),
		SummaryText:     report.Summary(rep),
	}, nil
}
