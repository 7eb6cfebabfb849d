// Package pipeline drives the external calls of a run: the one-time project
// overview, one summarizer call per chunk, and the per-file metrics pass. It
// collects outputs without interpreting them; merging is the aggregator's
// job.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codescout/codescout/internal/chunker"
	"github.com/codescout/codescout/internal/llm"
	"github.com/codescout/codescout/internal/metrics"
	"github.com/codescout/codescout/pkg/types"
)

// Pipeline sequences the summarizer and metrics collaborators for one run.
type Pipeline struct {
	summarizer llm.Summarizer
	analyzer   *metrics.Analyzer

	// workers bounds concurrent chunk calls. 1 reproduces the strictly
	// sequential reference behavior.
	workers int

	// timeout bounds each external call. A timed-out call degrades to a raw
	// partial exactly like an unparseable response.
	timeout time.Duration

	logger *slog.Logger
}

// Config contains configuration for the pipeline.
type Config struct {
	Workers int
	Timeout time.Duration
}

// New creates a Pipeline.
func New(summarizer llm.Summarizer, analyzer *metrics.Analyzer, cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Pipeline{
		summarizer: summarizer,
		analyzer:   analyzer,
		workers:    cfg.Workers,
		timeout:    cfg.Timeout,
		logger:     slog.Default().With("component", "pipeline"),
	}
}

// RunOverview performs the single budget-exempt overview call. Unlike chunk
// calls, a failure here is surfaced to the caller: without an overview there
// is no project identity to report under.
func (p *Pipeline) RunOverview(ctx context.Context, documents []types.Document, info types.RepositoryInfo) (types.OverviewResult, error) {
	artifact := chunker.BuildOverview(documents)
	system, user := llm.OverviewPrompt(artifact, info.URL)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.logger.Info("generating project overview")
	response, err := p.summarizer.Complete(callCtx, system, user)
	if err != nil {
		return types.OverviewResult{}, fmt.Errorf("overview call: %w", err)
	}

	overview := llm.ParseOverviewResponse(response)
	if overview.ParseError != "" {
		p.logger.Warn("could not parse overview response", "error", overview.ParseError)
	}
	return overview, nil
}

// RunChunks analyzes every chunk and returns one partial result per chunk,
// index-aligned with the input: result[i] always belongs to chunks[i],
// regardless of which call finished first. Calls run on a bounded worker
// pool writing into position-indexed slots; a failed or unparseable call
// degrades to a raw partial in its own slot and never disturbs the others.
//
// Cancellation stops dispatching new calls; slots already filled are kept
// intact and the context error is returned alongside them.
func (p *Pipeline) RunChunks(ctx context.Context, chunks []types.Chunk) ([]types.PartialResult, error) {
	results := make([]types.PartialResult, len(chunks))
	total := len(chunks)

	// Slots start as degraded markers so a canceled run still leaves every
	// position in a defined state; each worker overwrites exactly its own
	// slot.
	for i := range results {
		results[i] = types.PartialResult{
			ChunkSeq:   chunks[i].Seq,
			ParseError: "analysis canceled before dispatch",
		}
	}

	p.logger.Info("analyzing chunks", "chunks", total, "workers", p.workers)

	g := new(errgroup.Group)
	g.SetLimit(p.workers)

	for i := range chunks {
		if ctx.Err() != nil {
			break
		}
		ch := &chunks[i]
		slot := &results[i]
		g.Go(func() error {
			*slot = p.analyzeChunk(ctx, ch, total)
			return nil
		})
	}

	// Workers never return errors; Wait only fences the in-flight calls so
	// every slot is fully written before results are read.
	_ = g.Wait()

	return results, ctx.Err()
}

// analyzeChunk performs one summarizer call and parses the response. Every
// failure mode collapses into a raw partial tied to the chunk's sequence
// number.
func (p *Pipeline) analyzeChunk(ctx context.Context, ch *types.Chunk, total int) types.PartialResult {
	payload := chunker.Serialize(ch.Documents)
	system, user := llm.ChunkPrompt(payload, ch.Seq, total)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	response, err := p.summarizer.Complete(callCtx, system, user)
	if err != nil {
		p.logger.Warn("chunk analysis failed, keeping raw partial",
			"seq", ch.Seq, "error", err)
		return types.PartialResult{
			ChunkSeq:   ch.Seq,
			ParseError: err.Error(),
		}
	}

	partial := llm.ParseChunkResponse(ch.Seq, response)
	if !partial.Structured() {
		p.logger.Warn("could not parse chunk response, keeping raw partial",
			"seq", ch.Seq, "error", partial.ParseError)
	} else {
		p.logger.Debug("chunk analyzed",
			"seq", ch.Seq, "files", len(partial.Files), "elapsed", time.Since(start))
	}
	return partial
}

// RunMetrics scores every supported document, in path order for determinism.
// Metrics are best-effort: a per-file failure logs a warning and omits that
// file's entry.
func (p *Pipeline) RunMetrics(documents []types.Document) []types.MetricsEntry {
	sorted := make([]types.Document, len(documents))
	copy(sorted, documents)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var entries []types.MetricsEntry
	for _, d := range sorted {
		if !p.analyzer.Supported(d.Ext) {
			continue
		}
		entry, err := p.analyzer.Analyze(d)
		if err != nil {
			p.logger.Warn("metrics failed for file, omitting", "path", d.Path, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	p.logger.Info("computed complexity metrics", "files", len(entries))
	return entries
}

// ExtractSignatures runs the signature pass over every document, in path
// order, returning only files that had at least one match.
func (p *Pipeline) ExtractSignatures(documents []types.Document) []types.FileMethodGroup {
	sorted := make([]types.Document, len(documents))
	copy(sorted, documents)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var groups []types.FileMethodGroup
	for _, d := range sorted {
		sigs := p.analyzer.ExtractSignatures(d)
		if len(sigs) == 0 {
			continue
		}
		groups = append(groups, types.FileMethodGroup{
			Path:        d.Path,
			MethodCount: len(sigs),
			Methods:     sigs,
		})
	}
	return groups
}
