// Package report writes the final report to the output directory: the
// structured JSON document plus a derived plain-text summary.
package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codescout/codescout/pkg/types"
)

const timestampLayout = "20060102_150405"

// Sink persists reports to a directory.
type Sink struct {
	outputDir string
	logger    *slog.Logger
}

// NewSink creates a Sink, creating the output directory if needed.
func NewSink(outputDir string) (*Sink, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Sink{
		outputDir: outputDir,
		logger:    slog.Default().With("component", "report"),
	}, nil
}

// WriteJSON writes the report as an indented JSON document. An empty
// filename gets a timestamped default.
func (s *Sink) WriteJSON(r *types.Report, filename string, now time.Time) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("analysis_results_%s.json", now.Format(timestampLayout))
	}
	path := filepath.Join(s.outputDir, filename)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	s.logger.Info("report written", "path", path)
	return path, nil
}

// WriteSummary writes the human-readable text summary.
func (s *Sink) WriteSummary(r *types.Report, now time.Time) (string, error) {
	path := filepath.Join(s.outputDir, fmt.Sprintf("analysis_summary_%s.txt", now.Format(timestampLayout)))

	if err := os.WriteFile(path, []byte(Summary(r)), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	s.logger.Info("summary written", "path", path)
	return path, nil
}

// Summary renders the plain-text summary of a report.
func Summary(r *types.Report) string {
	rule := strings.Repeat("=", 80)
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nCODEBASE ANALYSIS SUMMARY\n%s\n\n", rule, rule)

	fmt.Fprintf(&b, "Project: %s\n", r.ProjectOverview.Name)
	fmt.Fprintf(&b, "Purpose: %s\n", r.ProjectOverview.Purpose)
	fmt.Fprintf(&b, "Domain: %s\n", r.ProjectOverview.Domain)
	fmt.Fprintf(&b, "Architecture: %s\n", r.ProjectOverview.Architecture)
	fmt.Fprintf(&b, "Complexity: %s\n\n", r.ProjectOverview.EstimatedComplexity)

	fmt.Fprintf(&b, "Statistics:\n")
	fmt.Fprintf(&b, "  Total Files: %d\n", r.Statistics.TotalFiles)
	fmt.Fprintf(&b, "  Total Chunks: %d\n", r.Statistics.TotalChunks)
	fmt.Fprintf(&b, "  Total Lines: %d\n", r.Statistics.TotalLines)
	fmt.Fprintf(&b, "  Total Size: %d bytes\n\n", r.Statistics.TotalSizeBytes)

	fmt.Fprintf(&b, "Complexity Analysis:\n")
	fmt.Fprintf(&b, "  Files Analyzed: %d\n", r.ComplexityAnalysis.Summary.TotalFilesAnalyzed)
	fmt.Fprintf(&b, "  Average Complexity: %.2f\n", r.ComplexityAnalysis.Summary.AverageComplexity)
	fmt.Fprintf(&b, "  High Complexity Files: %d\n\n", r.ComplexityAnalysis.Summary.HighComplexityCount)

	fmt.Fprintf(&b, "Detailed Analysis:\n")
	fmt.Fprintf(&b, "  Classes Identified: %d\n", r.DetailedAnalysis.TotalClassesIdentified)
	fmt.Fprintf(&b, "  Key Functions: %d\n\n", r.DetailedAnalysis.TotalKeyFunctionsIdentified)

	fmt.Fprintf(&b, "%s\nAnalysis completed: %s\n%s\n", rule, r.Metadata.AnalysisDate, rule)
	return b.String()
}
