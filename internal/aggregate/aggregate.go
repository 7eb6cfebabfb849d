// Package aggregate merges the per-chunk partial results, the per-file
// metrics, and the overview into the final report. The merge is
// deterministic: content ordering follows chunk sequence then in-chunk
// order, never service response timing, so re-aggregating the same inputs
// reproduces the report byte for byte.
package aggregate

import (
	"math"
	"time"

	"github.com/codescout/codescout/pkg/types"
)

// AnalyzerVersion is recorded in report metadata.
const AnalyzerVersion = "1.0.0"

// Report size caps. All caps are stable, order-preserving truncations.
const (
	// MaxKeyFunctions bounds the merged function list.
	MaxKeyFunctions = 50
	// MaxMethodsPerClass bounds the retained methods of each class.
	MaxMethodsPerClass = 5
	// MaxHighComplexityFiles bounds the high-complexity file list.
	MaxHighComplexityFiles = 20
	// MaxDetailedFiles bounds the per-file complexity detail list.
	MaxDetailedFiles = 20
	// MaxComplexFunctionsPerFile bounds the retained entities per file.
	MaxComplexFunctionsPerFile = 10
	// MaxMethodsPerFile bounds the signatures listed per file.
	MaxMethodsPerFile = 20

	// HighComplexityThreshold marks a file as high complexity.
	HighComplexityThreshold = 10
	// NotableComplexityThreshold retains an entity in the detail list.
	NotableComplexityThreshold = 5
)

// Inputs carries everything the aggregator consumes. Partials must be
// ordered by chunk sequence; metrics and code structure by path.
type Inputs struct {
	Overview      types.OverviewResult
	Partials      []types.PartialResult
	Metrics       []types.MetricsEntry
	CodeStructure []types.FileMethodGroup

	Documents []types.Document
	Chunks    []types.Chunk

	Repository  types.RepositoryInfo
	Provider    string
	GeneratedAt time.Time
}

// Build produces the final report. It is a pure function of its inputs:
// calling it twice over the same inputs yields identical reports.
func Build(in Inputs) types.Report {
	return types.Report{
		Metadata: types.ReportMetadata{
			AnalysisDate:    in.GeneratedAt.Format(time.RFC3339),
			AnalyzerVersion: AnalyzerVersion,
			LLMProvider:     in.Provider,
			Repository:      in.Repository,
		},
		ProjectOverview:    buildOverview(in.Overview),
		Statistics:         buildStatistics(in.Documents, in.Chunks),
		CodeStructure:      buildCodeStructure(in.CodeStructure),
		ComplexityAnalysis: buildComplexity(in.Metrics),
		DetailedAnalysis:   buildDetailed(in.Partials),
	}
}

func buildOverview(o types.OverviewResult) types.ProjectOverview {
	name := o.ProjectName
	if name == "" {
		name = "Unknown"
	}
	return types.ProjectOverview{
		Name:                name,
		Purpose:             o.Purpose,
		Domain:              o.Domain,
		Architecture:        o.ArchitectureStyle,
		KeyTechnologies:     o.KeyTechnologies,
		MainComponents:      o.MainComponents,
		EstimatedComplexity: o.EstimatedComplexity,
		NotableFeatures:     o.NotableFeatures,
	}
}

func buildStatistics(documents []types.Document, chunks []types.Chunk) types.Statistics {
	stats := types.Statistics{
		TotalFiles:       len(documents),
		TotalChunks:      len(chunks),
		FilesByExtension: make(map[string]int),
	}
	for _, d := range documents {
		stats.TotalLines += d.Lines()
		stats.TotalSizeBytes += d.Size
		stats.FilesByExtension[d.ExtKey()]++
	}
	for _, c := range chunks {
		if c.Oversized {
			stats.OversizedChunks++
		}
	}
	return stats
}

func buildCodeStructure(groups []types.FileMethodGroup) types.CodeStructure {
	out := types.CodeStructure{
		TotalFilesWithMethods: len(groups),
		Files:                 make([]types.FileMethodGroup, 0, len(groups)),
	}
	for _, g := range groups {
		methods := g.Methods
		if len(methods) > MaxMethodsPerFile {
			methods = methods[:MaxMethodsPerFile]
		}
		out.Files = append(out.Files, types.FileMethodGroup{
			Path:        g.Path,
			MethodCount: g.MethodCount,
			Methods:     methods,
		})
	}
	return out
}

// buildComplexity folds the metrics entries into the report's complexity
// section. File ordering follows the (path-sorted) input order, not score
// order, so the capped lists are deterministic.
func buildComplexity(entries []types.MetricsEntry) types.ComplexityAnalysis {
	analysis := types.ComplexityAnalysis{
		HighComplexityFiles: []types.HighComplexityFile{},
		DetailedMetrics:     []types.FileComplexity{},
	}

	totalMax := 0
	for _, e := range entries {
		totalMax += e.MaxScore

		if e.MaxScore > HighComplexityThreshold && len(analysis.HighComplexityFiles) < MaxHighComplexityFiles {
			analysis.HighComplexityFiles = append(analysis.HighComplexityFiles, types.HighComplexityFile{
				Path:          e.Path,
				MaxComplexity: e.MaxScore,
			})
		}

		if e.MaxScore > NotableComplexityThreshold && len(analysis.DetailedMetrics) < MaxDetailedFiles {
			var notable []types.ScoredEntity
			for _, fn := range e.Functions {
				if fn.Score > NotableComplexityThreshold {
					notable = append(notable, fn)
					if len(notable) == MaxComplexFunctionsPerFile {
						break
					}
				}
			}
			analysis.DetailedMetrics = append(analysis.DetailedMetrics, types.FileComplexity{
				File:             e.Path,
				MaxComplexity:    e.MaxScore,
				ComplexityLevel:  e.Level,
				ComplexFunctions: notable,
			})
		}
	}

	analysis.Summary = types.ComplexitySummary{
		TotalFilesAnalyzed:  len(entries),
		AverageComplexity:   averageComplexity(totalMax, len(entries)),
		HighComplexityCount: len(analysis.HighComplexityFiles),
	}
	return analysis
}

// averageComplexity is the mean of per-file maximum scores, rounded to two
// decimal places; zero when no file was scored.
func averageComplexity(totalMax, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(totalMax)/float64(count)*100) / 100
}

// buildDetailed flattens the structured partials, in chunk-sequence then
// in-chunk order, tagging every class and function with its originating
// file. Raw partials contribute nothing but cost nothing either.
func buildDetailed(partials []types.PartialResult) types.DetailedAnalysis {
	detailed := types.DetailedAnalysis{
		Classes:      []types.ClassSummary{},
		KeyFunctions: []types.TaggedFunction{},
	}

	totalFunctions := 0
	for _, p := range partials {
		if !p.Structured() {
			continue
		}
		for _, f := range p.Files {
			for _, cls := range f.Classes {
				methods := cls.Methods
				if len(methods) > MaxMethodsPerClass {
					methods = methods[:MaxMethodsPerClass]
				}
				detailed.Classes = append(detailed.Classes, types.ClassSummary{
					Name:          cls.Name,
					File:          f.Path,
					Purpose:       cls.Purpose,
					MethodCount:   len(cls.Methods),
					KeyMethods:    methods,
					Relationships: cls.Relationships,
				})
			}
			for _, fn := range f.KeyFunctions {
				totalFunctions++
				if len(detailed.KeyFunctions) < MaxKeyFunctions {
					detailed.KeyFunctions = append(detailed.KeyFunctions, types.TaggedFunction{
						Name:        fn.Name,
						File:        f.Path,
						Description: fn.Description,
					})
				}
			}
		}
	}

	detailed.TotalClassesIdentified = len(detailed.Classes)
	detailed.TotalKeyFunctionsIdentified = totalFunctions
	return detailed
}
