package aggregate

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescout/codescout/pkg/types"
)

func baseInputs() Inputs {
	return Inputs{
		Overview: types.OverviewResult{
			ProjectName:         "demo",
			Purpose:             "demonstration project",
			EstimatedComplexity: "low",
		},
		Repository:  types.RepositoryInfo{URL: "https://example.com/demo.git"},
		Provider:    "github",
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildMetadataAndOverview(t *testing.T) {
	in := baseInputs()
	r := Build(in)

	assert.Equal(t, "2024-03-01T12:00:00Z", r.Metadata.AnalysisDate)
	assert.Equal(t, AnalyzerVersion, r.Metadata.AnalyzerVersion)
	assert.Equal(t, "github", r.Metadata.LLMProvider)
	assert.Equal(t, "demo", r.ProjectOverview.Name)
	assert.Equal(t, "low", r.ProjectOverview.EstimatedComplexity)
}

func TestBuildOverviewDefaultsName(t *testing.T) {
	in := baseInputs()
	in.Overview.ProjectName = ""
	r := Build(in)
	assert.Equal(t, "Unknown", r.ProjectOverview.Name)
}

func TestBuildStatistics(t *testing.T) {
	in := baseInputs()
	in.Documents = []types.Document{
		{Path: "a.go", Content: "x\ny\n", Ext: ".go", Size: 4},
		{Path: "b.go", Content: "x\n", Ext: ".go", Size: 2},
		{Path: "Makefile", Content: "all:\n", Ext: "", Size: 5},
	}
	in.Chunks = []types.Chunk{
		{Seq: 0, Documents: in.Documents[:2], Cost: 50},
		{Seq: 1, Documents: in.Documents[2:], Cost: 200, Oversized: true},
	}

	r := Build(in)
	assert.Equal(t, 3, r.Statistics.TotalFiles)
	assert.Equal(t, 2, r.Statistics.TotalChunks)
	assert.Equal(t, 1, r.Statistics.OversizedChunks)
	assert.Equal(t, 11, r.Statistics.TotalSizeBytes)
	assert.Equal(t, map[string]int{".go": 2, "no_extension": 1}, r.Statistics.FilesByExtension)
}

func TestBuildDetailedFlattensInOrder(t *testing.T) {
	in := baseInputs()
	in.Partials = []types.PartialResult{
		{
			ChunkSeq: 0,
			Files: []types.FileAnalysis{
				{
					Path: "a.go",
					Classes: []types.Class{
						{Name: "Server", Purpose: "serves", Methods: []types.Method{{Name: "Run"}}},
					},
					KeyFunctions: []types.KeyFunction{{Name: "main", Description: "entry"}},
				},
			},
		},
		{
			ChunkSeq: 1,
			Files: []types.FileAnalysis{
				{
					Path:         "b.go",
					KeyFunctions: []types.KeyFunction{{Name: "helper"}},
				},
			},
		},
	}

	r := Build(in)
	require.Len(t, r.DetailedAnalysis.Classes, 1)
	assert.Equal(t, "Server", r.DetailedAnalysis.Classes[0].Name)
	assert.Equal(t, "a.go", r.DetailedAnalysis.Classes[0].File)

	require.Len(t, r.DetailedAnalysis.KeyFunctions, 2)
	assert.Equal(t, "main", r.DetailedAnalysis.KeyFunctions[0].Name)
	assert.Equal(t, "a.go", r.DetailedAnalysis.KeyFunctions[0].File)
	assert.Equal(t, "helper", r.DetailedAnalysis.KeyFunctions[1].Name)

	assert.Equal(t, 1, r.DetailedAnalysis.TotalClassesIdentified)
	assert.Equal(t, 2, r.DetailedAnalysis.TotalKeyFunctionsIdentified)
}

func TestBuildDetailedSkipsRawPartials(t *testing.T) {
	in := baseInputs()
	in.Partials = []types.PartialResult{
		{
			ChunkSeq:    0,
			RawResponse: "not json at all",
			ParseError:  "invalid character 'n'",
		},
		{
			ChunkSeq: 1,
			Files: []types.FileAnalysis{
				{Path: "b.go", KeyFunctions: []types.KeyFunction{{Name: "ok"}}},
			},
		},
	}

	r := Build(in)
	require.Len(t, r.DetailedAnalysis.KeyFunctions, 1)
	assert.Equal(t, "ok", r.DetailedAnalysis.KeyFunctions[0].Name)
	assert.Equal(t, 1, r.DetailedAnalysis.TotalKeyFunctionsIdentified)
}

func TestBuildDetailedCapsFunctions(t *testing.T) {
	in := baseInputs()
	var fns []types.KeyFunction
	for i := 0; i < MaxKeyFunctions+13; i++ {
		fns = append(fns, types.KeyFunction{Name: fmt.Sprintf("fn%03d", i)})
	}
	in.Partials = []types.PartialResult{
		{ChunkSeq: 0, Files: []types.FileAnalysis{{Path: "big.go", KeyFunctions: fns}}},
	}

	r := Build(in)
	assert.Len(t, r.DetailedAnalysis.KeyFunctions, MaxKeyFunctions)
	assert.Equal(t, "fn000", r.DetailedAnalysis.KeyFunctions[0].Name)
	// The total still counts what was seen, not what was kept.
	assert.Equal(t, MaxKeyFunctions+13, r.DetailedAnalysis.TotalKeyFunctionsIdentified)
}

func TestBuildDetailedCapsMethodsPerClass(t *testing.T) {
	in := baseInputs()
	var methods []types.Method
	for i := 0; i < MaxMethodsPerClass+4; i++ {
		methods = append(methods, types.Method{Name: fmt.Sprintf("m%d", i)})
	}
	in.Partials = []types.PartialResult{
		{ChunkSeq: 0, Files: []types.FileAnalysis{
			{Path: "c.go", Classes: []types.Class{{Name: "Big", Methods: methods}}},
		}},
	}

	r := Build(in)
	require.Len(t, r.DetailedAnalysis.Classes, 1)
	cls := r.DetailedAnalysis.Classes[0]
	assert.Len(t, cls.KeyMethods, MaxMethodsPerClass)
	assert.Equal(t, MaxMethodsPerClass+4, cls.MethodCount)
}

func TestBuildComplexity(t *testing.T) {
	in := baseInputs()
	in.Metrics = []types.MetricsEntry{
		{Path: "a.go", MaxScore: 3, Level: types.ComplexityLow,
			Functions: []types.ScoredEntity{{Name: "small", Score: 3}}},
		{Path: "b.go", MaxScore: 12, Level: types.ComplexityHigh,
			Functions: []types.ScoredEntity{
				{Name: "hairy", Score: 12},
				{Name: "fine", Score: 2},
			}},
		{Path: "c.go", MaxScore: 7, Level: types.ComplexityMedium,
			Functions: []types.ScoredEntity{{Name: "mid", Score: 7}}},
	}

	r := Build(in)
	ca := r.ComplexityAnalysis
	assert.Equal(t, 3, ca.Summary.TotalFilesAnalyzed)
	assert.InDelta(t, 7.33, ca.Summary.AverageComplexity, 0.001)
	assert.Equal(t, 1, ca.Summary.HighComplexityCount)

	require.Len(t, ca.HighComplexityFiles, 1)
	assert.Equal(t, "b.go", ca.HighComplexityFiles[0].Path)
	assert.Equal(t, 12, ca.HighComplexityFiles[0].MaxComplexity)

	// Only files above the notable threshold appear in the detail list, and
	// only their notable functions are retained.
	require.Len(t, ca.DetailedMetrics, 2)
	assert.Equal(t, "b.go", ca.DetailedMetrics[0].File)
	require.Len(t, ca.DetailedMetrics[0].ComplexFunctions, 1)
	assert.Equal(t, "hairy", ca.DetailedMetrics[0].ComplexFunctions[0].Name)
	assert.Equal(t, "c.go", ca.DetailedMetrics[1].File)
}

func TestBuildComplexityCaps(t *testing.T) {
	in := baseInputs()
	for i := 0; i < MaxHighComplexityFiles+5; i++ {
		in.Metrics = append(in.Metrics, types.MetricsEntry{
			Path:     fmt.Sprintf("f%03d.go", i),
			MaxScore: 20,
			Level:    types.ComplexityHigh,
			Functions: []types.ScoredEntity{
				{Name: "f", Score: 20},
			},
		})
	}

	r := Build(in)
	assert.Len(t, r.ComplexityAnalysis.HighComplexityFiles, MaxHighComplexityFiles)
	assert.Len(t, r.ComplexityAnalysis.DetailedMetrics, MaxDetailedFiles)
	// The summary counts the capped list, matching what the report shows.
	assert.Equal(t, MaxHighComplexityFiles, r.ComplexityAnalysis.Summary.HighComplexityCount)
	assert.Equal(t, "f000.go", r.ComplexityAnalysis.HighComplexityFiles[0].Path)
}

func TestBuildComplexityEmpty(t *testing.T) {
	r := Build(baseInputs())
	assert.Equal(t, 0.0, r.ComplexityAnalysis.Summary.AverageComplexity)
	assert.Equal(t, 0, r.ComplexityAnalysis.Summary.TotalFilesAnalyzed)
	assert.NotNil(t, r.ComplexityAnalysis.HighComplexityFiles)
	assert.NotNil(t, r.ComplexityAnalysis.DetailedMetrics)
}

func TestBuildCodeStructureCapsMethods(t *testing.T) {
	in := baseInputs()
	var sigs []types.MethodSignature
	for i := 0; i < MaxMethodsPerFile+3; i++ {
		sigs = append(sigs, types.MethodSignature{Name: fmt.Sprintf("m%d", i), Kind: "function"})
	}
	in.CodeStructure = []types.FileMethodGroup{
		{Path: "wide.go", MethodCount: len(sigs), Methods: sigs},
	}

	r := Build(in)
	require.Len(t, r.CodeStructure.Files, 1)
	assert.Equal(t, 1, r.CodeStructure.TotalFilesWithMethods)
	assert.Len(t, r.CodeStructure.Files[0].Methods, MaxMethodsPerFile)
	assert.Equal(t, MaxMethodsPerFile+3, r.CodeStructure.Files[0].MethodCount)
}

func TestBuildIsDeterministic(t *testing.T) {
	in := baseInputs()
	in.Documents = []types.Document{{Path: "a.go", Content: "x\n", Ext: ".go", Size: 2}}
	in.Chunks = []types.Chunk{{Seq: 0, Documents: in.Documents, Cost: 10}}
	in.Partials = []types.PartialResult{
		{ChunkSeq: 0, Files: []types.FileAnalysis{
			{Path: "a.go", KeyFunctions: []types.KeyFunction{{Name: "main"}}},
		}},
	}
	in.Metrics = []types.MetricsEntry{{Path: "a.go", MaxScore: 2, Level: types.ComplexityLow}}

	first, err := json.Marshal(Build(in))
	require.NoError(t, err)
	second, err := json.Marshal(Build(in))
	require.NoError(t, err)
	assert.Equal(t, first, second, "re-aggregating the same inputs must reproduce the report byte for byte")
}
