package types

// Report is the terminal aggregate of a run: overview fields, global
// statistics, capped complexity summaries, and the merged class/function
// listing with provenance. Built once by the aggregator and immutable
// thereafter.
type Report struct {
	Metadata           ReportMetadata     `json:"metadata"`
	ProjectOverview    ProjectOverview    `json:"project_overview"`
	Statistics         Statistics         `json:"statistics"`
	CodeStructure      CodeStructure      `json:"code_structure"`
	ComplexityAnalysis ComplexityAnalysis `json:"complexity_analysis"`
	DetailedAnalysis   DetailedAnalysis   `json:"detailed_analysis"`
}

// ReportMetadata records when and how the analysis was produced.
type ReportMetadata struct {
	AnalysisDate    string         `json:"analysis_date"`
	AnalyzerVersion string         `json:"analyzer_version"`
	LLMProvider     string         `json:"llm_provider"`
	Repository      RepositoryInfo `json:"repository"`
}

// RepositoryInfo is the metadata of the analyzed repository.
type RepositoryInfo struct {
	URL       string `json:"url,omitempty"`
	LocalPath string `json:"local_path,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Commit    string `json:"last_commit,omitempty"`
}

// ProjectOverview is the report's rendering of the overview call.
type ProjectOverview struct {
	Name                string          `json:"name"`
	Purpose             string          `json:"purpose"`
	Domain              string          `json:"domain"`
	Architecture        string          `json:"architecture"`
	KeyTechnologies     []string        `json:"key_technologies"`
	MainComponents      []MainComponent `json:"main_components"`
	EstimatedComplexity string          `json:"estimated_complexity"`
	NotableFeatures     []string        `json:"notable_features"`
}

// Statistics summarizes the document set and the chunking of the run.
type Statistics struct {
	TotalFiles       int            `json:"total_files"`
	TotalChunks      int            `json:"total_chunks"`
	OversizedChunks  int            `json:"oversized_chunks"`
	TotalLines       int            `json:"total_lines"`
	TotalSizeBytes   int            `json:"total_size_bytes"`
	FilesByExtension map[string]int `json:"files_by_extension"`
}

// CodeStructure lists the method signatures found by pattern matching.
type CodeStructure struct {
	TotalFilesWithMethods int               `json:"total_files_with_methods"`
	Files                 []FileMethodGroup `json:"files"`
}

// FileMethodGroup is the extracted signatures of one file.
type FileMethodGroup struct {
	Path        string            `json:"path"`
	MethodCount int               `json:"method_count"`
	Methods     []MethodSignature `json:"methods"`
}

// ComplexityAnalysis is the report's complexity section.
type ComplexityAnalysis struct {
	Summary             ComplexitySummary    `json:"summary"`
	HighComplexityFiles []HighComplexityFile `json:"high_complexity_files"`
	DetailedMetrics     []FileComplexity     `json:"detailed_metrics"`
}

// ComplexitySummary carries the aggregate complexity numbers.
type ComplexitySummary struct {
	TotalFilesAnalyzed  int     `json:"total_files_analyzed"`
	AverageComplexity   float64 `json:"average_complexity"`
	HighComplexityCount int     `json:"high_complexity_count"`
}

// HighComplexityFile names a file whose maximum score exceeds the high
// threshold.
type HighComplexityFile struct {
	Path          string `json:"path"`
	MaxComplexity int    `json:"max_complexity"`
}

// FileComplexity is the per-file detail retained in the report, holding only
// the notable scored entities.
type FileComplexity struct {
	File             string          `json:"file"`
	MaxComplexity    int             `json:"max_complexity"`
	ComplexityLevel  ComplexityLevel `json:"complexity_level"`
	ComplexFunctions []ScoredEntity  `json:"complex_functions"`
}

// DetailedAnalysis is the merged class/function listing across all chunks.
type DetailedAnalysis struct {
	TotalClassesIdentified      int             `json:"total_classes_identified"`
	TotalKeyFunctionsIdentified int             `json:"total_key_functions_identified"`
	Classes                     []ClassSummary  `json:"classes"`
	KeyFunctions                []TaggedFunction `json:"key_functions"`
}

// ClassSummary is one identified class with its originating file.
type ClassSummary struct {
	Name          string   `json:"name"`
	File          string   `json:"file"`
	Purpose       string   `json:"purpose"`
	MethodCount   int      `json:"method_count"`
	KeyMethods    []Method `json:"key_methods"`
	Relationships []string `json:"relationships"`
}

// TaggedFunction is a key function tagged with its originating file.
type TaggedFunction struct {
	Name        string `json:"name"`
	File        string `json:"file"`
	Description string `json:"description"`
}
