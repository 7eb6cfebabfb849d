package types

// ComplexityLevel is the coarse classification of a complexity score.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
)

// ClassifyComplexity maps a cyclomatic complexity score to its level.
// Scores of 5 and below are low, 6-10 medium, above 10 high.
func ClassifyComplexity(score int) ComplexityLevel {
	switch {
	case score <= 5:
		return ComplexityLow
	case score <= 10:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}

// ScoredEntity is one scored function or method within a file.
type ScoredEntity struct {
	Name  string          `json:"name"`
	Score int             `json:"complexity"`
	Line  int             `json:"line"`
	Level ComplexityLevel `json:"complexity_level"`
}

// MetricsEntry holds the complexity metrics of a single document, derived
// independently of chunking. Entries are best-effort: a file the metrics
// collaborator cannot score simply has no entry.
type MetricsEntry struct {
	Path      string          `json:"path"`
	Functions []ScoredEntity  `json:"functions"`
	MaxScore  int             `json:"max_complexity"`
	Level     ComplexityLevel `json:"complexity_level"`
}

// MethodSignature is a method or function signature extracted from source
// text with lightweight pattern matching.
type MethodSignature struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Kind      string `json:"type"`
}
