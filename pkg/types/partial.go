package types

// PartialResult is the outcome of analyzing one chunk with the summarizer,
// tied to that chunk's sequence number. It is either structured (the response
// parsed into per-file entries) or raw (parsing failed; the original response
// text and the parse error are kept instead). Produced once per chunk and
// never mutated afterward.
type PartialResult struct {
	ChunkSeq int            `json:"chunk_id"`
	Files    []FileAnalysis `json:"files"`

	// RawResponse and ParseError are set only when the summarizer response
	// could not be parsed. A raw partial contributes no classes or functions
	// but does not block aggregation of the rest of the run.
	RawResponse string `json:"raw_response,omitempty"`
	ParseError  string `json:"parse_error,omitempty"`
}

// Structured reports whether the partial carries parsed analysis rather than
// a raw fallback payload.
func (p *PartialResult) Structured() bool {
	return p.ParseError == ""
}

// FileAnalysis is the summarizer's per-file breakdown inside a chunk.
type FileAnalysis struct {
	Path            string        `json:"path"`
	Classes         []Class       `json:"classes"`
	KeyFunctions    []KeyFunction `json:"key_functions"`
	ComplexityNotes string        `json:"complexity_notes,omitempty"`
}

// Class is a class or type identified by the summarizer.
type Class struct {
	Name          string   `json:"name"`
	Purpose       string   `json:"purpose"`
	Methods       []Method `json:"methods"`
	Relationships []string `json:"relationships"`
}

// Method is a method belonging to an identified class.
type Method struct {
	Name        string `json:"name"`
	Signature   string `json:"signature"`
	Description string `json:"description"`
	Complexity  string `json:"complexity"`
}

// KeyFunction is a standalone function the summarizer flagged as notable.
type KeyFunction struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// OverviewResult is the summarizer's high-level take on the whole project,
// produced by the single budget-exempt overview call.
type OverviewResult struct {
	ProjectName         string          `json:"project_name"`
	Purpose             string          `json:"purpose"`
	Domain              string          `json:"domain"`
	KeyTechnologies     []string        `json:"key_technologies"`
	ArchitectureStyle   string          `json:"architecture_style"`
	MainComponents      []MainComponent `json:"main_components"`
	EstimatedComplexity string          `json:"estimated_complexity"`
	NotableFeatures     []string        `json:"notable_features"`

	// ParseError is set when the overview response could not be parsed; the
	// Purpose field then holds a truncated raw excerpt.
	ParseError string `json:"parse_error,omitempty"`
}

// MainComponent is one top-level component named in the overview.
type MainComponent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
