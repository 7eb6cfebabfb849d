// Package metrics scores per-file complexity independently of chunking. The
// scoring is a best-effort cyclomatic approximation over lightweight pattern
// matching, not language-aware parsing: functions are located by declaration
// regexes and scored by counting decision points in the text between one
// declaration and the next.
package metrics

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/codescout/codescout/pkg/types"
)

// ErrUnsupported is returned for documents whose type tag the analyzer does
// not score.
var ErrUnsupported = fmt.Errorf("unsupported file type for metrics")

type language struct {
	// decl matches a function or method declaration; the capture group is
	// the entity name.
	decl *regexp.Regexp
	// decision matches one decision point for the cyclomatic approximation.
	decision *regexp.Regexp
	// sigKind tags extracted signatures in the report.
	sigKind string
}

var languages = map[string]language{
	".go": {
		decl:     regexp.MustCompile(`(?m)^func\s+(?:\([^)]+\)\s+)?(\w+)\s*\(`),
		decision: regexp.MustCompile(`\b(if|for|case|select)\b|&&|\|\|`),
		sigKind:  "go_function",
	},
	".py": {
		decl:     regexp.MustCompile(`(?m)^[ \t]*def\s+(\w+)\s*\([^)]*\)\s*(?:->[^:]+)?:`),
		decision: regexp.MustCompile(`\b(if|elif|for|while|and|or|except)\b`),
		sigKind:  "python_function",
	},
	".java": {
		decl:     regexp.MustCompile(`(?m)^[ \t]*(?:public|protected|private|static|final|synchronized|abstract|\s)+[\w<>\[\]]+\s+(\w+)\s*\([^)]*\)\s*\{`),
		decision: regexp.MustCompile(`\b(if|for|while|case|catch)\b|&&|\|\|`),
		sigKind:  "java_method",
	},
}

// Analyzer is the metrics collaborator. Failures are per-file and never
// fatal: the caller omits the entry and moves on.
type Analyzer struct {
	logger *slog.Logger
}

// New creates an Analyzer.
func New() *Analyzer {
	return &Analyzer{
		logger: slog.Default().With("component", "metrics"),
	}
}

// Supported reports whether documents with the given extension are scored.
func (a *Analyzer) Supported(ext string) bool {
	_, ok := languages[ext]
	return ok
}

// Analyze scores one document. A document with no recognizable functions
// yields an entry with an empty function list and a max score of zero; only
// an unsupported type tag is an error.
func (a *Analyzer) Analyze(doc types.Document) (types.MetricsEntry, error) {
	lang, ok := languages[doc.Ext]
	if !ok {
		return types.MetricsEntry{}, fmt.Errorf("%w: %q", ErrUnsupported, doc.Ext)
	}

	entry := types.MetricsEntry{Path: doc.Path}

	decls := lang.decl.FindAllStringSubmatchIndex(doc.Content, -1)
	for i, loc := range decls {
		name := doc.Content[loc[2]:loc[3]]
		bodyEnd := len(doc.Content)
		if i+1 < len(decls) {
			bodyEnd = decls[i+1][0]
		}
		body := doc.Content[loc[0]:bodyEnd]

		// One base path plus one per decision point.
		score := 1 + len(lang.decision.FindAllStringIndex(body, -1))
		line := strings.Count(doc.Content[:loc[0]], "\n") + 1

		entry.Functions = append(entry.Functions, types.ScoredEntity{
			Name:  name,
			Score: score,
			Line:  line,
			Level: types.ClassifyComplexity(score),
		})
		if score > entry.MaxScore {
			entry.MaxScore = score
		}
	}

	entry.Level = types.ClassifyComplexity(entry.MaxScore)
	return entry, nil
}
