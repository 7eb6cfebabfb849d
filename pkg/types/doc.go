// Package types defines the core data model shared across the analysis
// pipeline: documents read from a repository, token-budgeted chunks, the
// per-chunk partial results returned by the summarizer, per-file complexity
// metrics, and the final merged report.
package types
