package types

import "errors"

// Domain errors. Budget and coverage violations indicate a chunker defect and
// are treated as fatal; everything else in the pipeline degrades per item.
var (
	ErrEmptyChunk     = errors.New("chunk cannot be empty")
	ErrBudgetExceeded = errors.New("chunk exceeds budget")
	ErrCoverage       = errors.New("chunk coverage violation")
	ErrNoDocuments    = errors.New("no documents to analyze")
)
