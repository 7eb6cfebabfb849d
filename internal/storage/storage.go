// Package storage persists run history: every completed analysis is recorded
// with its statistics and the full report document, so past reports can be
// listed and retrieved without re-running the pipeline.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested run doesn't exist.
	ErrNotFound = errors.New("not found")
)

// Run is one completed analysis.
type Run struct {
	ID              int64
	ProjectName     string
	RepoURL         string
	Provider        string
	Model           string
	TotalFiles      int
	TotalChunks     int
	OversizedChunks int
	ClassesFound    int
	AvgComplexity   float64
	ReportJSON      string
	SummaryText     string
	CreatedAt       time.Time
}

// Store defines the run-history interface.
type Store interface {
	// SaveRun inserts a run and fills in its ID and CreatedAt.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by ID. Returns ErrNotFound when absent.
	GetRun(ctx context.Context, id int64) (*Run, error)

	// LatestRun retrieves the most recent run. Returns ErrNotFound when the
	// history is empty.
	LatestRun(ctx context.Context) (*Run, error)

	// ListRuns returns up to limit runs, newest first, without report
	// bodies.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// Close releases the underlying database.
	Close() error
}
