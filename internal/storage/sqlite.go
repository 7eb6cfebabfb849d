package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings.
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteStore creates a run store at dbPath, applying migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts a run record.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			project_name, repo_url, provider, model,
			total_files, total_chunks, oversized_chunks,
			classes_found, avg_complexity,
			report_json, summary_text, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ProjectName, run.RepoURL, run.Provider, run.Model,
		run.TotalFiles, run.TotalChunks, run.OversizedChunks,
		run.ClassesFound, run.AvgComplexity,
		run.ReportJSON, run.SummaryText, now,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}
	run.ID = id
	run.CreatedAt = now
	return nil
}

const runColumns = `id, project_name, repo_url, provider, model,
	total_files, total_chunks, oversized_chunks,
	classes_found, avg_complexity, report_json, summary_text, created_at`

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id int64) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// LatestRun retrieves the most recent run.
func (s *SQLiteStore) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT 1`)
	return scanRun(row)
}

// ListRuns returns up to limit runs, newest first. Report bodies are left
// empty; use GetRun for the full document.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_name, repo_url, provider, model,
			total_files, total_chunks, oversized_chunks,
			classes_found, avg_complexity, created_at
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.ProjectName, &r.RepoURL, &r.Provider, &r.Model,
			&r.TotalFiles, &r.TotalChunks, &r.OversizedChunks,
			&r.ClassesFound, &r.AvgComplexity, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

func scanRun(row *sql.Row) (*Run, error) {
	var r Run
	err := row.Scan(
		&r.ID, &r.ProjectName, &r.RepoURL, &r.Provider, &r.Model,
		&r.TotalFiles, &r.TotalChunks, &r.OversizedChunks,
		&r.ClassesFound, &r.AvgComplexity, &r.ReportJSON, &r.SummaryText, &r.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
