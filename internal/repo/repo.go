// Package repo supplies the document set: it optionally clones or updates a
// git repository, then walks the working tree and reads every file matching
// the configured extension allow-list. Unreadable files are skipped with a
// warning; they never abort the run.
package repo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/codescout/codescout/internal/config"
	"github.com/codescout/codescout/pkg/types"
)

// Manager reads a repository from disk, cloning it first when a remote URL
// is configured.
type Manager struct {
	url         string
	localPath   string
	includeExts []string
	excludeDirs map[string]bool
	logger      *slog.Logger
}

// NewManager creates a Manager from the run configuration.
func NewManager(cfg config.Config) *Manager {
	excl := make(map[string]bool, len(cfg.ExcludeDirs))
	for _, d := range cfg.ExcludeDirs {
		excl[d] = true
	}
	return &Manager{
		url:         cfg.RepoURL,
		localPath:   cfg.RepoLocalPath,
		includeExts: cfg.IncludeExtensions,
		excludeDirs: excl,
		logger:      slog.Default().With("component", "repo"),
	}
}

// Clone clones the configured repository, or pulls if a working tree already
// exists at the local path. A failed pull falls back to the existing tree
// with a warning. No-op when no remote URL is configured.
func (m *Manager) Clone(ctx context.Context) error {
	if m.url == "" {
		return nil
	}

	if _, err := os.Stat(filepath.Join(m.localPath, ".git")); err == nil {
		m.logger.Info("repository exists, pulling latest changes", "path", m.localPath)
		cmd := exec.CommandContext(ctx, "git", "-C", m.localPath, "pull", "--ff-only")
		if out, err := cmd.CombinedOutput(); err != nil {
			m.logger.Warn("could not update repository, using existing tree",
				"error", err, "output", strings.TrimSpace(string(out)))
		}
		return nil
	}

	m.logger.Info("cloning repository", "url", m.url, "path", m.localPath)
	if err := os.MkdirAll(filepath.Dir(m.localPath), 0o755); err != nil {
		return fmt.Errorf("create clone parent directory: %w", err)
	}
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", m.url, m.localPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git clone %s: %w: %s", m.url, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Info returns repository metadata for the report. Fields that cannot be
// determined are left empty; metadata is never fatal.
func (m *Manager) Info(ctx context.Context) types.RepositoryInfo {
	info := types.RepositoryInfo{
		URL:       m.url,
		LocalPath: m.localPath,
	}
	if branch, err := m.git(ctx, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		info.Branch = branch
	}
	if commit, err := m.git(ctx, "rev-parse", "--short", "HEAD"); err == nil {
		info.Commit = commit
	}
	return info
}

func (m *Manager) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", m.localPath}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ReadCodebase walks the working tree and returns every matching file as a
// Document. Paths are relative to the repository root and unique; content is
// decoded text.
func (m *Manager) ReadCodebase() ([]types.Document, error) {
	root := m.localPath
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("repository path: %w", err)
	}

	var documents []types.Document
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if m.excludeDirs[d.Name()] && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !m.includePath(path) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			m.logger.Warn("could not read file, skipping", "path", path, "error", err)
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		content := decodeText(raw)

		documents = append(documents, types.Document{
			Path:    rel,
			Content: content,
			Ext:     filepath.Ext(path),
			Size:    len(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk repository: %w", err)
	}

	m.logger.Info("read codebase", "files", len(documents))
	return documents, nil
}

func (m *Manager) includePath(path string) bool {
	for _, ext := range m.includeExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// decodeText returns raw as a string, falling back to a Latin-1 reading for
// content that is not valid UTF-8 so every byte maps to some rune.
func decodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}
