// Package mcp exposes the analyzer over the Model Context Protocol so agent
// hosts can trigger runs and read past reports. Stdout carries the protocol;
// all logging goes to stderr.
package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/codescout/codescout/internal/config"
	"github.com/codescout/codescout/internal/storage"
)

const (
	// ServerName is the MCP server name.
	ServerName = "codescout"
	// ServerVersion is the current server version.
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies.
type Server struct {
	mcp   *server.MCPServer
	cfg   config.Config
	store storage.Store
}

// DefaultDBPath returns the default run-history database location.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".codescout", "history.db"), nil
}

// NewServer creates a new MCP server instance backed by the given run store.
func NewServer(cfg config.Config, store storage.Store) (*Server, error) {
	s := &Server{
		mcp:   server.NewMCPServer(ServerName, ServerVersion),
		cfg:   cfg,
		store: store,
	}

	s.mcp.AddTool(analyzeCodebaseTool(), s.handleAnalyzeCodebase)
	s.mcp.AddTool(getReportTool(), s.handleGetReport)
	s.mcp.AddTool(listRunsTool(), s.handleListRuns)

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.store.Close() }()
	return server.ServeStdio(s.mcp)
}
