package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/codescout/codescout/internal/run"
	"github.com/codescout/codescout/internal/storage"
)

// MCP error codes
const (
	ErrorCodeInvalidParams  = -32602 // Invalid method parameters
	ErrorCodeInternalError  = -32603 // Internal JSON-RPC error
	ErrorCodeRunNotFound    = -32001 // Requested run does not exist
	ErrorCodeAnalysisFailed = -32002 // Analysis run failed
)

// handleAnalyzeCodebase handles the analyze_codebase tool invocation.
func (s *Server) handleAnalyzeCodebase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	opts := run.Options{
		SkipClone:  getBoolDefault(args, "skip_clone", false),
		OutputFile: getStringDefault(args, "output_file", ""),
		Store:      s.store,
	}

	result, err := run.Execute(ctx, s.cfg, opts)
	if err != nil {
		return nil, newMCPError(ErrorCodeAnalysisFailed, "analysis failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"run_id":             result.RunID,
		"project":            result.Report.ProjectOverview.Name,
		"files_analyzed":     result.Report.Statistics.TotalFiles,
		"chunks":             result.Report.Statistics.TotalChunks,
		"oversized_chunks":   result.Report.Statistics.OversizedChunks,
		"classes_identified": result.Report.DetailedAnalysis.TotalClassesIdentified,
		"average_complexity": result.Report.ComplexityAnalysis.Summary.AverageComplexity,
		"json_path":          result.JSONPath,
		"summary_path":       result.SummaryPath,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetReport handles the get_report tool invocation.
func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	var (
		record *storage.Run
		err    error
	)
	if id := getIntDefault(args, "run_id", 0); id > 0 {
		record, err = s.store.GetRun(ctx, int64(id))
	} else {
		record, err = s.store.LatestRun(ctx)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodeRunNotFound, "run not found", nil)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load run", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(record.ReportJSON), nil
}

// handleListRuns handles the list_runs tool invocation.
func (s *Server) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	limit := getIntDefault(args, "limit", 10)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
		})
	}

	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list runs", map[string]interface{}{
			"error": err.Error(),
		})
	}

	items := make([]map[string]interface{}, 0, len(runs))
	for _, r := range runs {
		items = append(items, map[string]interface{}{
			"run_id":             r.ID,
			"project":            r.ProjectName,
			"provider":           r.Provider,
			"model":              r.Model,
			"total_files":        r.TotalFiles,
			"total_chunks":       r.TotalChunks,
			"classes_found":      r.ClassesFound,
			"average_complexity": r.AvgComplexity,
			"created_at":         r.CreatedAt,
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"runs": items,
	})), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error.
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error.
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON.
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value.
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value.
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value.
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
