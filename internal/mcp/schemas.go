package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// analyzeCodebaseTool returns the tool definition for analyze_codebase.
func analyzeCodebaseTool() mcp.Tool {
	return mcp.Tool{
		Name:        "analyze_codebase",
		Description: "Run a full LLM analysis of the configured repository and store the report",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"skip_clone": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, use the existing local working tree instead of cloning/updating",
					"default":     false,
				},
				"output_file": map[string]interface{}{
					"type":        "string",
					"description": "Custom JSON output filename (default: analysis_results_TIMESTAMP.json)",
				},
			},
		},
	}
}

// getReportTool returns the tool definition for get_report.
func getReportTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_report",
		Description: "Retrieve the full JSON report of a past analysis run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "integer",
					"description": "Run ID to retrieve (defaults to the most recent run)",
				},
			},
		},
	}
}

// listRunsTool returns the tool definition for list_runs.
func listRunsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_runs",
		Description: "List past analysis runs, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of runs to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
		},
	}
}
