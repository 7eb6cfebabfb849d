package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPayload(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "tagged json fence",
			response: "Here you go:\n```json\n{\"files\": []}\n```\nanything after",
			want:     `{"files": []}`,
		},
		{
			name:     "untagged fence",
			response: "```\n{\"a\": 1}\n```",
			want:     `{"a": 1}`,
		},
		{
			name:     "no fence falls back to whole response",
			response: "  {\"a\": 1}  ",
			want:     `{"a": 1}`,
		},
		{
			name:     "json fence preferred over earlier plain fence",
			response: "```\nnoise\n```\n```json\n{\"b\": 2}\n```",
			want:     `{"b": 2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPayload(tt.response))
		})
	}
}

func TestParseChunkResponse(t *testing.T) {
	response := "```json\n" + `{
  "files": [
    {
      "path": "server.go",
      "classes": [
        {"name": "Server", "purpose": "handles requests", "methods": [], "relationships": []}
      ],
      "key_functions": [
        {"name": "main", "description": "entry point"}
      ]
    }
  ]
}` + "\n```"

	partial := ParseChunkResponse(3, response)
	require.True(t, partial.Structured())
	assert.Equal(t, 3, partial.ChunkSeq)
	require.Len(t, partial.Files, 1)
	assert.Equal(t, "server.go", partial.Files[0].Path)
	require.Len(t, partial.Files[0].Classes, 1)
	assert.Equal(t, "Server", partial.Files[0].Classes[0].Name)
	require.Len(t, partial.Files[0].KeyFunctions, 1)
	assert.Equal(t, "main", partial.Files[0].KeyFunctions[0].Name)
}

func TestParseChunkResponseIgnoresEchoedChunkID(t *testing.T) {
	// The sequence number always comes from the caller, even when the model
	// echoes a different chunk_id.
	response := `{"chunk_id": 99, "files": []}`
	partial := ParseChunkResponse(2, response)
	require.True(t, partial.Structured())
	assert.Equal(t, 2, partial.ChunkSeq)
}

func TestParseChunkResponseMalformed(t *testing.T) {
	response := "I could not produce JSON, sorry."
	partial := ParseChunkResponse(5, response)

	assert.False(t, partial.Structured())
	assert.Equal(t, 5, partial.ChunkSeq)
	assert.Equal(t, response, partial.RawResponse)
	assert.NotEmpty(t, partial.ParseError)
	assert.Empty(t, partial.Files)
}

func TestParseOverviewResponse(t *testing.T) {
	response := "```json\n" + `{
  "project_name": "codescout",
  "purpose": "analyzes codebases",
  "domain": "developer tooling",
  "key_technologies": ["Go"],
  "architecture_style": "pipeline",
  "main_components": [{"name": "chunker", "description": "packs files"}],
  "estimated_complexity": "medium",
  "notable_features": ["token budgeting"]
}` + "\n```"

	overview := ParseOverviewResponse(response)
	assert.Empty(t, overview.ParseError)
	assert.Equal(t, "codescout", overview.ProjectName)
	assert.Equal(t, "pipeline", overview.ArchitectureStyle)
	require.Len(t, overview.MainComponents, 1)
	assert.Equal(t, "chunker", overview.MainComponents[0].Name)
}

func TestParseOverviewResponseMalformed(t *testing.T) {
	response := strings.Repeat("free text ", 100)
	overview := ParseOverviewResponse(response)

	assert.NotEmpty(t, overview.ParseError)
	assert.Equal(t, "Unknown", overview.ProjectName)
	assert.Len(t, overview.Purpose, rawExcerptLen)
	assert.True(t, strings.HasPrefix(response, overview.Purpose))
}

func TestPrompts(t *testing.T) {
	system, user := ChunkPrompt("PAYLOAD", 1, 4)
	assert.NotEmpty(t, system)
	assert.Contains(t, user, "PAYLOAD")
	assert.Contains(t, user, "Chunk 2/4")

	system, user = OverviewPrompt("ARTIFACT", "https://example.com/repo.git")
	assert.NotEmpty(t, system)
	assert.Contains(t, user, "ARTIFACT")
	assert.Contains(t, user, "https://example.com/repo.git")
}
