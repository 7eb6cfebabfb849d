package llm

import (
	"encoding/json"
	"strings"

	"github.com/codescout/codescout/pkg/types"
)

// rawExcerptLen bounds the raw excerpt kept when an overview response cannot
// be parsed.
const rawExcerptLen = 500

// ExtractPayload locates the structured payload inside free-form model
// output: an explicitly tagged ```json fence first, then any fenced block,
// else the entire response. The whole-response fallback is best-effort; it
// recovers only trivially malformed output.
func ExtractPayload(response string) string {
	if block, ok := fencedBlock(response, "```json"); ok {
		return block
	}
	if block, ok := fencedBlock(response, "```"); ok {
		return block
	}
	return strings.TrimSpace(response)
}

func fencedBlock(response, open string) (string, bool) {
	start := strings.Index(response, open)
	if start < 0 {
		return "", false
	}
	start += len(open)
	end := strings.Index(response[start:], "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(response[start : start+end]), true
}

// ParseChunkResponse parses one chunk's summarizer response. The result is
// always tied to the caller's sequence number, never to the chunk_id the
// model echoed back. On parse failure the raw text is preserved in a
// degraded partial instead of failing the call.
func ParseChunkResponse(seq int, response string) types.PartialResult {
	payload := ExtractPayload(response)

	var parsed struct {
		Files []types.FileAnalysis `json:"files"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return types.PartialResult{
			ChunkSeq:    seq,
			RawResponse: response,
			ParseError:  err.Error(),
		}
	}

	return types.PartialResult{
		ChunkSeq: seq,
		Files:    parsed.Files,
	}
}

// ParseOverviewResponse parses the overview response. On failure a degraded
// overview is returned whose Purpose holds a truncated raw excerpt.
func ParseOverviewResponse(response string) types.OverviewResult {
	payload := ExtractPayload(response)

	var overview types.OverviewResult
	if err := json.Unmarshal([]byte(payload), &overview); err != nil {
		excerpt := response
		if len(excerpt) > rawExcerptLen {
			excerpt = excerpt[:rawExcerptLen]
		}
		return types.OverviewResult{
			ProjectName: "Unknown",
			Purpose:     excerpt,
			ParseError:  err.Error(),
		}
	}
	return overview
}
