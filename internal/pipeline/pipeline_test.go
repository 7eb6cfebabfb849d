package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescout/codescout/internal/metrics"
	"github.com/codescout/codescout/pkg/types"
)

// mockSummarizer answers each chunk call with a canned response selected by
// the 1-based chunk marker in the prompt. It is safe for concurrent use.
type mockSummarizer struct {
	mu        sync.Mutex
	responses map[int]string
	errs      map[int]error
	fallback  string
	delay     time.Duration
	calls     int
}

var chunkMarker = regexp.MustCompile(`Chunk (\d+)/\d+`)

func (m *mockSummarizer) Complete(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.delay):
		}
	}

	pos := 0
	if match := chunkMarker.FindStringSubmatch(user); match != nil {
		fmt.Sscanf(match[1], "%d", &pos)
	}
	if err, ok := m.errs[pos]; ok {
		return "", err
	}
	if resp, ok := m.responses[pos]; ok {
		return resp, nil
	}
	return m.fallback, nil
}

func (m *mockSummarizer) Provider() string { return "mock" }
func (m *mockSummarizer) Model() string    { return "mock-model" }

func (m *mockSummarizer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func chunkResponse(path string) string {
	return fmt.Sprintf(`{"files": [{"path": %q, "key_functions": [{"name": "fn_%s"}]}]}`, path, path)
}

func makeChunks(n int) []types.Chunk {
	chunks := make([]types.Chunk, n)
	for i := range chunks {
		path := fmt.Sprintf("file%02d.go", i)
		chunks[i] = types.Chunk{
			Seq:       i,
			Documents: []types.Document{{Path: path, Content: "package x\n", Ext: ".go"}},
			Cost:      10,
		}
	}
	return chunks
}

func TestRunChunksAlignment(t *testing.T) {
	chunks := makeChunks(4)
	mock := &mockSummarizer{responses: map[int]string{}}
	for i := range chunks {
		mock.responses[i+1] = chunkResponse(chunks[i].Documents[0].Path)
	}

	p := New(mock, metrics.New(), Config{Workers: 1})
	results, err := p.RunChunks(context.Background(), chunks)
	require.NoError(t, err)
	require.Len(t, results, len(chunks))

	for i, r := range results {
		assert.Equal(t, chunks[i].Seq, r.ChunkSeq, "result %d must belong to chunk %d", i, i)
		require.True(t, r.Structured())
		require.Len(t, r.Files, 1)
		assert.Equal(t, chunks[i].Documents[0].Path, r.Files[0].Path)
	}
}

func TestRunChunksConcurrentAlignment(t *testing.T) {
	// With a worker pool larger than one, completion order is arbitrary but
	// slot alignment must hold regardless.
	chunks := makeChunks(12)
	mock := &mockSummarizer{responses: map[int]string{}, delay: time.Millisecond}
	for i := range chunks {
		mock.responses[i+1] = chunkResponse(chunks[i].Documents[0].Path)
	}

	p := New(mock, metrics.New(), Config{Workers: 4})
	results, err := p.RunChunks(context.Background(), chunks)
	require.NoError(t, err)
	require.Len(t, results, len(chunks))

	for i, r := range results {
		assert.Equal(t, i, r.ChunkSeq)
		require.True(t, r.Structured())
		assert.Equal(t, chunks[i].Documents[0].Path, r.Files[0].Path)
	}
	assert.Equal(t, len(chunks), mock.callCount())
}

func TestRunChunksFailuresDegradeInPlace(t *testing.T) {
	chunks := makeChunks(3)
	mock := &mockSummarizer{
		responses: map[int]string{
			1: chunkResponse("file00.go"),
			3: chunkResponse("file02.go"),
		},
		errs: map[int]error{2: errors.New("rate limited")},
	}

	p := New(mock, metrics.New(), Config{Workers: 2})
	results, err := p.RunChunks(context.Background(), chunks)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Structured())
	assert.False(t, results[1].Structured())
	assert.Contains(t, results[1].ParseError, "rate limited")
	assert.Equal(t, 1, results[1].ChunkSeq)
	assert.True(t, results[2].Structured())
}

func TestRunChunksUnparseableResponse(t *testing.T) {
	chunks := makeChunks(1)
	mock := &mockSummarizer{fallback: "plain prose, no json"}

	p := New(mock, metrics.New(), Config{})
	results, err := p.RunChunks(context.Background(), chunks)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Structured())
	assert.Equal(t, "plain prose, no json", results[0].RawResponse)
}

func TestRunChunksTimeoutDegradesToPartial(t *testing.T) {
	chunks := makeChunks(1)
	mock := &mockSummarizer{delay: 200 * time.Millisecond, fallback: chunkResponse("file00.go")}

	p := New(mock, metrics.New(), Config{Timeout: 10 * time.Millisecond})
	results, err := p.RunChunks(context.Background(), chunks)
	require.NoError(t, err, "a per-call timeout is recoverable, not a run failure")
	require.Len(t, results, 1)
	assert.False(t, results[0].Structured())
	assert.Contains(t, results[0].ParseError, context.DeadlineExceeded.Error())
}

func TestRunChunksCancellation(t *testing.T) {
	chunks := makeChunks(8)
	mock := &mockSummarizer{delay: 20 * time.Millisecond, fallback: chunkResponse("x.go")}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	p := New(mock, metrics.New(), Config{Workers: 1})
	results, err := p.RunChunks(ctx, chunks)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, len(chunks), "every slot stays defined after cancellation")

	for i, r := range results {
		assert.Equal(t, chunks[i].Seq, r.ChunkSeq)
	}
	// At least the tail slots were never dispatched and keep their degraded
	// marker.
	last := results[len(results)-1]
	assert.False(t, last.Structured())
}

func TestRunChunksEmpty(t *testing.T) {
	p := New(&mockSummarizer{}, metrics.New(), Config{})
	results, err := p.RunChunks(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunOverview(t *testing.T) {
	mock := &mockSummarizer{fallback: `{"project_name": "demo", "purpose": "testing"}`}
	p := New(mock, metrics.New(), Config{})

	docs := []types.Document{{Path: "README.md", Content: "# demo", Ext: ".md"}}
	overview, err := p.RunOverview(context.Background(), docs, types.RepositoryInfo{URL: "https://example.com/demo"})
	require.NoError(t, err)
	assert.Equal(t, "demo", overview.ProjectName)
	assert.Empty(t, overview.ParseError)
}

func TestRunOverviewCallFailureIsFatal(t *testing.T) {
	mock := &mockSummarizer{errs: map[int]error{0: errors.New("boom")}}
	p := New(mock, metrics.New(), Config{})

	_, err := p.RunOverview(context.Background(), nil, types.RepositoryInfo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunOverviewUnparseableIsDegradedNotFatal(t *testing.T) {
	mock := &mockSummarizer{fallback: "no structure here"}
	p := New(mock, metrics.New(), Config{})

	overview, err := p.RunOverview(context.Background(), nil, types.RepositoryInfo{})
	require.NoError(t, err)
	assert.NotEmpty(t, overview.ParseError)
	assert.Equal(t, "Unknown", overview.ProjectName)
}

func TestRunMetrics(t *testing.T) {
	p := New(&mockSummarizer{}, metrics.New(), Config{})

	docs := []types.Document{
		{Path: "b.go", Ext: ".go", Content: "func B() {\n\tif true {\n\t}\n}\n"},
		{Path: "a.go", Ext: ".go", Content: "func A() {}\n"},
		{Path: "notes.txt", Ext: ".txt", Content: "nothing"},
	}

	entries := p.RunMetrics(docs)
	require.Len(t, entries, 2, "unsupported files are skipped")
	assert.Equal(t, "a.go", entries[0].Path, "entries are path ordered")
	assert.Equal(t, "b.go", entries[1].Path)
	assert.Equal(t, 2, entries[1].MaxScore)
}

func TestExtractSignatures(t *testing.T) {
	p := New(&mockSummarizer{}, metrics.New(), Config{})

	docs := []types.Document{
		{Path: "a.go", Ext: ".go", Content: "func Fetch(url string) error {\n\treturn nil\n}\n"},
		{Path: "empty.go", Ext: ".go", Content: "package empty\n"},
	}

	groups := p.ExtractSignatures(docs)
	require.Len(t, groups, 1, "files without matches are omitted")
	assert.Equal(t, "a.go", groups[0].Path)
	assert.Equal(t, 1, groups[0].MethodCount)
	assert.Equal(t, "Fetch", groups[0].Methods[0].Name)
	assert.Equal(t, "func Fetch(url string) error", groups[0].Methods[0].Signature)
}
