package cost

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicEstimateTokens(t *testing.T) {
	est := NewHeuristic()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"below one token floors to one", "ab", 1},
		{"exact multiple", strings.Repeat("x", 400), 100},
		{"rounds down", strings.Repeat("x", 407), 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, est.EstimateTokens(tt.text))
		})
	}
}

// countingEstimator records how many times it was consulted.
type countingEstimator struct {
	calls int
}

func (c *countingEstimator) EstimateTokens(text string) int {
	c.calls++
	return len(text)
}

func TestCachedEstimator(t *testing.T) {
	inner := &countingEstimator{}
	cached := NewCached(inner, 8)

	assert.Equal(t, 5, cached.EstimateTokens("hello"))
	assert.Equal(t, 5, cached.EstimateTokens("hello"))
	assert.Equal(t, 5, cached.EstimateTokens("hello"))
	assert.Equal(t, 1, inner.calls, "repeated input must hit the cache")

	assert.Equal(t, 5, cached.EstimateTokens("world"))
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 2, cached.Len())
}

func TestCachedEvictsOldEntries(t *testing.T) {
	inner := &countingEstimator{}
	cached := NewCached(inner, 2)

	cached.EstimateTokens("a")
	cached.EstimateTokens("b")
	cached.EstimateTokens("c")
	assert.Equal(t, 2, cached.Len())

	// "a" was evicted, so it costs a fresh inner call.
	cached.EstimateTokens("a")
	assert.Equal(t, 4, inner.calls)
}

func TestCachedDefaultSize(t *testing.T) {
	cached := NewCached(NewHeuristic(), 0)
	require.NotNil(t, cached)
	cached.EstimateTokens("anything")
	assert.Equal(t, 1, cached.Len())
}
