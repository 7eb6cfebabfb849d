// Package cost estimates the token cost of text for budget checks. The
// chunker treats the estimator as a black box; any implementation must be
// total and deterministic over its input.
package cost

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// TokensPerChar is the heuristic for estimating tokens (chars/4).
const TokensPerChar = 4

// Estimator maps a text blob to a non-negative integer cost.
type Estimator interface {
	EstimateTokens(text string) int
}

// Heuristic estimates tokens with the chars/4 approximation used across the
// OpenAI-style model family. Non-empty text always costs at least one token.
type Heuristic struct{}

// NewHeuristic returns the default estimator.
func NewHeuristic() Heuristic {
	return Heuristic{}
}

// EstimateTokens implements Estimator.
func (Heuristic) EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	tokens := len(text) / TokensPerChar
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}

// Cached wraps an estimator with an LRU cache keyed by content hash. The
// chunker re-estimates overlapping serializations while packing, so repeated
// inputs are common.
type Cached struct {
	inner Estimator
	cache *lru.Cache[string, int]
}

// DefaultCacheSize bounds the number of cached estimates.
const DefaultCacheSize = 4096

// NewCached wraps inner with an LRU cache of the given size. A non-positive
// size falls back to DefaultCacheSize.
func NewCached(inner Estimator, size int) *Cached {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, int](size)
	if err != nil {
		// Only reachable with a non-positive size, which we already fixed up.
		cache, _ = lru.New[string, int](DefaultCacheSize)
	}
	return &Cached{inner: inner, cache: cache}
}

// EstimateTokens implements Estimator.
func (c *Cached) EstimateTokens(text string) int {
	key := hashKey(text)
	if v, ok := c.cache.Get(key); ok {
		return v
	}
	v := c.inner.EstimateTokens(text)
	c.cache.Add(key, v)
	return v
}

// Len returns the current number of cached estimates.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func hashKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
