// Package chunker partitions the document set into an ordered sequence of
// token-budgeted chunks. The packing is greedy, online, and deterministic:
// documents are path-sorted first so chunk boundaries are independent of
// input enumeration order, and no lookahead or repacking is attempted.
package chunker

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/codescout/codescout/internal/cost"
	"github.com/codescout/codescout/pkg/types"
)

// Chunker packs documents into chunks whose serialized cost stays at or
// under the budget. The single permitted violation is the oversized
// singleton: one document whose serialized form alone exceeds the budget is
// emitted as its own chunk with the Oversized flag set.
type Chunker struct {
	budget    int
	estimator cost.Estimator
	logger    *slog.Logger
}

// New creates a Chunker. The budget must be positive.
func New(budget int, estimator cost.Estimator) (*Chunker, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("chunker: budget must be positive, got %d", budget)
	}
	if estimator == nil {
		return nil, fmt.Errorf("chunker: estimator is required")
	}
	return &Chunker{
		budget:    budget,
		estimator: estimator,
		logger:    slog.Default().With("component", "chunker"),
	}, nil
}

// Budget returns the configured token budget.
func (c *Chunker) Budget() int {
	return c.budget
}

// Chunk partitions documents into ordered chunks. The input slice is not
// modified; documents are copied and sorted by path before packing, so the
// same document set always yields the same chunk boundaries. An empty input
// yields an empty sequence.
func (c *Chunker) Chunk(documents []types.Document) []types.Chunk {
	sorted := make([]types.Document, len(documents))
	copy(sorted, documents)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var (
		chunks      []types.Chunk
		pending     []types.Document
		pendingCost int
		seq         int
	)

	seal := func(docs []types.Document, cst int, oversized bool) {
		chunks = append(chunks, types.Chunk{
			Seq:       seq,
			Documents: docs,
			Cost:      cst,
			Oversized: oversized,
		})
		if oversized {
			c.logger.Warn("document exceeds token budget, emitting oversized chunk",
				"path", docs[0].Path, "cost", cst, "budget", c.budget)
		} else {
			c.logger.Debug("sealed chunk", "seq", seq, "files", len(docs), "cost", cst)
		}
		seq++
	}

	for _, d := range sorted {
		// Cost is measured over the serialized form of the whole prospective
		// chunk, framing included. Framing overhead makes per-document costs
		// non-additive, so summing individual costs would under-count.
		candidate := append(pending[:len(pending):len(pending)], d)
		candidateCost := c.estimator.EstimateTokens(Serialize(candidate))

		switch {
		case candidateCost <= c.budget:
			pending = candidate
			pendingCost = candidateCost

		case len(pending) == 0:
			// The document alone busts the budget: oversized singleton.
			seal([]types.Document{d}, candidateCost, true)

		default:
			seal(pending, pendingCost, false)
			soloCost := c.estimator.EstimateTokens(Serialize([]types.Document{d}))
			if soloCost > c.budget {
				seal([]types.Document{d}, soloCost, true)
				pending = nil
				pendingCost = 0
			} else {
				pending = []types.Document{d}
				pendingCost = soloCost
			}
		}
	}

	if len(pending) > 0 {
		seal(pending, pendingCost, false)
	}

	return chunks
}

// Verify checks the structural invariants of a chunking result against the
// document set it was produced from: every document appears in exactly one
// chunk, sequence numbers are contiguous from 0, no chunk is empty, and no
// chunk exceeds the budget without the oversized flag. A failure indicates a
// chunker defect and should abort the run.
func (c *Chunker) Verify(documents []types.Document, chunks []types.Chunk) error {
	seen := make(map[string]int, len(documents))
	for i, ch := range chunks {
		if ch.Seq != i {
			return fmt.Errorf("%w: chunk at index %d has sequence %d", types.ErrCoverage, i, ch.Seq)
		}
		if err := ch.Validate(c.budget); err != nil {
			return err
		}
		for _, d := range ch.Documents {
			seen[d.Path]++
		}
	}
	for _, d := range documents {
		switch seen[d.Path] {
		case 1:
			// covered exactly once
		case 0:
			return fmt.Errorf("%w: document %q missing from all chunks", types.ErrCoverage, d.Path)
		default:
			return fmt.Errorf("%w: document %q appears in %d chunks", types.ErrCoverage, d.Path, seen[d.Path])
		}
	}
	total := 0
	for _, ch := range chunks {
		total += len(ch.Documents)
	}
	if total != len(documents) {
		return fmt.Errorf("%w: chunks hold %d documents, input has %d", types.ErrCoverage, total, len(documents))
	}
	return nil
}

// Serialize renders documents into the text form submitted to the summarizer,
// one framed section per document. The chunker measures cost over exactly
// this representation.
func Serialize(documents []types.Document) string {
	var b strings.Builder
	for i, d := range documents {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("=== File: %s ===\n", d.Path))
		b.WriteString(fmt.Sprintf("Extension: %s\n", d.Ext))
		b.WriteString(fmt.Sprintf("Lines: %d\n", d.Lines()))
		b.WriteString(fmt.Sprintf("\nContent:\n%s\n\n", d.Content))
		b.WriteString(strings.Repeat("=", 80))
	}
	return b.String()
}
