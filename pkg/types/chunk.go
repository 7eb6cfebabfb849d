package types

import "fmt"

// Chunk is an ordered, non-empty group of documents whose serialized form is
// intended to fit the configured token budget. Seq numbers are assigned by
// the chunker starting at 0 and are strictly increasing.
//
// The only permitted budget violation is the oversized singleton: a chunk of
// exactly one document whose own serialized cost exceeds the budget. Such a
// chunk carries Oversized=true so downstream consumers can tell a legitimate
// overflow from a chunker defect.
type Chunk struct {
	Seq       int
	Documents []Document

	// Cost is the estimated token cost of the chunk's serialized form,
	// recorded when the chunk was sealed.
	Cost int

	// Oversized marks a single-document chunk whose own cost exceeds the
	// budget.
	Oversized bool
}

// FileList returns the paths of the documents in this chunk, in order.
func (c *Chunk) FileList() []string {
	paths := make([]string, len(c.Documents))
	for i, d := range c.Documents {
		paths[i] = d.Path
	}
	return paths
}

// Validate checks the chunk's own invariants.
func (c *Chunk) Validate(budget int) error {
	if len(c.Documents) == 0 {
		return fmt.Errorf("chunk %d: %w", c.Seq, ErrEmptyChunk)
	}
	if c.Seq < 0 {
		return fmt.Errorf("chunk %d: negative sequence number", c.Seq)
	}
	if c.Cost > budget {
		if !c.Oversized {
			return fmt.Errorf("chunk %d: cost %d exceeds budget %d without oversized flag: %w",
				c.Seq, c.Cost, budget, ErrBudgetExceeded)
		}
		if len(c.Documents) != 1 {
			return fmt.Errorf("chunk %d: oversized chunk holds %d documents, want 1: %w",
				c.Seq, len(c.Documents), ErrBudgetExceeded)
		}
	}
	return nil
}
