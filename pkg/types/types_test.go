package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentLines(t *testing.T) {
	d := Document{Content: "a\nb\nc"}
	assert.Equal(t, 3, d.Lines())

	empty := Document{Content: ""}
	assert.Equal(t, 1, empty.Lines())
}

func TestDocumentExtKey(t *testing.T) {
	assert.Equal(t, ".go", (&Document{Ext: ".go"}).ExtKey())
	assert.Equal(t, "no_extension", (&Document{Ext: ""}).ExtKey())
}

func TestDocumentIsReadme(t *testing.T) {
	assert.True(t, (&Document{Path: "README.md"}).IsReadme())
	assert.True(t, (&Document{Path: "docs/readme.txt"}).IsReadme())
	assert.False(t, (&Document{Path: "main.go"}).IsReadme())
}

func TestChunkValidate(t *testing.T) {
	budget := 100
	docs := []Document{{Path: "a.go"}}

	ok := Chunk{Seq: 0, Documents: docs, Cost: 80}
	assert.NoError(t, ok.Validate(budget))

	atBudget := Chunk{Seq: 0, Documents: docs, Cost: 100}
	assert.NoError(t, atBudget.Validate(budget))

	empty := Chunk{Seq: 0}
	assert.ErrorIs(t, empty.Validate(budget), ErrEmptyChunk)

	overUnflagged := Chunk{Seq: 0, Documents: docs, Cost: 150}
	assert.ErrorIs(t, overUnflagged.Validate(budget), ErrBudgetExceeded)

	oversized := Chunk{Seq: 0, Documents: docs, Cost: 150, Oversized: true}
	assert.NoError(t, oversized.Validate(budget))

	oversizedMulti := Chunk{
		Seq:       0,
		Documents: []Document{{Path: "a.go"}, {Path: "b.go"}},
		Cost:      150,
		Oversized: true,
	}
	assert.ErrorIs(t, oversizedMulti.Validate(budget), ErrBudgetExceeded)
}

func TestPartialResultStructured(t *testing.T) {
	assert.True(t, (&PartialResult{ChunkSeq: 0}).Structured())
	assert.False(t, (&PartialResult{ChunkSeq: 0, ParseError: "boom"}).Structured())
}
