package prompt

import (
	"fmt"
	"strings"
	"testing"

	"codeberg.org/docchat/server/internal/retriever"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retrievedChunks(texts ...string) []retriever.Retrieved {
	chunks := make([]retriever.Retrieved, len(texts))

	for i, text := range texts {
		chunks[i] = retriever.Retrieved{
			ChunkID:    fmt.Sprintf("c%d", i+1),
			DocumentID: "doc-1",
			Page:       i + 1,
			Text:       text,
			Score:      1 - float32(i)*0.1,
		}
	}

	return chunks
}

func TestAssemble_ChunksInOrderExactlyOnce(t *testing.T) {
	a := NewAssembler(0)
	chunks := retrievedChunks("first chunk text", "second chunk text", "third chunk text")

	result := a.Assemble(chunks, "the question", nil)

	assert.Equal(t, 1, strings.Count(result.Prompt, "Chunk 1 (page 1): first chunk text"))
	assert.Equal(t, 1, strings.Count(result.Prompt, "Chunk 2 (page 2): second chunk text"))
	assert.Equal(t, 1, strings.Count(result.Prompt, "Chunk 3 (page 3): third chunk text"))

	// retrieval order preserved
	first := strings.Index(result.Prompt, "first chunk text")
	second := strings.Index(result.Prompt, "second chunk text")
	third := strings.Index(result.Prompt, "third chunk text")
	assert.Less(t, first, second)
	assert.Less(t, second, third)

	assert.Len(t, result.Used, 3)
}

func TestAssemble_QueryAppendedVerbatimAfterContext(t *testing.T) {
	a := NewAssembler(0)
	query := "What color is the sky?  (exactly as typed)"

	result := a.Assemble(retrievedChunks("some context paragraph"), query, nil)

	assert.Equal(t, 1, strings.Count(result.Prompt, query))
	assert.Greater(t, strings.Index(result.Prompt, query), strings.Index(result.Prompt, "some context paragraph"))
	assert.True(t, strings.Contains(result.Prompt, queryPrefix+query))
}

func TestAssemble_EmptyRetrievalStillValid(t *testing.T) {
	a := NewAssembler(0)

	result := a.Assemble(nil, "an unanswerable question", nil)

	require.NotEmpty(t, result.Prompt)
	assert.Contains(t, result.Prompt, noContextLine)
	assert.Contains(t, result.Prompt, "an unanswerable question")
	assert.Empty(t, result.Used)
}

func TestAssemble_HistoryBeforeContext(t *testing.T) {
	a := NewAssembler(0)
	history := []Turn{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}

	result := a.Assemble(retrievedChunks("context text here"), "new question", history)

	histIdx := strings.Index(result.Prompt, "earlier question")
	ctxIdx := strings.Index(result.Prompt, "context text here")
	queryIdx := strings.Index(result.Prompt, "new question")

	require.GreaterOrEqual(t, histIdx, 0)
	assert.Less(t, histIdx, ctxIdx)
	assert.Less(t, ctxIdx, queryIdx)

	// turns stay in their original order
	assert.Less(t, strings.Index(result.Prompt, "earlier question"), strings.Index(result.Prompt, "earlier answer"))
}

func TestAssemble_BudgetDropsLowestRankedFirst(t *testing.T) {
	chunks := retrievedChunks(
		strings.Repeat("a", 100),
		strings.Repeat("b", 100),
		strings.Repeat("c", 100),
	)

	// enough for the fixed parts plus roughly two chunks
	a := NewAssembler(320)

	result := a.Assemble(chunks, "q", nil)

	assert.Contains(t, result.Prompt, strings.Repeat("a", 100))
	assert.Contains(t, result.Prompt, strings.Repeat("b", 100))
	assert.NotContains(t, result.Prompt, strings.Repeat("c", 100))
	assert.LessOrEqual(t, len(result.Prompt), 320)

	// sources reflect what was actually kept
	require.Len(t, result.Used, 2)
	assert.Equal(t, "c1", result.Used[0].ChunkID)
	assert.Equal(t, "c2", result.Used[1].ChunkID)
}

func TestAssemble_BudgetNeverSplitsAChunkFromItsLabel(t *testing.T) {
	chunks := retrievedChunks(strings.Repeat("x", 200))

	// too small for the only chunk: it is dropped whole, prompt falls back
	// to the no-context framing
	a := NewAssembler(120)

	result := a.Assemble(chunks, "q", nil)

	assert.NotContains(t, result.Prompt, "xx")
	assert.NotContains(t, result.Prompt, "Chunk 1")
	assert.Contains(t, result.Prompt, noContextLine)
	assert.Empty(t, result.Used)
}

func TestAssemble_Reproducible(t *testing.T) {
	a := NewAssembler(500)
	chunks := retrievedChunks("alpha text", "beta text")
	history := []Turn{{Role: "user", Content: "prior turn"}}

	first := a.Assemble(chunks, "question", history)

	for range 5 {
		assert.Equal(t, first, a.Assemble(chunks, "question", history))
	}
}
