package vectorindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// the contract tests run against the in-process backend; the postgres and
// qdrant backends implement the same ordering and tie-break rules and can
// be swapped in here when the services are available.
func newTestIndex(dim int) Index {
	return NewMemoryIndex(dim)
}

func insert(t *testing.T, idx Index, vec []float32, doc, chunk string, page int) {
	t.Helper()
	require.NoError(t, idx.Insert(context.Background(), vec, Payload{DocumentID: doc, ChunkID: chunk, Page: page}))
}

func TestIndex_SearchOrdering(t *testing.T) {
	idx := newTestIndex(2)

	insert(t, idx, []float32{0, 1}, "doc-1", "c1", 1)   // orthogonal to query
	insert(t, idx, []float32{1, 0}, "doc-1", "c2", 2)   // identical to query
	insert(t, idx, []float32{1, 1}, "doc-1", "c3", 3)   // in between

	results, err := idx.Search(context.Background(), []float32{1, 0}, 3, nil)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "c2", results[0].Payload.ChunkID)
	assert.Equal(t, "c3", results[1].Payload.ChunkID)
	assert.Equal(t, "c1", results[2].Payload.ChunkID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.InDelta(t, 0.0, results[2].Score, 1e-6)
}

func TestIndex_TieBreakByInsertionOrder(t *testing.T) {
	idx := newTestIndex(2)

	// three identical vectors: all ties, insertion order must win
	insert(t, idx, []float32{1, 1}, "doc-1", "first", 1)
	insert(t, idx, []float32{1, 1}, "doc-1", "second", 2)
	insert(t, idx, []float32{1, 1}, "doc-1", "third", 3)

	for range 5 {
		results, err := idx.Search(context.Background(), []float32{1, 1}, 3, nil)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "first", results[0].Payload.ChunkID)
		assert.Equal(t, "second", results[1].Payload.ChunkID)
		assert.Equal(t, "third", results[2].Payload.ChunkID)
	}
}

func TestIndex_TopKBound(t *testing.T) {
	idx := newTestIndex(2)

	for i := range 5 {
		insert(t, idx, []float32{1, float32(i)}, "doc-1", "c", i)
	}

	for _, k := range []int{0, 1, 3, 5, 10} {
		results, err := idx.Search(context.Background(), []float32{1, 0}, k, nil)

		require.NoError(t, err)
		assert.LessOrEqual(t, len(results), k)

		if k >= 5 {
			assert.Len(t, results, 5)
		}
	}

	// topK of zero returns an empty list, not an error
	results, err := idx.Search(context.Background(), []float32{1, 0}, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIndex_DocumentScoping(t *testing.T) {
	idx := newTestIndex(2)

	// doc-2's entry is a perfect match for the query; doc-1's is not
	insert(t, idx, []float32{0, 1}, "doc-1", "a", 1)
	insert(t, idx, []float32{1, 0}, "doc-2", "b", 1)

	results, err := idx.Search(context.Background(), []float32{1, 0}, 10, &Filter{DocumentID: "doc-1"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc-1", results[0].Payload.DocumentID)
	assert.Equal(t, "a", results[0].Payload.ChunkID)
}

func TestIndex_EmptyScope(t *testing.T) {
	idx := newTestIndex(2)

	insert(t, idx, []float32{1, 0}, "doc-1", "a", 1)

	results, err := idx.Search(context.Background(), []float32{1, 0}, 3, &Filter{DocumentID: "doc-2"})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIndex_DimensionMismatch(t *testing.T) {
	idx := newTestIndex(3)

	err := idx.Insert(context.Background(), []float32{1, 0}, Payload{DocumentID: "doc-1", ChunkID: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimensions")

	_, err = idx.Search(context.Background(), []float32{1, 0}, 3, nil)
	require.Error(t, err)
}

func TestIndex_DeleteDocument(t *testing.T) {
	idx := newTestIndex(2)
	ctx := context.Background()

	insert(t, idx, []float32{1, 0}, "doc-1", "a", 1)
	insert(t, idx, []float32{1, 0}, "doc-2", "b", 1)

	require.NoError(t, idx.DeleteDocument(ctx, "doc-1"))

	// no stale payloads for the deleted document
	results, err := idx.Search(ctx, []float32{1, 0}, 10, &Filter{DocumentID: "doc-1"})
	require.NoError(t, err)
	assert.Empty(t, results)

	// the other document is untouched
	results, err = idx.Search(ctx, []float32{1, 0}, 10, &Filter{DocumentID: "doc-2"})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestIndex_ResetIdempotent(t *testing.T) {
	idx := newTestIndex(2)
	ctx := context.Background()

	insert(t, idx, []float32{1, 0}, "doc-1", "a", 1)

	require.NoError(t, idx.Reset(ctx))

	results, err := idx.Search(ctx, []float32{1, 0}, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	// resetting an already-empty collection is not an error
	require.NoError(t, idx.Reset(ctx))
}

func TestIndex_Deterministic(t *testing.T) {
	idx := newTestIndex(3)

	vectors := [][]float32{
		{1, 0, 0}, {0.9, 0.1, 0}, {0.9, 0.1, 0}, {0, 0, 1}, {0.5, 0.5, 0},
	}

	for i, v := range vectors {
		insert(t, idx, v, "doc-1", string(rune('a'+i)), i)
	}

	first, err := idx.Search(context.Background(), []float32{1, 0, 0}, 5, nil)
	require.NoError(t, err)

	for range 10 {
		again, err := idx.Search(context.Background(), []float32{1, 0, 0}, 5, nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
