package retriever

import (
	"context"
	"testing"

	"codeberg.org/docchat/server/internal/docstore"
	"codeberg.org/docchat/server/internal/errors"
	"codeberg.org/docchat/server/internal/vectorindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed-vector embedder so retrieval tests are deterministic and need no
// external provider
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}

	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}

	return []float32{0, 0}, nil
}

func (f *fakeEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))

	for i, t := range texts {
		vec, err := f.GenerateEmbedding(ctx, t)
		if err != nil {
			return nil, err
		}

		out[i] = vec
	}

	return out, nil
}

type fixture struct {
	engine *Engine
	index  vectorindex.Index
	store  docstore.Store
}

func newFixture(t *testing.T, embedder *fakeEmbedder) *fixture {
	t.Helper()

	index := vectorindex.NewMemoryIndex(2)
	store := docstore.NewMemoryStore()
	engine := NewEngineWithConfig(index, store, embedder, Config{TopK: 3})

	return &fixture{engine: engine, index: index, store: store}
}

func (f *fixture) indexChunk(t *testing.T, c docstore.Chunk, vec []float32) {
	t.Helper()

	require.NoError(t, f.store.InsertChunks(context.Background(), []docstore.Chunk{c}))
	require.NoError(t, f.index.Insert(context.Background(), vec, vectorindex.Payload{
		DocumentID: c.DocumentID,
		ChunkID:    c.ID,
		Page:       c.Page,
	}))
}

func TestRetrieve_TwoPageScenario(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"What color is the sky?": {0.9, 0.1},
	}}
	f := newFixture(t, embedder)

	f.indexChunk(t, docstore.Chunk{ID: "c1", DocumentID: "doc-1", Page: 1, Text: "The sky is blue"}, []float32{1, 0})
	f.indexChunk(t, docstore.Chunk{ID: "c2", DocumentID: "doc-1", Page: 2, Text: "Paris is the capital of France"}, []float32{0, 1})

	results, err := f.engine.Retrieve(context.Background(), "What color is the sky?", "doc-1", 1)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Page)
	assert.Equal(t, "The sky is blue", results[0].Text)
}

func TestRetrieve_RejectsEmptyQuery(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{}}
	f := newFixture(t, embedder)

	for _, query := range []string{"", "   ", "\t\n "} {
		_, err := f.engine.Retrieve(context.Background(), query, "doc-1", 3)

		require.Error(t, err)
		assert.Equal(t, errors.KindInvalidQuery, errors.KindOf(err))
	}
}

func TestRetrieve_EmptyIndexIsNotAnError(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{"anything": {1, 0}}}
	f := newFixture(t, embedder)

	results, err := f.engine.Retrieve(context.Background(), "anything", "doc-1", 3)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieve_TopKZeroReturnsEmpty(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	f := newFixture(t, embedder)

	f.indexChunk(t, docstore.Chunk{ID: "c1", DocumentID: "doc-1", Page: 1, Text: "some indexed text"}, []float32{1, 0})

	results, err := f.engine.Retrieve(context.Background(), "q", "doc-1", 0)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieve_NegativeTopKUsesDefault(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	f := newFixture(t, embedder)

	for i := range 5 {
		f.indexChunk(t, docstore.Chunk{
			ID: string(rune('a' + i)), DocumentID: "doc-1", Page: i, Text: "chunk number text",
		}, []float32{1, float32(i)})
	}

	results, err := f.engine.Retrieve(context.Background(), "q", "doc-1", -1)

	require.NoError(t, err)
	assert.Len(t, results, 3) // configured default
}

func TestRetrieve_ScopedToDocument(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	f := newFixture(t, embedder)

	// doc-2's chunk is a perfect match but must never leak into doc-1's scope
	f.indexChunk(t, docstore.Chunk{ID: "c1", DocumentID: "doc-1", Page: 1, Text: "loosely related"}, []float32{0.1, 0.9})
	f.indexChunk(t, docstore.Chunk{ID: "c2", DocumentID: "doc-2", Page: 1, Text: "perfect match"}, []float32{1, 0})

	results, err := f.engine.Retrieve(context.Background(), "q", "doc-1", 3)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc-1", results[0].DocumentID)
}

func TestRetrieve_SkipsOrphanedEntries(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	f := newFixture(t, embedder)

	f.indexChunk(t, docstore.Chunk{ID: "c1", DocumentID: "doc-1", Page: 1, Text: "resolvable chunk"}, []float32{0.5, 0.5})

	// an index entry whose chunk was never stored: stale payload
	require.NoError(t, f.index.Insert(context.Background(), []float32{1, 0}, vectorindex.Payload{
		DocumentID: "doc-1",
		ChunkID:    "ghost",
		Page:       9,
	}))

	results, err := f.engine.Retrieve(context.Background(), "q", "doc-1", 3)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].ChunkID)
}

func TestRetrieve_ProviderErrorSurfaces(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New(errors.KindProviderUnavailable, "embedding provider down")}
	f := newFixture(t, embedder)

	_, err := f.engine.Retrieve(context.Background(), "a valid question", "doc-1", 3)

	require.Error(t, err)
	assert.Equal(t, errors.KindProviderUnavailable, errors.KindOf(err))
	assert.True(t, errors.Retryable(err))
}

func TestRetrieve_Deterministic(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 1}}}
	f := newFixture(t, embedder)

	// equal-similarity chunks: ordering must be stable across calls
	for i := range 4 {
		f.indexChunk(t, docstore.Chunk{
			ID: string(rune('a' + i)), DocumentID: "doc-1", Page: i, Text: "identical similarity",
		}, []float32{1, 1})
	}

	first, err := f.engine.Retrieve(context.Background(), "q", "doc-1", 4)
	require.NoError(t, err)

	for range 5 {
		again, err := f.engine.Retrieve(context.Background(), "q", "doc-1", 4)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// ties resolved by insertion order
	assert.Equal(t, "a", first[0].ChunkID)
	assert.Equal(t, "b", first[1].ChunkID)
}
