package retriever

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"codeberg.org/docchat/server/internal/docstore"
	"codeberg.org/docchat/server/internal/errors"
	"codeberg.org/docchat/server/internal/llm"
	"codeberg.org/docchat/server/internal/logger"
	"codeberg.org/docchat/server/internal/vectorindex"
)

// NewEngine creates a retrieval engine with auto-configuration from environment
func NewEngine(index vectorindex.Index, store docstore.Store, embedder llm.Embedder) *Engine {
	return NewEngineWithConfig(index, store, embedder, loadConfig())
}

// NewEngineWithConfig creates a retrieval engine with explicit configuration
func NewEngineWithConfig(index vectorindex.Index, store docstore.Store, embedder llm.Embedder, config Config) *Engine {
	if config.TopK <= 0 {
		config.TopK = defaultTopK
	}

	if config.EmbedTimeout <= 0 {
		config.EmbedTimeout = defaultEmbedTimeout
	}

	return &Engine{
		index:        index,
		store:        store,
		embedder:     embedder,
		topK:         config.TopK,
		embedTimeout: config.EmbedTimeout,
	}
}

// DefaultTopK returns the configured top-K for callers that don't set one
func (e *Engine) DefaultTopK() int {
	return e.topK
}

// Retrieve returns the topK most similar chunks of the scoped document for
// the query text, ordered by descending similarity (ties by insertion
// order). topK of zero returns an empty list; a negative topK means "use
// the configured default". a document with zero indexed chunks yields an
// empty result, not an error.
func (e *Engine) Retrieve(ctx context.Context, queryText, documentID string, topK int) ([]Retrieved, error) {
	// reject before any provider call
	if strings.TrimSpace(queryText) == "" {
		return nil, errors.New(errors.KindInvalidQuery, "query text is empty")
	}

	if topK < 0 {
		topK = e.topK
	}

	if topK == 0 {
		return []Retrieved{}, nil
	}

	// generate embedding for query
	embedCtx, cancel := context.WithTimeout(ctx, e.embedTimeout)
	defer cancel()

	queryVector, err := e.embedder.GenerateEmbedding(embedCtx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := e.index.Search(ctx, queryVector, topK, &vectorindex.Filter{DocumentID: documentID})
	if err != nil {
		return nil, fmt.Errorf("failed to execute similarity search: %w", err)
	}

	retrieved := make([]Retrieved, 0, len(results))

	for _, r := range results {
		chunk, err := e.store.GetChunk(ctx, r.Payload.ChunkID)

		if stderrors.Is(err, docstore.ErrChunkNotFound) {
			// stale entry; one corrupt entry must never fail the whole retrieval
			logger.Warn("skipping orphaned index entry",
				"chunk_id", r.Payload.ChunkID,
				"document_id", r.Payload.DocumentID,
				"kind", string(errors.KindOrphanedIndexEntry),
			)

			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to resolve chunk %s: %w", r.Payload.ChunkID, err)
		}

		retrieved = append(retrieved, Retrieved{
			ChunkID:    chunk.ID,
			DocumentID: chunk.DocumentID,
			Page:       chunk.Page,
			Text:       chunk.Text,
			Score:      r.Score,
		})
	}

	return retrieved, nil
}
