package retriever

import (
	"time"

	"codeberg.org/docchat/server/internal/docstore"
	"codeberg.org/docchat/server/internal/llm"
	"codeberg.org/docchat/server/internal/vectorindex"
)

// Engine turns a query into an embedding, finds the top-K most similar
// chunks of the scoped document, and resolves them back to their content.
type Engine struct {
	index        vectorindex.Index
	store        docstore.Store
	embedder     llm.Embedder
	topK         int
	embedTimeout time.Duration
}

// Retrieved is one ranked context chunk, ready for prompt assembly.
type Retrieved struct {
	ChunkID    string
	DocumentID string
	Page       int
	Text       string
	Score      float32
}

// Config tunes retrieval behavior. TopK directly trades prompt length for
// recall, so it is configuration, never hard-coded.
type Config struct {
	TopK         int
	EmbedTimeout time.Duration
}
