package ingest

import (
	"time"

	"codeberg.org/docchat/server/internal/docstore"
	"codeberg.org/docchat/server/internal/llm"
	"codeberg.org/docchat/server/internal/vectorindex"
)

// Coordinator runs the ingestion pipeline: chunk extracted pages, filter
// near-empty chunks, embed the survivors, and index them. at most one
// pipeline is active per document at a time.
type Coordinator struct {
	store    docstore.Store
	index    vectorindex.Index
	embedder llm.Embedder
	locks    *documentLocks
	opts     Options
}

type Options struct {
	MinChunkLength int
	Concurrency    int           // concurrent embedding calls per pipeline
	Retries        int           // extra attempts per chunk on retryable provider errors
	EmbedTimeout   time.Duration // deadline per embedding call
}

func DefaultOptions() Options {
	return Options{
		MinChunkLength: 10,
		Concurrency:    4,
		Retries:        2,
		EmbedTimeout:   30 * time.Second,
	}
}
