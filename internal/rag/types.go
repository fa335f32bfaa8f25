package rag

import (
	"time"

	"codeberg.org/docchat/server/internal/docstore"
	"codeberg.org/docchat/server/internal/ingest"
	"codeberg.org/docchat/server/internal/llm"
	"codeberg.org/docchat/server/internal/prompt"
	"codeberg.org/docchat/server/internal/retriever"
)

// Service is the application facade: document ingestion on one side,
// grounded question answering on the other.
type Service struct {
	store     docstore.Store
	retriever *retriever.Engine
	assembler *prompt.Assembler
	generator llm.Generator
	coord     *ingest.Coordinator

	generateTimeout time.Duration
}

// QueryRequest asks a question against one indexed document. TopK of zero
// means "use the configured default".
type QueryRequest struct {
	DocumentID string        `json:"document_id"`
	Text       string        `json:"query"`
	TopK       int           `json:"top_k,omitempty"`
	History    []prompt.Turn `json:"history,omitempty"`
}

// Source is one chunk the answer was grounded on, with its similarity
// score. sources list exactly the chunks that made it into the prompt.
type Source struct {
	ChunkID    string  `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	Page       int     `json:"page"`
	Score      float32 `json:"score"`
	Text       string  `json:"text"`
}

// Answer carries the generated text, the chunks it was grounded on, and
// the exact prompt sent to the generator for callers that want to log it.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []Source `json:"sources"`
	Prompt  string   `json:"-"`
}
