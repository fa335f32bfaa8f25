package docstore

import (
	"context"
	stderrors "errors"
)

// returned by GetChunk when an index payload no longer resolves to a live
// chunk; the retriever treats it as an orphaned entry and skips it
var ErrChunkNotFound = stderrors.New("chunk not found")

// Store holds ingested documents' metadata and raw chunk text. documents
// are created on upload, mutated only by the ingestion pipeline, and
// immutable once indexed or failed except for deletion.
type Store interface {
	CreateDocument(ctx context.Context, doc Document) error

	// returns a document_not_found error when the id is unknown
	GetDocument(ctx context.Context, id string) (*Document, error)

	ListDocuments(ctx context.Context) ([]Document, error)

	// advances the ingestion status and records counts; errMsg is only
	// meaningful with StatusFailed
	UpdateStatus(ctx context.Context, id string, status Status, pageCount, chunkCount int, errMsg string) error

	InsertChunks(ctx context.Context, chunks []Chunk) error

	// resolves an index payload back to its chunk content; returns
	// ErrChunkNotFound for unknown ids
	GetChunk(ctx context.Context, chunkID string) (*Chunk, error)

	// removes the document and all its chunks; deleting an unknown
	// document is not an error
	DeleteDocument(ctx context.Context, id string) error

	// drops all documents and chunks
	Reset(ctx context.Context) error
}
