package ingest

import (
	"context"
	"fmt"

	"codeberg.org/docchat/server/internal/chunker"
	"codeberg.org/docchat/server/internal/docstore"
	"codeberg.org/docchat/server/internal/errors"
	"codeberg.org/docchat/server/internal/llm"
	"codeberg.org/docchat/server/internal/logger"
	"codeberg.org/docchat/server/internal/vectorindex"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

func NewCoordinator(store docstore.Store, index vectorindex.Index, embedder llm.Embedder, opts Options) *Coordinator {
	defaults := DefaultOptions()

	if opts.MinChunkLength <= 0 {
		opts.MinChunkLength = defaults.MinChunkLength
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = defaults.Concurrency
	}

	if opts.Retries < 0 {
		opts.Retries = 0
	}

	if opts.EmbedTimeout <= 0 {
		opts.EmbedTimeout = defaults.EmbedTimeout
	}

	return &Coordinator{
		store:    store,
		index:    index,
		embedder: embedder,
		locks:    newDocumentLocks(),
		opts:     opts,
	}
}

// AcquireRead takes the document's shared lock for the duration of a
// query, so a reset or re-ingestion cannot run concurrently with it.
// the returned func releases the lock.
func (c *Coordinator) AcquireRead(documentID string) func() {
	lock := c.locks.get(documentID)
	lock.RLock()

	return lock.RUnlock
}

// Ingest runs the full pipeline for one document and returns it with its
// final status. a single chunk's embedding failure does not abort the
// rest; the document is marked failed only when every attempted chunk
// failed or the store itself did. the status flips to indexed/failed only
// after all chunk attempts have completed.
func (c *Coordinator) Ingest(ctx context.Context, documentID string, pages []chunker.Page) (*docstore.Document, error) {
	lock := c.locks.get(documentID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := c.store.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}

	if err := c.store.UpdateStatus(ctx, documentID, docstore.StatusProcessing, 0, 0, ""); err != nil {
		return nil, fmt.Errorf("failed to mark document processing: %w", err)
	}

	chunks := chunker.ChunkPages(pages, chunker.Options{MinChunkLength: c.opts.MinChunkLength})

	logger.Info("ingestion started",
		"document_id", documentID,
		"pages", len(pages),
		"chunks", len(chunks),
	)

	// a document whose content was entirely filtered out is still
	// successfully indexed, just empty
	if len(chunks) == 0 {
		return c.finish(ctx, documentID, docstore.StatusIndexed, len(pages), 0, "")
	}

	// embed concurrently; the group is a bounded barrier, workers never
	// return errors because a failed chunk must not cancel its siblings
	vectors := make([][]float32, len(chunks))
	failures := make([]error, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)

	for i := range chunks {
		g.Go(func() error {
			vec, err := c.embedChunk(gctx, chunks[i].Text)
			if err != nil {
				logger.Warn("chunk embedding failed, continuing",
					"document_id", documentID,
					"page", chunks[i].Page,
					"error", err,
				)
				failures[i] = err

				return nil
			}

			vectors[i] = vec

			return nil
		})
	}

	_ = g.Wait() // workers never return errors

	var firstErr error
	embedded := 0

	for i := range chunks {
		if failures[i] == nil {
			embedded++
		} else if firstErr == nil {
			firstErr = failures[i]
		}
	}

	// total failure: the provider produced nothing for any chunk
	if embedded == 0 {
		return c.finish(ctx, documentID, docstore.StatusFailed, len(pages), 0,
			fmt.Sprintf("embedding failed for all %d chunks: %v", len(chunks), firstErr))
	}

	// insert rows before index entries, in page order: the store is the
	// source of truth a payload must resolve against, and sequential
	// inserts keep tie-break ordering reproducible across runs
	rows := make([]docstore.Chunk, 0, embedded)

	for i := range chunks {
		if failures[i] != nil {
			continue
		}

		rows = append(rows, docstore.Chunk{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			Page:       chunks[i].Page,
			Text:       chunks[i].Text,
		})
	}

	if err := c.store.InsertChunks(ctx, rows); err != nil {
		return c.finish(ctx, documentID, docstore.StatusFailed, len(pages), 0,
			fmt.Sprintf("failed to store chunks: %v", err))
	}

	indexed := 0
	row := 0

	for i := range chunks {
		if failures[i] != nil {
			continue
		}

		payload := vectorindex.Payload{
			DocumentID: documentID,
			ChunkID:    rows[row].ID,
			Page:       rows[row].Page,
		}

		if err := c.index.Insert(ctx, vectors[i], payload); err != nil {
			// a dimension mismatch here is a provider/config bug; surface
			// it through the document rather than dropping it silently
			if errors.IsKind(err, errors.KindDimensionMismatch) {
				return c.finish(ctx, documentID, docstore.StatusFailed, len(pages), indexed, err.Error())
			}

			logger.Warn("chunk index insert failed, continuing",
				"document_id", documentID,
				"chunk_id", payload.ChunkID,
				"error", err,
			)
		} else {
			indexed++
		}

		row++
	}

	if indexed == 0 {
		return c.finish(ctx, documentID, docstore.StatusFailed, len(pages), 0,
			"failed to index any chunk")
	}

	logger.Info("ingestion complete",
		"document_id", documentID,
		"pages", len(pages),
		"chunks_indexed", indexed,
		"chunks_failed", len(chunks)-indexed,
	)

	return c.finish(ctx, documentID, docstore.StatusIndexed, len(pages), indexed, "")
}

// Delete removes the document everywhere. it takes the exclusive lock, so
// it never runs concurrently with an in-flight ingestion or query against
// the same document, and post-delete searches return empty rather than
// stale payloads.
func (c *Coordinator) Delete(ctx context.Context, documentID string) error {
	lock := c.locks.get(documentID)
	lock.Lock()
	defer lock.Unlock()

	// index first: removing the chunk rows first would leave orphaned
	// index entries visible to a concurrent search
	if err := c.index.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete index entries: %w", err)
	}

	if err := c.store.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

// ResetAll drops every index entry and every stored document. callers are
// expected to stop accepting queries first; per-document locks cannot
// cover a global wipe.
func (c *Coordinator) ResetAll(ctx context.Context) error {
	if err := c.index.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset index: %w", err)
	}

	if err := c.store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}

	return nil
}

// a bounded retry loop per chunk: transient provider failures are retried,
// anything else is surfaced after the first attempt
func (c *Coordinator) embedChunk(ctx context.Context, text string) ([]float32, error) {
	var lastErr error

	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		embedCtx, cancel := context.WithTimeout(ctx, c.opts.EmbedTimeout)
		vec, err := c.embedder.GenerateEmbedding(embedCtx, text)
		cancel()

		if err == nil {
			return vec, nil
		}

		lastErr = err

		if !errors.Retryable(err) {
			break
		}
	}

	return nil, lastErr
}

func (c *Coordinator) finish(ctx context.Context, documentID string, status docstore.Status, pageCount, chunkCount int, errMsg string) (*docstore.Document, error) {
	if err := c.store.UpdateStatus(ctx, documentID, status, pageCount, chunkCount, errMsg); err != nil {
		return nil, fmt.Errorf("failed to update document status: %w", err)
	}

	return c.store.GetDocument(ctx, documentID)
}
