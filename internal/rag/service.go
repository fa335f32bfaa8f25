package rag

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/docchat/server/internal/chunker"
	"codeberg.org/docchat/server/internal/config"
	"codeberg.org/docchat/server/internal/docstore"
	"codeberg.org/docchat/server/internal/errors"
	"codeberg.org/docchat/server/internal/ingest"
	"codeberg.org/docchat/server/internal/llm"
	"codeberg.org/docchat/server/internal/logger"
	"codeberg.org/docchat/server/internal/prompt"
	"codeberg.org/docchat/server/internal/retriever"
	"codeberg.org/docchat/server/internal/vectorindex"
	"github.com/google/uuid"
)

const defaultGenerateTimeout = 120 * time.Second

// NewService wires the retrieval engine, prompt assembler and ingestion
// coordinator around the given backends.
func NewService(store docstore.Store, index vectorindex.Index, model llm.LLM, cfg config.Config) *Service {
	generateTimeout := cfg.GenerateTimeout
	if generateTimeout <= 0 {
		generateTimeout = defaultGenerateTimeout
	}

	return &Service{
		store: store,
		retriever: retriever.NewEngineWithConfig(index, store, model, retriever.Config{
			TopK:         cfg.TopK,
			EmbedTimeout: cfg.EmbedTimeout,
		}),
		assembler: prompt.NewAssembler(cfg.PromptCharBudget),
		generator: model,
		coord: ingest.NewCoordinator(store, index, model, ingest.Options{
			MinChunkLength: cfg.MinChunkLength,
			Concurrency:    cfg.EmbedConcurrency,
			Retries:        cfg.EmbedRetries,
			EmbedTimeout:   cfg.EmbedTimeout,
		}),
		generateTimeout: generateTimeout,
	}
}

// Upload registers a new document in the uploaded state. indexing happens
// separately via Ingest.
func (s *Service) Upload(ctx context.Context, name string) (*docstore.Document, error) {
	doc := docstore.Document{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    docstore.StatusUploaded,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return &doc, nil
}

// Ingest chunks, embeds and indexes the document's pages, returning it
// with its final status.
func (s *Service) Ingest(ctx context.Context, documentID string, pages []chunker.Page) (*docstore.Document, error) {
	return s.coord.Ingest(ctx, documentID, pages)
}

// IngestDocument is Upload followed by Ingest in one call.
func (s *Service) IngestDocument(ctx context.Context, name string, pages []chunker.Page) (*docstore.Document, error) {
	doc, err := s.Upload(ctx, name)
	if err != nil {
		return nil, err
	}

	return s.Ingest(ctx, doc.ID, pages)
}

func (s *Service) GetDocument(ctx context.Context, id string) (*docstore.Document, error) {
	return s.store.GetDocument(ctx, id)
}

func (s *Service) ListDocuments(ctx context.Context) ([]docstore.Document, error) {
	return s.store.ListDocuments(ctx)
}

func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	return s.coord.Delete(ctx, id)
}

// Reset wipes every document and index entry.
func (s *Service) Reset(ctx context.Context) error {
	return s.coord.ResetAll(ctx)
}

// Query answers a question grounded in one indexed document. the document
// must have finished indexing; queries against uploaded, processing or
// failed documents are rejected rather than silently answered from an
// empty index. TopK <= 0 falls back to the configured default.
func (s *Service) Query(ctx context.Context, req QueryRequest) (*Answer, error) {
	release := s.coord.AcquireRead(req.DocumentID)
	defer release()

	doc, err := s.store.GetDocument(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	if doc.Status != docstore.StatusIndexed {
		return nil, errors.New(errors.KindDocumentNotIndexed, notIndexedMessage(doc))
	}

	topK := req.TopK
	if topK <= 0 {
		topK = -1 // configured default
	}

	retrieved, err := s.retriever.Retrieve(ctx, req.Text, req.DocumentID, topK)
	if err != nil {
		return nil, err
	}

	result := s.assembler.Assemble(retrieved, req.Text, req.History)

	genCtx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	text, err := s.generator.GenerateText(genCtx, result.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	logger.Info("query answered",
		"document_id", req.DocumentID,
		"chunks_used", len(result.Used),
		"prompt_chars", len(result.Prompt),
	)

	sources := make([]Source, 0, len(result.Used))

	for _, r := range result.Used {
		sources = append(sources, Source{
			ChunkID:    r.ChunkID,
			DocumentID: r.DocumentID,
			Page:       r.Page,
			Score:      r.Score,
			Text:       r.Text,
		})
	}

	return &Answer{Text: text, Sources: sources, Prompt: result.Prompt}, nil
}

func notIndexedMessage(doc *docstore.Document) string {
	switch doc.Status {
	case docstore.StatusProcessing:
		return "document is still being indexed"
	case docstore.StatusFailed:
		return fmt.Sprintf("document indexing failed: %s", doc.Error)
	default:
		return "document has not been indexed yet"
	}
}
