package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"codeberg.org/docchat/server/internal/errors"
)

// MemoryStore keeps documents and chunks in process memory. used by tests
// and by the single-node in-memory deployment mode.
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string]Document
	chunks    map[string]Chunk
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[string]Document),
		chunks:    make(map[string]Chunk),
	}
}

func (m *MemoryStore) CreateDocument(_ context.Context, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[doc.ID]; exists {
		return fmt.Errorf("document %s already exists", doc.ID)
	}

	m.documents[doc.ID] = doc

	return nil
}

func (m *MemoryStore) GetDocument(_ context.Context, id string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.documents[id]
	if !ok {
		return nil, errors.New(errors.KindDocumentNotFound, fmt.Sprintf("document %s not found", id))
	}

	return &doc, nil
}

func (m *MemoryStore) ListDocuments(_ context.Context) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}

	// newest first, stable so listings can be paginated
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}

		return docs[i].ID < docs[j].ID
	})

	return docs, nil
}

func (m *MemoryStore) UpdateStatus(_ context.Context, id string, status Status, pageCount, chunkCount int, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.documents[id]
	if !ok {
		return errors.New(errors.KindDocumentNotFound, fmt.Sprintf("document %s not found", id))
	}

	doc.Status = status
	doc.PageCount = pageCount
	doc.ChunkCount = chunkCount
	doc.Error = errMsg
	m.documents[id] = doc

	return nil
}

func (m *MemoryStore) InsertChunks(_ context.Context, chunks []Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range chunks {
		m.chunks[c.ID] = c
	}

	return nil
}

func (m *MemoryStore) GetChunk(_ context.Context, chunkID string) (*Chunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.chunks[chunkID]
	if !ok {
		return nil, ErrChunkNotFound
	}

	return &c, nil
}

func (m *MemoryStore) DeleteDocument(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.documents, id)

	for chunkID, c := range m.chunks {
		if c.DocumentID == id {
			delete(m.chunks, chunkID)
		}
	}

	return nil
}

func (m *MemoryStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents = make(map[string]Document)
	m.chunks = make(map[string]Chunk)

	return nil
}
