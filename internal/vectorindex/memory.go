package vectorindex

import (
	"context"
	"sort"
	"sync"
)

// MemoryIndex is a brute-force in-process index: a linear scan over all
// entries of the scoped document, computing cosine similarity per candidate.
// correct but O(n) per search; fine for a single document's chunks.
type MemoryIndex struct {
	mu        sync.RWMutex
	dimension int
	nextSeq   uint64
	entries   []memoryEntry
}

type memoryEntry struct {
	vector  []float32
	payload Payload
	seq     uint64
}

func NewMemoryIndex(dimension int) *MemoryIndex {
	return &MemoryIndex{dimension: dimension}
}

func (m *MemoryIndex) Dimension() int {
	return m.dimension
}

func (m *MemoryIndex) Insert(_ context.Context, vector []float32, payload Payload) error {
	if err := checkDimension(vector, m.dimension); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// copy: callers may reuse the slice
	vec := make([]float32, len(vector))
	copy(vec, vector)

	m.entries = append(m.entries, memoryEntry{
		vector:  vec,
		payload: payload,
		seq:     m.nextSeq,
	})
	m.nextSeq++

	return nil
}

func (m *MemoryIndex) Search(_ context.Context, vector []float32, topK int, filter *Filter) ([]Result, error) {
	if err := checkDimension(vector, m.dimension); err != nil {
		return nil, err
	}

	if topK <= 0 {
		return []Result{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	type scored struct {
		result Result
		seq    uint64
	}

	var candidates []scored

	for _, e := range m.entries {
		if !filter.matches(e.payload) {
			continue
		}

		candidates = append(candidates, scored{
			result: Result{Payload: e.payload, Score: CosineSimilarity(vector, e.vector)},
			seq:    e.seq,
		})
	}

	// descending similarity; ties go to the earliest-inserted entry
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].result.Score != candidates[j].result.Score {
			return candidates[i].result.Score > candidates[j].result.Score
		}

		return candidates[i].seq < candidates[j].seq
	})

	if topK > len(candidates) {
		topK = len(candidates)
	}

	results := make([]Result, 0, topK)
	for _, c := range candidates[:topK] {
		results = append(results, c.result)
	}

	return results, nil
}

func (m *MemoryIndex) DeleteDocument(_ context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]

	for _, e := range m.entries {
		if e.payload.DocumentID != documentID {
			kept = append(kept, e)
		}
	}

	m.entries = kept

	return nil
}

func (m *MemoryIndex) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil

	return nil
}
