package vectorindex

import (
	"context"
	"fmt"
	"math"

	"codeberg.org/docchat/server/internal/errors"
)

// Payload identifies the chunk behind an index entry. every payload must
// resolve to a live chunk; an entry that doesn't is an orphan and a bug.
type Payload struct {
	DocumentID string
	ChunkID    string
	Page       int
}

// Result is one search hit: the entry's payload and its similarity score.
type Result struct {
	Payload Payload
	Score   float32
}

// Filter restricts search candidates by exact payload equality.
// a nil filter matches everything.
type Filter struct {
	DocumentID string
}

// Index is a nearest-neighbor structure over chunk embeddings. results are
// ordered by descending cosine similarity; ties are broken by insertion
// order, earliest entry first, so repeated searches are reproducible.
type Index interface {
	// stores a vector with its payload; fails with a dimension_mismatch
	// error if the vector length disagrees with the collection
	Insert(ctx context.Context, vector []float32, payload Payload) error

	// returns up to topK results; topK <= 0 yields an empty result
	Search(ctx context.Context, vector []float32, topK int, filter *Filter) ([]Result, error)

	// removes every entry belonging to the document
	DeleteDocument(ctx context.Context, documentID string) error

	// drops all entries; resetting an already-empty collection is not an error
	Reset(ctx context.Context) error

	// configured vector dimensionality of the collection
	Dimension() int
}

// CosineSimilarity computes dot(a,b) / (||a|| * ||b||). a zero-norm input
// yields 0, never a division error.
func CosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64

	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

func checkDimension(vector []float32, want int) error {
	if len(vector) != want {
		return errors.New(errors.KindDimensionMismatch,
			fmt.Sprintf("vector has %d dimensions, collection expects %d", len(vector), want))
	}

	return nil
}

func (f *Filter) matches(p Payload) bool {
	if f == nil {
		return true
	}

	return f.DocumentID == "" || f.DocumentID == p.DocumentID
}
