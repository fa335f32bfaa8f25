package vectorindex

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PostgresIndex delegates nearest-neighbor search to Postgres with the
// pgvector extension. cosine distance ordering plus the serial id gives
// the same ordering and tie-break contract as the in-process scan.
type PostgresIndex struct {
	pool       *pgxpool.Pool
	collection string
	dimension  int
}

func NewPostgresIndex(ctx context.Context, pool *pgxpool.Pool, collection string, dimension int) (*PostgresIndex, error) {
	idx := &PostgresIndex{
		pool:       pool,
		collection: collection,
		dimension:  dimension,
	}

	// dimensionality is part of the column type, so it is fixed at setup
	if _, err := pool.Exec(ctx, fmt.Sprintf(createEmbeddingsTableQuery, dimension)); err != nil {
		return nil, fmt.Errorf("failed to create embeddings table: %w", err)
	}

	if _, err := pool.Exec(ctx, createEmbeddingsIndexQuery); err != nil {
		return nil, fmt.Errorf("failed to create embeddings index: %w", err)
	}

	return idx, nil
}

func (p *PostgresIndex) Dimension() int {
	return p.dimension
}

func (p *PostgresIndex) Insert(ctx context.Context, vector []float32, payload Payload) error {
	if err := checkDimension(vector, p.dimension); err != nil {
		return err
	}

	_, err := p.pool.Exec(ctx, insertEmbeddingQuery,
		p.collection,
		payload.DocumentID,
		payload.ChunkID,
		payload.Page,
		pgvector.NewVector(vector),
	)

	if err != nil {
		return fmt.Errorf("failed to insert embedding: %w", err)
	}

	return nil
}

func (p *PostgresIndex) Search(ctx context.Context, vector []float32, topK int, filter *Filter) ([]Result, error) {
	if err := checkDimension(vector, p.dimension); err != nil {
		return nil, err
	}

	if topK <= 0 {
		return []Result{}, nil
	}

	var (
		query string
		args  []any
	)

	if filter != nil && filter.DocumentID != "" {
		query = searchEmbeddingsScopedQuery
		args = []any{pgvector.NewVector(vector), p.collection, filter.DocumentID, topK}
	} else {
		query = searchEmbeddingsQuery
		args = []any{pgvector.NewVector(vector), p.collection, topK}
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	results := []Result{}

	for rows.Next() {
		var r Result

		if err := rows.Scan(&r.Payload.DocumentID, &r.Payload.ChunkID, &r.Payload.Page, &r.Score); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}

func (p *PostgresIndex) DeleteDocument(ctx context.Context, documentID string) error {
	if _, err := p.pool.Exec(ctx, deleteDocumentEmbeddingsQuery, p.collection, documentID); err != nil {
		return fmt.Errorf("failed to delete document embeddings: %w", err)
	}

	return nil
}

func (p *PostgresIndex) Reset(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, resetEmbeddingsQuery, p.collection); err != nil {
		return fmt.Errorf("failed to reset embeddings: %w", err)
	}

	return nil
}
