package docstore

import (
	"context"
	stderrors "errors"
	"fmt"

	"codeberg.org/docchat/server/internal/errors"
	"codeberg.org/docchat/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists documents and chunks in Postgres. chunks cascade
// on document deletion at the schema level.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, createDocumentsTableQuery); err != nil {
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	if _, err := pool.Exec(ctx, createChunksTableQuery); err != nil {
		return nil, fmt.Errorf("failed to create chunks table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) CreateDocument(ctx context.Context, doc Document) error {
	_, err := s.pool.Exec(ctx, insertDocumentQuery,
		doc.ID,
		doc.Name,
		string(doc.Status),
		doc.PageCount,
		doc.ChunkCount,
		doc.CreatedAt,
		doc.Error,
	)

	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetDocument(ctx context.Context, id string) (*Document, error) {
	var doc Document
	var status string

	err := s.pool.QueryRow(ctx, getDocumentQuery, id).Scan(
		&doc.ID,
		&doc.Name,
		&status,
		&doc.PageCount,
		&doc.ChunkCount,
		&doc.CreatedAt,
		&doc.Error,
	)

	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New(errors.KindDocumentNotFound, fmt.Sprintf("document %s not found", id))
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	doc.Status = Status(status)

	return &doc, nil
}

func (s *PostgresStore) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.pool.Query(ctx, listDocumentsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document

	for rows.Next() {
		var doc Document
		var status string

		err := rows.Scan(
			&doc.ID,
			&doc.Name,
			&status,
			&doc.PageCount,
			&doc.ChunkCount,
			&doc.CreatedAt,
			&doc.Error,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		doc.Status = Status(status)
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return docs, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status Status, pageCount, chunkCount int, errMsg string) error {
	tag, err := s.pool.Exec(ctx, updateDocumentStatusQuery, id, string(status), pageCount, chunkCount, errMsg)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return errors.New(errors.KindDocumentNotFound, fmt.Sprintf("document %s not found", id))
	}

	return nil
}

// inserts multiple chunks in a single transaction
func (s *PostgresStore) InsertChunks(ctx context.Context, chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !stderrors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}

	for _, c := range chunks {
		batch.Queue(insertChunkQuery, c.ID, c.DocumentID, c.Page, c.Text)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range len(chunks) {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetChunk(ctx context.Context, chunkID string) (*Chunk, error) {
	var c Chunk

	err := s.pool.QueryRow(ctx, getChunkQuery, chunkID).Scan(&c.ID, &c.DocumentID, &c.Page, &c.Text)

	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, ErrChunkNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get chunk: %w", err)
	}

	return &c, nil
}

func (s *PostgresStore) DeleteDocument(ctx context.Context, id string) error {
	// chunks cascade via the foreign key
	if _, err := s.pool.Exec(ctx, deleteDocumentQuery, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, resetChunksQuery); err != nil {
		return fmt.Errorf("failed to reset chunks: %w", err)
	}

	if _, err := s.pool.Exec(ctx, resetDocumentsQuery); err != nil {
		return fmt.Errorf("failed to reset documents: %w", err)
	}

	return nil
}
