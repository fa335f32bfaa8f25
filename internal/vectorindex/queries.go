package vectorindex

const (
	// id is a bigserial, so ordering by it reproduces insertion order for
	// the similarity tie-break
	createEmbeddingsTableQuery = `
		CREATE TABLE IF NOT EXISTS chunk_embeddings (
			id          bigserial PRIMARY KEY,
			collection  text NOT NULL,
			document_id text NOT NULL,
			chunk_id    text NOT NULL,
			page        int  NOT NULL,
			embedding   vector(%d) NOT NULL
		)
	`

	createEmbeddingsIndexQuery = `
		CREATE INDEX IF NOT EXISTS chunk_embeddings_collection_document_idx
		ON chunk_embeddings (collection, document_id)
	`

	insertEmbeddingQuery = `
		INSERT INTO chunk_embeddings (collection, document_id, chunk_id, page, embedding)
		VALUES ($1, $2, $3, $4, $5)
	`

	searchEmbeddingsQuery = `
		SELECT
			document_id,
			chunk_id,
			page,
			1 - (embedding <=> $1) AS similarity
		FROM chunk_embeddings
		WHERE collection = $2
		ORDER BY embedding <=> $1 ASC, id ASC
		LIMIT $3
	`

	searchEmbeddingsScopedQuery = `
		SELECT
			document_id,
			chunk_id,
			page,
			1 - (embedding <=> $1) AS similarity
		FROM chunk_embeddings
		WHERE collection = $2 AND document_id = $3
		ORDER BY embedding <=> $1 ASC, id ASC
		LIMIT $4
	`

	deleteDocumentEmbeddingsQuery = `
		DELETE FROM chunk_embeddings
		WHERE collection = $1 AND document_id = $2
	`

	resetEmbeddingsQuery = `
		DELETE FROM chunk_embeddings
		WHERE collection = $1
	`
)
