package docstore

const (
	createDocumentsTableQuery = `
		CREATE TABLE IF NOT EXISTS documents (
			id            text PRIMARY KEY,
			name          text NOT NULL,
			status        text NOT NULL,
			page_count    int  NOT NULL DEFAULT 0,
			chunk_count   int  NOT NULL DEFAULT 0,
			created_at    timestamptz NOT NULL DEFAULT now(),
			error_message text NOT NULL DEFAULT ''
		)
	`

	createChunksTableQuery = `
		CREATE TABLE IF NOT EXISTS chunks (
			id          text PRIMARY KEY,
			document_id text NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			page        int  NOT NULL,
			content     text NOT NULL
		)
	`

	insertDocumentQuery = `
		INSERT INTO documents (id, name, status, page_count, chunk_count, created_at, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	getDocumentQuery = `
		SELECT id, name, status, page_count, chunk_count, created_at, error_message
		FROM documents
		WHERE id = $1
	`

	listDocumentsQuery = `
		SELECT id, name, status, page_count, chunk_count, created_at, error_message
		FROM documents
		ORDER BY created_at DESC
	`

	updateDocumentStatusQuery = `
		UPDATE documents
		SET status = $2, page_count = $3, chunk_count = $4, error_message = $5
		WHERE id = $1
	`

	insertChunkQuery = `
		INSERT INTO chunks (id, document_id, page, content)
		VALUES ($1, $2, $3, $4)
	`

	getChunkQuery = `
		SELECT id, document_id, page, content
		FROM chunks
		WHERE id = $1
	`

	deleteDocumentQuery = `
		DELETE FROM documents
		WHERE id = $1
	`

	resetChunksQuery = `
		DELETE FROM chunks
	`

	resetDocumentsQuery = `
		DELETE FROM documents
	`
)
