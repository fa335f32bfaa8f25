package docstore

import "time"

// Status is the ingestion state of a document.
// transitions: uploaded -> processing -> indexed | failed
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusIndexed    Status = "indexed"
	StatusFailed     Status = "failed"
)

type Document struct {
	ID         string
	Name       string
	Status     Status
	PageCount  int
	ChunkCount int
	CreatedAt  time.Time
	Error      string // captured failure message, set only with StatusFailed
}

// Chunk belongs to exactly one document; no chunk survives its document's
// deletion.
type Chunk struct {
	ID         string
	DocumentID string
	Page       int
	Text       string
}
