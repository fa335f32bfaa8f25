package documents

import (
	"time"

	"codeberg.org/docchat/server/api/rest/pagination"
	"codeberg.org/docchat/server/internal/docstore"
)

// PageInput is one page of uploaded document text
type PageInput struct {
	Number int    `json:"number" binding:"required"`
	Text   string `json:"text"`
}

// IngestRequest represents the request body for document ingestion
type IngestRequest struct {
	Name  string      `json:"name" binding:"required"`
	Pages []PageInput `json:"pages" binding:"required"`
}

// DocumentResponse represents a document and its ingestion state
type DocumentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	PageCount  int       `json:"page_count"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
	Error      string    `json:"error,omitempty"`
}

// ListResponse wraps one page of the document listing
type ListResponse struct {
	Documents  []DocumentResponse `json:"documents"`
	Pagination pagination.Meta    `json:"pagination"`
}

func toResponse(doc *docstore.Document) DocumentResponse {
	return DocumentResponse{
		ID:         doc.ID,
		Name:       doc.Name,
		Status:     string(doc.Status),
		PageCount:  doc.PageCount,
		ChunkCount: doc.ChunkCount,
		CreatedAt:  doc.CreatedAt,
		Error:      doc.Error,
	}
}
