package documents

import (
	"net/http"

	"codeberg.org/docchat/server/api/rest/pagination"
	"codeberg.org/docchat/server/internal/chunker"
	"codeberg.org/docchat/server/internal/errors"
	"codeberg.org/docchat/server/internal/logger"
	"codeberg.org/docchat/server/internal/rag"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// creates a handler that ingests an uploaded document
func IngestHandler(svc *rag.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IngestRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		pages := make([]chunker.Page, 0, len(req.Pages))

		for _, p := range req.Pages {
			pages = append(pages, chunker.Page{Number: p.Number, Text: p.Text})
		}

		doc, err := svc.IngestDocument(c.Request.Context(), req.Name, pages)
		if err != nil {
			logger.ErrorErr(err, "failed to ingest document", "name", req.Name)
			errors.FromDomain(c, err)
			return
		}

		c.JSON(http.StatusCreated, toResponse(doc))
	}
}

// creates a handler that returns one document's metadata and status
func GetHandler(svc *rag.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		doc, err := svc.GetDocument(c.Request.Context(), id)
		if err != nil {
			errors.FromDomain(c, err)
			return
		}

		c.JSON(http.StatusOK, toResponse(doc))
	}
}

// creates a handler that lists documents with pagination
func ListHandler(svc *rag.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := pagination.FromQuery(c, defaultPageSize, maxPageSize)

		docs, err := svc.ListDocuments(c.Request.Context())
		if err != nil {
			errors.InternalError(c, "failed to list documents", err)
			return
		}

		total := len(docs)
		start := min(params.Offset, total)
		end := min(start+params.Limit, total)

		responses := make([]DocumentResponse, 0, end-start)

		for i := start; i < end; i++ {
			responses = append(responses, toResponse(&docs[i]))
		}

		c.JSON(http.StatusOK, ListResponse{
			Documents: responses,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// creates a handler that deletes a document and its index entries
func DeleteHandler(svc *rag.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		if err := svc.DeleteDocument(c.Request.Context(), id); err != nil {
			errors.InternalError(c, "failed to delete document", err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
