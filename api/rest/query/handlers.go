package query

import (
	"net/http"

	"codeberg.org/docchat/server/internal/errors"
	"codeberg.org/docchat/server/internal/logger"
	"codeberg.org/docchat/server/internal/rag"
	"github.com/gin-gonic/gin"
)

// creates a handler that answers a question against one indexed document
func Handler(svc *rag.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !errors.IsValidUUID(req.DocumentID) {
			errors.NotFound(c, "document")
			return
		}

		answer, err := svc.Query(c.Request.Context(), rag.QueryRequest{
			DocumentID: req.DocumentID,
			Text:       req.Query,
			TopK:       req.TopK,
			History:    req.History,
		})

		if err != nil {
			if errors.Retryable(err) {
				logger.ErrorErr(err, "provider failure during query",
					"document_id", req.DocumentID,
				)
			}

			errors.FromDomain(c, err)

			return
		}

		c.JSON(http.StatusOK, Response{
			Answer:  answer.Text,
			Sources: answer.Sources,
		})
	}
}
