package documents

import (
	"codeberg.org/docchat/server/internal/rag"
	"github.com/gin-gonic/gin"
)

// registers document lifecycle routes
func RegisterRoutes(router *gin.RouterGroup, svc *rag.Service) {
	docs := router.Group("/documents")
	{
		docs.POST("", IngestHandler(svc))
		docs.GET("", ListHandler(svc))
		docs.GET("/:id", GetHandler(svc))
		docs.DELETE("/:id", DeleteHandler(svc))
	}
}
