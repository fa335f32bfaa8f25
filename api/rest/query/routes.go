package query

import (
	"codeberg.org/docchat/server/internal/rag"
	"codeberg.org/docchat/server/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// registers the query route behind the per-client rate limit
func RegisterRoutes(router *gin.RouterGroup, svc *rag.Service) {
	router.POST("/query", ratelimit.Middleware(), Handler(svc))
}
