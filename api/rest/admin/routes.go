package admin

import (
	"codeberg.org/docchat/server/internal/rag"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, svc *rag.Service) {
	admin := router.Group("/admin")
	admin.Use(KeyMiddleware())

	admin.POST("/reset", ResetHandler(svc))
}
