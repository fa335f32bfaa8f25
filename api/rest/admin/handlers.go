package admin

import (
	"net/http"
	"os"

	"codeberg.org/docchat/server/internal/errors"
	"codeberg.org/docchat/server/internal/logger"
	"codeberg.org/docchat/server/internal/rag"
	"github.com/gin-gonic/gin"
)

// rejects requests that don't carry the configured admin key. with no key
// configured the admin surface is disabled entirely.
func KeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := os.Getenv("ADMIN_API_KEY")

		if key == "" || c.GetHeader("X-Admin-Key") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "admin key required",
			})

			return
		}

		c.Next()
	}
}

// creates a handler that drops every document and index entry
func ResetHandler(svc *rag.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Reset(c.Request.Context()); err != nil {
			errors.InternalError(c, "failed to reset corpus", err)
			return
		}

		logger.Info("corpus reset", "ip", c.ClientIP())

		c.JSON(http.StatusOK, ResetResponse{Status: "reset"})
	}
}
