package main

import (
	"codeberg.org/docchat/server/api/rest/admin"
	"codeberg.org/docchat/server/api/rest/documents"
	"codeberg.org/docchat/server/api/rest/health"
	"codeberg.org/docchat/server/api/rest/query"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		documents.RegisterRoutes(v1, server.svc)
		query.RegisterRoutes(v1, server.svc)
		admin.RegisterRoutes(v1, server.svc)
	}
}
