package main

import (
	"codeberg.org/docchat/server/internal/config"
	"codeberg.org/docchat/server/internal/docstore"
	"codeberg.org/docchat/server/internal/llm"
	"codeberg.org/docchat/server/internal/rag"
	"codeberg.org/docchat/server/internal/vectorindex"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db     *pgxpool.Pool // nil unless a postgres backend is configured
	config *config.Config
	store  docstore.Store
	index  vectorindex.Index
	model  llm.LLM
	svc    *rag.Service
	router *gin.Engine
}
