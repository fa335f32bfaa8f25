package query

import (
	"codeberg.org/docchat/server/internal/prompt"
	"codeberg.org/docchat/server/internal/rag"
)

// Request represents the request body for a grounded query
type Request struct {
	DocumentID string        `json:"document_id" binding:"required"`
	Query      string        `json:"query" binding:"required"`
	TopK       int           `json:"top_k"`
	History    []prompt.Turn `json:"history"`
}

// Response represents the generated answer and its sources
type Response struct {
	Answer  string       `json:"answer"`
	Sources []rag.Source `json:"sources"`
}
