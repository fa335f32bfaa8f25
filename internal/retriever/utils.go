package retriever

import "time"

const (
	defaultTopK         = 3
	defaultEmbedTimeout = 30 * time.Second
)
