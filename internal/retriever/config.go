package retriever

import (
	"os"
	"strconv"
	"time"
)

// loadConfig loads retrieval configuration from environment variables
func loadConfig() Config {
	topK := defaultTopK
	if topKStr := os.Getenv("RETRIEVAL_TOP_K"); topKStr != "" {
		if val, err := strconv.Atoi(topKStr); err == nil && val > 0 {
			topK = val
		}
	}

	embedTimeout := defaultEmbedTimeout
	if timeoutStr := os.Getenv("EMBED_TIMEOUT_SECONDS"); timeoutStr != "" {
		if val, err := strconv.Atoi(timeoutStr); err == nil && val > 0 {
			embedTimeout = time.Duration(val) * time.Second
		}
	}

	return Config{TopK: topK, EmbedTimeout: embedTimeout}
}
