package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultCollection       = "documents"
	defaultEmbeddingDim     = 1536
	defaultTopK             = 3
	defaultMinChunkLength   = 10
	defaultPromptCharBudget = 8000
	defaultEmbedConcurrency = 4
	defaultEmbedRetries     = 2
	defaultEmbedTimeout     = 30 * time.Second
	defaultGenerateTimeout  = 120 * time.Second
	defaultOllamaURL        = "http://localhost:11434"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &Config{
		Environment:      envOrDefault("ENVIRONMENT", "development"),
		IndexBackend:     envOrDefault("INDEX_BACKEND", BackendMemory),
		StoreBackend:     envOrDefault("STORE_BACKEND", BackendMemory),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		QdrantURL:        os.Getenv("QDRANT_URL"),
		QdrantAPIKey:     os.Getenv("QDRANT_API_KEY"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OllamaURL:        envOrDefault("OLLAMA_URL", defaultOllamaURL),
		Collection:       envOrDefault("VECTOR_COLLECTION", defaultCollection),
		EmbeddingDim:     envInt("EMBEDDING_DIMENSION", defaultEmbeddingDim),
		TopK:             envInt("RETRIEVAL_TOP_K", defaultTopK),
		MinChunkLength:   envInt("MIN_CHUNK_LENGTH", defaultMinChunkLength),
		PromptCharBudget: envInt("PROMPT_CHAR_BUDGET", defaultPromptCharBudget),
		EmbedConcurrency: envInt("EMBED_CONCURRENCY", defaultEmbedConcurrency),
		EmbedRetries:     envInt("EMBED_RETRIES", defaultEmbedRetries),
		EmbedTimeout:     envSeconds("EMBED_TIMEOUT_SECONDS", defaultEmbedTimeout),
		GenerateTimeout:  envSeconds("GENERATE_TIMEOUT_SECONDS", defaultGenerateTimeout),
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if cfg.StoreBackend == BackendPostgres || cfg.IndexBackend == BackendPostgres {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for the postgres backend")
		}
	}

	if cfg.IndexBackend == BackendQdrant && cfg.QdrantURL == "" {
		return nil, fmt.Errorf("QDRANT_URL environment variable is required for the qdrant backend")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}

	return fallback
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			return time.Duration(val) * time.Second
		}
	}

	return fallback
}
