package config

import "time"

// backend selectors for the vector index and document store
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendQdrant   = "qdrant"
)

type Config struct {
	Environment string

	// storage backends
	IndexBackend string // memory | postgres | qdrant
	StoreBackend string // memory | postgres
	DatabaseURL  string // required for postgres backends
	QdrantURL    string // required for the qdrant index backend
	QdrantAPIKey string

	// providers
	OpenAIKey string
	OllamaURL string

	// vector collection
	Collection   string
	EmbeddingDim int

	// retrieval and prompt tuning
	TopK             int
	MinChunkLength   int
	PromptCharBudget int

	// ingestion
	EmbedConcurrency int
	EmbedRetries     int

	// provider call deadlines
	EmbedTimeout    time.Duration
	GenerateTimeout time.Duration
}

type Flags struct {
	Path  string
	Clear bool
}
