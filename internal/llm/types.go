package llm

import "context"

// combines embedding and text generation behind one handle
type LLM interface {
	Embedder
	Generator
}

// represents different model providers
type Provider string

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// generates text from an assembled prompt
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// holds configuration for LLM initialization
type Config struct {
	// embedder configuration
	EmbedderProvider Provider
	EmbedderAPIKey   string
	EmbedderModel    string // e.g., "text-embedding-3-small"

	// generator configuration
	GeneratorProvider Provider
	GeneratorModel    string // e.g., "phi3"
	OllamaURL         string

	// generator optional parameters. a nil temperature means the provider
	// default; an explicit 0 is passed through
	GeneratorMaxTokens   int
	GeneratorTemperature *float32
}
