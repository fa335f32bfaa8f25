package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"codeberg.org/docchat/server/internal/errors"
	"golang.org/x/time/rate"
)

const (
	defaultOllamaModel       = "phi3"
	defaultOllamaMaxTokens   = 1024
	defaultOllamaTemperature = 0.7
)

// shared HTTP client for Ollama API calls. generation against a local
// model can be slow, so the transport timeout is generous; callers bound
// individual requests through the context instead.
var ollamaHTTPClient = &http.Client{
	Timeout: 5 * time.Minute,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// rate limiter for Ollama calls; a local model serves one request well,
// a handful poorly
var ollamaRateLimiter = rate.NewLimiter(2, 2)

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

type OllamaConfig struct {
	BaseURL   string
	Model     string // e.g., "phi3", "mistral"
	MaxTokens int    // max tokens for response

	// 0.0 to 1.0; nil means the default. an explicit 0 is honored so
	// deterministic generation stays configurable
	Temperature *float32
}

type OllamaGenerator struct {
	config     OllamaConfig
	httpClient *http.Client
}

func NewOllamaGenerator(config OllamaConfig) *OllamaGenerator {
	if config.Model == "" {
		config.Model = defaultOllamaModel
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = defaultOllamaMaxTokens
	}

	if config.Temperature == nil {
		t := float32(defaultOllamaTemperature)
		config.Temperature = &t
	}

	return &OllamaGenerator{
		config:     config,
		httpClient: ollamaHTTPClient,
	}
}

func (g *OllamaGenerator) Model() string {
	return g.config.Model
}

// sends the assembled prompt to the local model and returns the answer text
func (g *OllamaGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaChatRequest{
		Model: g.config.Model,
		Messages: []ollamaMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
		Options: ollamaOptions{
			Temperature: *g.config.Temperature,
			NumPredict:  g.config.MaxTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.config.BaseURL+"/api/chat", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// rate limiting
	if err := ollamaRateLimiter.Wait(ctx); err != nil {
		return "", classifyProviderErr("generation request", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", classifyProviderErr("generation request", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", errors.New(errors.KindProviderUnavailable,
			fmt.Sprintf("generation API returned status %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return chatResp.Message.Content, nil
}
