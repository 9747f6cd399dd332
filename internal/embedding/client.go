package embedding

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks docsearch/internal/embedding Embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Embedder converts text to a fixed-dimension float vector. Implementations
// must always return vectors of the same length; values may vary across model
// versions.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Client is an Embedder backed by an OpenAI-compatible embeddings API.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	Dim     int // Expected vector size; every response is validated against it
	client  *http.Client
}

// NewClient creates a new embeddings client. dim is the dimension every
// returned vector must have.
func NewClient(baseURL, apiKey, model string, dim int) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Dim:     dim,
		client:  http.DefaultClient,
	}
}

// embeddingsRequest represents the request payload for the embeddings API.
type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// embeddingData represents a single embedding in the response.
type embeddingData struct {
	Embedding []float64 `json:"embedding"`
}

// embeddingsResponse represents the response from the embeddings API.
type embeddingsResponse struct {
	Data []embeddingData `json:"data"`
}

// EmbedText generates an embedding for the given text and validates its
// dimension. The core does not retry; rate-limit and timeout policy belongs
// to the caller.
func (c *Client) EmbedText(ctx context.Context, text string) ([]float32, error) {
	url := fmt.Sprintf("%s/v1/embeddings", c.BaseURL)

	payload := embeddingsRequest{
		Model: c.Model,
		Input: []string{text},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var embResp embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(embResp.Data) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(embResp.Data))
	}
	if len(embResp.Data[0].Embedding) != c.Dim {
		return nil, fmt.Errorf("embedding has size %d, expected %d", len(embResp.Data[0].Embedding), c.Dim)
	}

	vec := make([]float32, len(embResp.Data[0].Embedding))
	for i, v := range embResp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
