package ollama

import (
	"context"
	"fmt"
)

// EmbeddingProvider wraps the Ollama client with a fixed model and vector
// dimension. A degraded embedding is reported as an error, never as a
// zero-filled vector.
type EmbeddingProvider struct {
	client    *Client
	modelName string
	dimension int
}

// NewEmbeddingProvider creates an embedding provider. Configuration problems
// (missing client or model, non-positive dimension) fail here, not per call.
func NewEmbeddingProvider(client *Client, modelName string, dimension int) (*EmbeddingProvider, error) {
	if client == nil {
		return nil, fmt.Errorf("ollama client is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("embedding model name is required")
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dimension)
	}

	return &EmbeddingProvider{
		client:    client,
		modelName: modelName,
		dimension: dimension,
	}, nil
}

// Embed generates an embedding for the given text and validates its shape
func (p *EmbeddingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	embedding, err := p.client.GetEmbedding(ctx, p.modelName, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(embedding) != p.dimension {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(embedding), p.dimension)
	}

	return embedding, nil
}

// Dimension returns the configured vector dimension
func (p *EmbeddingProvider) Dimension() int {
	return p.dimension
}
