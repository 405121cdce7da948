package llm

import (
	"context"
	"errors"
)

// ErrEmbeddingsUnavailable is returned by embedders that have no model behind them.
var ErrEmbeddingsUnavailable = errors.New("embedding model unavailable")

// Embedder turns texts into dense vectors, one per input text and in input order.
// Implementations must be safe for concurrent use and deterministic for fixed input.
type Embedder interface {
	EmbedStrings(ctx context.Context, texts []string) ([][]float64, error)
}

// NopEmbedder is the null embedder. It always reports ErrEmbeddingsUnavailable.
type NopEmbedder struct{}

// EmbedStrings implements Embedder
func (NopEmbedder) EmbedStrings(context.Context, []string) ([][]float64, error) {
	return nil, ErrEmbeddingsUnavailable
}

var _ Embedder = (*GeminiClient)(nil)
