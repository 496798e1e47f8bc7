// Package embedding turns group text into vectors for semantic search.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wtsplinks/internal/config"
)

// Embedder produces a vector for a piece of text. Model names the vector space so
// vectors from different models are never compared.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

var ErrEmptyEmbedding = errors.New("embedding provider returned no vector")

// New builds the embedder selected by cfg. It returns (nil, nil) when embeddings are disabled.
func New(ctx context.Context, cfg config.EmbeddingConfig) (Embedder, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is required for the openai embedding provider")
		}
		return NewOpenAIEmbedder(cfg.OpenAIKey, cfg.Model), nil
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, errors.New("GEMINI_API_KEY is required for the gemini embedding provider")
		}
		g, err := NewGeminiEmbedder(ctx, cfg.GeminiKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// GroupText is the text embedded for a group.
func GroupText(name, description, category string) string {
	parts := []string{strings.TrimSpace(name)}
	if c := strings.TrimSpace(category); c != "" {
		parts = append(parts, "Category: "+c)
	}
	if d := strings.TrimSpace(description); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, "\n")
}
