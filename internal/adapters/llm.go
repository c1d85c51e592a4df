package adapters

import (
	"context"

	"github.com/iamwavecut/guessbot/internal/adapters/llm"
)

// Embedder turns a word into its embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator renders an illustration for a text prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (llm.Image, error)
}
