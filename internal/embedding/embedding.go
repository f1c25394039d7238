// Package embedding turns text into dense vectors via an OpenAI-compatible
// embeddings endpoint.
package embedding

import "context"

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
