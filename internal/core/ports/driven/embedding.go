package driven

import "context"

// EmbeddingService converts text into a fixed-length numeric vector.
//
// The service is treated as an opaque external endpoint. Token budgets
// are enforced by the callers (ingestion pipeline and retriever) before
// the call, so implementations receive text already cut to size.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Local models behind an OpenAI-compatible endpoint
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the fixed embedding vector size. Every chunk
	// in a collection carries a vector of this length; changing the
	// model requires a vector store Reset and full re-ingestion.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
