package driven

import "context"

// Record is one entry in the vector collection.
type Record struct {
	// ID is the chunk identifier (collection key).
	ID string

	// Text is the stored chunk content.
	Text string

	// Embedding is the chunk vector.
	Embedding []float32

	// Metadata is the chunk metadata, including owner id and type.
	Metadata map[string]string
}

// Hit is one nearest-neighbour match.
type Hit struct {
	// ID is the matched chunk identifier.
	ID string

	// Text is the stored chunk content.
	Text string

	// Metadata is the stored chunk metadata.
	Metadata map[string]string

	// Distance is the similarity distance; lower means closer. The
	// metric is fixed for the lifetime of a collection.
	Distance float64
}

// VectorStore is a persistent collection of chunk records keyed by
// chunk id, supporting nearest-neighbour queries.
//
// The store must tolerate concurrent readers during a write. It does
// not serialise per-owner delete/upsert sequences; callers treat a
// delete-then-reinsert for one owner as a critical section.
type VectorStore interface {
	// Upsert inserts or replaces records by id.
	Upsert(ctx context.Context, records []Record) error

	// Delete removes records by id. Missing ids are not an error.
	Delete(ctx context.Context, ids []string) error

	// DeleteByOwner removes every record whose owner id matches.
	DeleteByOwner(ctx context.Context, ownerID string) error

	// Query returns the k nearest records to the embedding, ordered
	// by ascending distance with insertion-order tie-breaks.
	Query(ctx context.Context, embedding []float32, k int) ([]Hit, error)

	// CountByOwner returns the number of records for an owner.
	CountByOwner(ctx context.Context, ownerID string) (int, error)

	// Reset drops and recreates the collection with the same
	// embedding configuration. Destructive; used for manual recovery
	// from corruption or an embedding model change, never invoked
	// automatically.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}
