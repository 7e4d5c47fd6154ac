package domain

// RetrievedChunk is one similarity hit with its distance converted to a
// normalised relevance score.
type RetrievedChunk struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Text is the chunk content used for context assembly.
	Text string

	// Metadata is the stored chunk metadata.
	Metadata map[string]string

	// Distance is the store's similarity distance (lower = closer).
	Distance float64

	// Score is the normalised 0-100 relevance derived from Distance.
	Score float64
}

// RetrievalResult holds the outcome of one similarity query. It lives
// for a single question/answer cycle; only the deduplicated Sources are
// retained afterwards, for citation display.
type RetrievalResult struct {
	// Chunks are all hits ordered by ascending distance. Context
	// assembly uses every chunk, including several from one owner.
	Chunks []RetrievedChunk

	// Sources is the citation list: one record per owner, each
	// represented by its lowest-distance chunk, in rank order.
	Sources []SourceRecord
}

// SourceRecord is a deduplicated citation entry for one owner, shown
// when the user asks where an answer came from. The list is replaced
// wholesale on every answered question.
type SourceRecord struct {
	// OwnerID identifies the cited document or note.
	OwnerID string

	// Type discriminates the owner.
	Type OwnerType

	// Title is the owner's display title.
	Title string

	// Link is a viewable location: uploads path for documents, note
	// path for notes.
	Link string

	// Score is the relevance score of the owner's best chunk.
	Score float64
}

// NormalizeScore converts a store distance to a 0-100 relevance score.
// Distances at or below 0 map to 100; distances at or above 1 map to 0.
func NormalizeScore(distance float64) float64 {
	score := (1 - distance) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
