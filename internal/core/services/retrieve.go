package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
	"github.com/verdantlabs/lorebase/internal/logger"
	"github.com/verdantlabs/lorebase/internal/token"
)

// DefaultTopK is the number of nearest chunks fetched per question.
const DefaultTopK = 5

// Retriever issues similarity queries against the vector store,
// normalises distances to scores and deduplicates citation sources by
// owner.
type Retriever struct {
	store       driven.VectorStore
	embedding   driven.EmbeddingService
	topK        int
	embedBudget int
}

// RetrieverOption configures the retriever.
type RetrieverOption func(*Retriever)

// WithTopK overrides the number of nearest chunks per query.
func WithTopK(k int) RetrieverOption {
	return func(r *Retriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithQuestionTokenBudget overrides the question embedding budget.
func WithQuestionTokenBudget(budget int) RetrieverOption {
	return func(r *Retriever) {
		if budget > 0 {
			r.embedBudget = budget
		}
	}
}

// NewRetriever creates a new retrieval ranker.
func NewRetriever(
	store driven.VectorStore,
	embedding driven.EmbeddingService,
	opts ...RetrieverOption,
) *Retriever {
	r := &Retriever{
		store:       store,
		embedding:   embedding,
		topK:        DefaultTopK,
		embedBudget: DefaultEmbedTokenBudget,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve embeds the question and returns the nearest chunks in rank
// order together with the deduplicated source list. Only the first
// (lowest-distance) chunk per owner contributes a SourceRecord, so the
// citation list is bounded to one entry per document or note.
func (r *Retriever) Retrieve(ctx context.Context, question string) (*domain.RetrievalResult, error) {
	logger.Section("Retrieval")

	question = token.Truncate(question, r.embedBudget)

	embedding, err := r.embedding.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embed question: %v", domain.ErrEmbedding, err)
	}

	hits, err := r.store.Query(ctx, embedding, r.topK)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}
	logger.Debug("Query returned %d hits", len(hits))

	// The store contract already orders by ascending distance; the
	// stable re-sort keeps insertion-order ties deterministic even
	// for adapters that only approximate it.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	result := &domain.RetrievalResult{}
	seenOwners := make(map[string]bool)
	for _, hit := range hits {
		chunk := domain.RetrievedChunk{
			ChunkID:  hit.ID,
			Text:     hit.Text,
			Metadata: hit.Metadata,
			Distance: hit.Distance,
			Score:    domain.NormalizeScore(hit.Distance),
		}
		result.Chunks = append(result.Chunks, chunk)

		ownerID := hit.Metadata[domain.MetaOwnerID]
		if ownerID == "" || seenOwners[ownerID] {
			continue
		}
		seenOwners[ownerID] = true
		result.Sources = append(result.Sources, sourceFromHit(ownerID, chunk))
	}

	logger.Info("Retrieved %d chunks from %d sources", len(result.Chunks), len(result.Sources))
	return result, nil
}

// sourceFromHit builds the citation record for an owner from its best
// chunk.
func sourceFromHit(ownerID string, chunk domain.RetrievedChunk) domain.SourceRecord {
	md := chunk.Metadata

	ownerType := domain.OwnerType(md[domain.MetaOwnerType])
	title := md[domain.MetaTitle]
	if title == "" {
		title = "Untitled"
	}

	var link string
	switch ownerType {
	case domain.OwnerDocument:
		link = "/uploads/" + md[domain.MetaFolder] + "/" + md[domain.MetaFilename]
	case domain.OwnerNote:
		noteID := md[domain.MetaNoteID]
		if noteID == "" {
			noteID = ownerID
		}
		link = "/notes/" + noteID
	}

	return domain.SourceRecord{
		OwnerID: ownerID,
		Type:    ownerType,
		Title:   title,
		Link:    link,
		Score:   chunk.Score,
	}
}
