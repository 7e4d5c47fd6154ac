package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
	"github.com/verdantlabs/lorebase/internal/core/ports/driving"
	"github.com/verdantlabs/lorebase/internal/extractors"
	"github.com/verdantlabs/lorebase/internal/logger"
	"github.com/verdantlabs/lorebase/internal/token"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// DefaultEmbedTokenBudget bounds the text sent to the embedding
// endpoint. Chosen to sit below the model's 8192-token input limit.
const DefaultEmbedTokenBudget = 8100

// titleSystemPrompt frames title generation requests.
const titleSystemPrompt = "You are a creative assistant."

// IngestService composes extraction, summarisation, embedding and
// vector upsert into the ingestion pipeline.
type IngestService struct {
	extractors  *extractors.Registry
	summarizer  *Summarizer
	embedding   driven.EmbeddingService
	store       driven.VectorStore
	llm         driven.LLMService
	prompts     driven.PromptStore
	embedBudget int
}

// IngestOption configures the ingest service.
type IngestOption func(*IngestService)

// WithEmbedTokenBudget overrides the per-chunk embedding token budget.
func WithEmbedTokenBudget(budget int) IngestOption {
	return func(s *IngestService) {
		if budget > 0 {
			s.embedBudget = budget
		}
	}
}

// NewIngestService creates a new ingestion pipeline.
func NewIngestService(
	registry *extractors.Registry,
	summarizer *Summarizer,
	embedding driven.EmbeddingService,
	store driven.VectorStore,
	llm driven.LLMService,
	prompts driven.PromptStore,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		extractors:  registry,
		summarizer:  summarizer,
		embedding:   embedding,
		store:       store,
		llm:         llm,
		prompts:     prompts,
		embedBudget: DefaultEmbedTokenBudget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest turns the file into chunk records tagged with the owner.
//
// Prior chunks for the owner are deleted first so exactly one
// generation is queryable at any time. Chunks are upserted one by one;
// a failure partway leaves the chunks committed so far (ingestion is
// not transactional across chunks), which the caller may clean up with
// DeleteOwner.
func (s *IngestService) Ingest(
	ctx context.Context,
	path string,
	ownerID string,
	ownerType domain.OwnerType,
	metadata map[string]string,
) error {
	if ownerID == "" || !ownerType.Valid() {
		return fmt.Errorf("%w: owner %q type %q", domain.ErrInvalidInput, ownerID, ownerType)
	}

	logger.Section("Ingestion")
	logger.Info("Ingesting %s as %s %s", path, ownerType, ownerID)

	blocks, err := s.extractors.Extract(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIngestion, err)
	}

	return s.ingestBlocks(ctx, blocks, ownerID, ownerType, metadata)
}

// IngestText ingests literal text as a single chunk for the owner,
// following the same delete-then-insert discipline as Ingest.
func (s *IngestService) IngestText(
	ctx context.Context,
	text string,
	ownerID string,
	ownerType domain.OwnerType,
	metadata map[string]string,
) error {
	if ownerID == "" || !ownerType.Valid() {
		return fmt.Errorf("%w: owner %q type %q", domain.ErrInvalidInput, ownerID, ownerType)
	}
	return s.ingestBlocks(ctx, []domain.Block{domain.TextBlock(text)}, ownerID, ownerType, metadata)
}

// ingestBlocks runs the shared embed-and-upsert tail of the pipeline.
func (s *IngestService) ingestBlocks(
	ctx context.Context,
	blocks []domain.Block,
	ownerID string,
	ownerType domain.OwnerType,
	metadata map[string]string,
) error {
	// Drop the stale generation before inserting its replacement.
	if err := s.store.DeleteByOwner(ctx, ownerID); err != nil {
		return fmt.Errorf("%w: delete prior chunks: %w", domain.ErrIngestion, err)
	}

	inserted := 0
	for _, block := range blocks {
		text, err := s.blockText(ctx, block)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrIngestion, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if err := s.upsertChunk(ctx, text, ownerID, ownerType, metadata); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrIngestion, err)
		}
		inserted++
	}

	logger.Info("Ingested %d chunks for %s %s", inserted, ownerType, ownerID)
	return nil
}

// blockText resolves a block to embeddable text: raw text passes
// through, tables and images are summarised.
func (s *IngestService) blockText(ctx context.Context, block domain.Block) (string, error) {
	switch block.Kind {
	case domain.BlockText:
		return block.Text, nil
	case domain.BlockTable, domain.BlockImage:
		return s.summarizer.Summarize(ctx, block)
	default:
		return "", fmt.Errorf("%w: unknown block kind %d", domain.ErrInvalidInput, block.Kind)
	}
}

// upsertChunk truncates, embeds and stores one chunk.
func (s *IngestService) upsertChunk(
	ctx context.Context,
	text string,
	ownerID string,
	ownerType domain.OwnerType,
	metadata map[string]string,
) error {
	// The stored text matches what was embedded, so retrieval always
	// returns content the vector actually represents.
	text = token.Truncate(text, s.embedBudget)

	embedding, err := s.embedding.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmbedding, err)
	}

	chunk := domain.Chunk{
		ID:        uuid.New().String(),
		Text:      text,
		Embedding: embedding,
		OwnerID:   ownerID,
		OwnerType: ownerType,
		Metadata:  metadata,
	}
	if err := s.store.Upsert(ctx, []driven.Record{recordFromChunk(chunk)}); err != nil {
		return err
	}
	logger.Debug("Upserted chunk %s (%d tokens)", chunk.ID, token.Count(text))
	return nil
}

// recordFromChunk flattens a chunk into its stored representation,
// folding the owner reference into the record metadata.
func recordFromChunk(c domain.Chunk) driven.Record {
	merged := make(map[string]string, len(c.Metadata)+2)
	for k, v := range c.Metadata {
		merged[k] = v
	}
	merged[domain.MetaOwnerID] = c.OwnerID
	merged[domain.MetaOwnerType] = string(c.OwnerType)

	return driven.Record{
		ID:        c.ID,
		Text:      c.Text,
		Embedding: c.Embedding,
		Metadata:  merged,
	}
}

// DeleteOwner removes every chunk whose owner id matches.
func (s *IngestService) DeleteOwner(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("%w: empty owner id", domain.ErrInvalidInput)
	}
	return s.store.DeleteByOwner(ctx, ownerID)
}

// GenerateTitle produces a concise human-facing title from a short
// content prefix of the file. Runs at a mildly creative temperature;
// callers fall back to the original filename on error.
func (s *IngestService) GenerateTitle(ctx context.Context, path string) (string, error) {
	seed := s.extractors.TitleSeed(ctx, path)

	template, err := s.prompts.Load(driven.PromptTitle)
	if err != nil {
		return "", fmt.Errorf("load title prompt: %w", err)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: titleSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(template, seed)},
	}
	reply, err := s.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: 0.5})
	if err != nil {
		return "", fmt.Errorf("generate title: %w", err)
	}

	title := strings.Trim(strings.TrimSpace(reply), `"`)
	if title == "" {
		return "", fmt.Errorf("%w: model returned empty title", domain.ErrInvalidInput)
	}
	return title, nil
}
