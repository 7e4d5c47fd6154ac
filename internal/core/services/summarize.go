package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
	"github.com/verdantlabs/lorebase/internal/logger"
)

// summariseSystemPrompt frames every summarisation request.
const summariseSystemPrompt = "You are a helpful assistant."

// Summarizer converts content blocks into embeddable text summaries via
// the language model. This is the only point where content type
// influences prompt construction.
type Summarizer struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewSummarizer creates a new block summarizer.
func NewSummarizer(llm driven.LLMService, prompts driven.PromptStore) *Summarizer {
	return &Summarizer{llm: llm, prompts: prompts}
}

// Summarize returns a textual summary of the block. Table and image
// blocks get kind-specific prompts; image bytes are base64-inlined.
// Generation runs at temperature 0 so repeated ingestion of the same
// content stays stable.
func (s *Summarizer) Summarize(ctx context.Context, block domain.Block) (string, error) {
	var promptName, content string
	switch block.Kind {
	case domain.BlockText:
		promptName = driven.PromptSummariseText
		content = block.Text
	case domain.BlockTable:
		promptName = driven.PromptSummariseTable
		content = block.Text
	case domain.BlockImage:
		promptName = driven.PromptSummariseImage
		content = base64.StdEncoding.EncodeToString(block.Data)
	default:
		return "", fmt.Errorf("%w: unknown block kind %d", domain.ErrInvalidInput, block.Kind)
	}

	template, err := s.prompts.Load(promptName)
	if err != nil {
		return "", fmt.Errorf("%w: load prompt %s: %v", domain.ErrSummarization, promptName, err)
	}

	logger.Debug("Summarising %s block (%d bytes)", block.Kind, len(content))

	messages := []driven.ChatMessage{
		{Role: "system", Content: summariseSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(template, content)},
	}
	reply, err := s.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: 0})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSummarization, err)
	}
	return reply, nil
}
