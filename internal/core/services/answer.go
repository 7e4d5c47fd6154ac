package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
	"github.com/verdantlabs/lorebase/internal/core/ports/driving"
	"github.com/verdantlabs/lorebase/internal/logger"
	"github.com/verdantlabs/lorebase/internal/token"
)

// Ensure AnswerService implements the interface.
var _ driving.Answerer = (*AnswerService)(nil)

// DefaultContextTokenBudget bounds the assembled multi-chunk context.
// Independent of the per-chunk embedding budget: several chunks are
// concatenated here, so deployments may want this smaller.
const DefaultContextTokenBudget = 8100

// RefusalAnswer is returned for disallowed questions. No external call
// is made for these.
const RefusalAnswer = "I'm sorry, but I cannot answer that."

// NoInformationAnswer is returned when retrieval finds nothing, without
// invoking the language model.
const NoInformationAnswer = "I don't have any information about that in the knowledge base."

// AnswerService assembles retrieved context and generates grounded
// answers.
type AnswerService struct {
	retriever     *Retriever
	llm           driven.LLMService
	prompts       driven.PromptStore
	policy        *PolicyFilter
	sink          driven.AttributionSink
	contextBudget int
}

// AnswerOption configures the answer service.
type AnswerOption func(*AnswerService)

// WithContextTokenBudget overrides the assembled-context token budget.
func WithContextTokenBudget(budget int) AnswerOption {
	return func(s *AnswerService) {
		if budget > 0 {
			s.contextBudget = budget
		}
	}
}

// NewAnswerService creates a new answer generator. The sink receives
// the deduplicated source list for each answered question.
func NewAnswerService(
	retriever *Retriever,
	llm driven.LLMService,
	prompts driven.PromptStore,
	policy *PolicyFilter,
	sink driven.AttributionSink,
	opts ...AnswerOption,
) *AnswerService {
	s := &AnswerService{
		retriever:     retriever,
		llm:           llm,
		prompts:       prompts,
		policy:        policy,
		sink:          sink,
		contextBudget: DefaultContextTokenBudget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer returns the generated answer for the question.
func (s *AnswerService) Answer(ctx context.Context, question string) (string, error) {
	answer, _, err := s.answer(ctx, question)
	return answer, err
}

// AnswerWithContext additionally returns the assembled context block.
func (s *AnswerService) AnswerWithContext(ctx context.Context, question string) (string, string, error) {
	return s.answer(ctx, question)
}

func (s *AnswerService) answer(ctx context.Context, question string) (string, string, error) {
	logger.Section("Answer")

	// Policy check runs before any external call; refusals skip the
	// vector query entirely and leave the attribution record alone.
	if s.policy.Disallowed(question) {
		logger.Info("Question matches disallowed topic, refusing")
		return RefusalAnswer, "", nil
	}

	result, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", "", err
	}

	// Attribution is replaced wholesale per answered question, even
	// when nothing was retrieved, so "show sources" always reflects
	// the latest question.
	s.sink.Record(question, result.Sources)

	if len(result.Chunks) == 0 {
		logger.Info("No chunks retrieved, returning fixed answer")
		return NoInformationAnswer, "", nil
	}

	contextText := s.assembleContext(result)

	system, err := s.prompts.Load(driven.PromptAnswerSystem)
	if err != nil {
		return "", "", fmt.Errorf("load answer prompt: %w", err)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: fmt.Sprintf("Question: %s\n\nContext:\n%s\n\nAnswer:", question, contextText)},
	}
	reply, err := s.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: 0})
	if err != nil {
		return "", "", fmt.Errorf("generate answer: %w", err)
	}

	return strings.TrimSpace(reply), contextText, nil
}

// assembleContext concatenates chunk texts in rank order and enforces
// the global context budget.
func (s *AnswerService) assembleContext(result *domain.RetrievalResult) string {
	var sb strings.Builder
	for i, chunk := range result.Chunks {
		fmt.Fprintf(&sb, "Snippet %d:\n%s\n\n", i+1, chunk.Text)
	}
	return token.Truncate(sb.String(), s.contextBudget)
}
