package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/lorebase/internal/adapters/driven/vectorstore/memory"
	"github.com/verdantlabs/lorebase/internal/token"
)

func newAnswerFixture(store *memory.Store, opts ...AnswerOption) (*AnswerService, *mockEmbedding, *mockLLM, *mockSink) {
	embedding := newMockEmbedding()
	llm := &mockLLM{reply: "Grounded answer."}
	sink := &mockSink{}
	svc := NewAnswerService(
		NewRetriever(store, embedding),
		llm,
		&mockPrompts{},
		NewPolicyFilter(nil),
		sink,
		opts...,
	)
	return svc, embedding, llm, sink
}

func TestAnswerRefusesDisallowedQuestion(t *testing.T) {
	svc, embedding, llm, sink := newAnswerFixture(memory.New())

	answer, err := svc.Answer(context.Background(), "what is the CEO salary?")
	require.NoError(t, err)
	assert.Equal(t, RefusalAnswer, answer)

	// Refusal happens before any external call and leaves the
	// attribution record untouched.
	assert.Equal(t, 0, embedding.calls)
	assert.Equal(t, 0, llm.calls)
	assert.Equal(t, 0, sink.recordCalls)
}

func TestAnswerEmptyRetrieval(t *testing.T) {
	svc, embedding, llm, sink := newAnswerFixture(memory.New())

	answer, err := svc.Answer(context.Background(), "something nobody wrote about")
	require.NoError(t, err)
	assert.Equal(t, NoInformationAnswer, answer)

	assert.Equal(t, 1, embedding.calls)
	assert.Equal(t, 0, llm.calls)

	// The attribution is still replaced: an answered question with no
	// sources records an empty list.
	assert.Equal(t, 1, sink.recordCalls)
	assert.Empty(t, sink.lastSources)
}

func TestAnswerGroundedPath(t *testing.T) {
	store := memory.New()
	seedStore(t, store,
		docRecord("c1", "doc-a", "Alpha", 0.9),
		docRecord("c2", "doc-b", "Beta", 0.8),
	)
	svc, _, llm, sink := newAnswerFixture(store)
	llm.reply = "  Alpha is the project codename.\n"

	answer, contextText, err := svc.AnswerWithContext(context.Background(), "what is alpha?")
	require.NoError(t, err)
	assert.Equal(t, "Alpha is the project codename.", answer)

	assert.Contains(t, contextText, "Snippet 1:\ncontent of c1")
	assert.Contains(t, contextText, "Snippet 2:\ncontent of c2")

	require.Len(t, llm.lastMessages, 2)
	assert.Equal(t, "system", llm.lastMessages[0].Role)
	assert.True(t, strings.HasPrefix(llm.lastMessages[1].Content, "Question: what is alpha?"))
	assert.Contains(t, llm.lastMessages[1].Content, contextText)
	assert.Equal(t, 0.0, llm.lastOpts.Temperature)

	assert.Equal(t, "what is alpha?", sink.lastQuestion)
	require.Len(t, sink.lastSources, 2)
	assert.Equal(t, "doc-a", sink.lastSources[0].OwnerID)
}

func TestAnswerContextBudget(t *testing.T) {
	store := memory.New()
	seedStore(t, store, docRecord("c1", "doc-a", "Alpha", 0.9))
	svc, _, _, _ := newAnswerFixture(store, WithContextTokenBudget(4))

	_, contextText, err := svc.AnswerWithContext(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, 4, token.Count(contextText))
}

func TestAnswerAttributionSurvivesRefusal(t *testing.T) {
	store := memory.New()
	seedStore(t, store, docRecord("c1", "doc-a", "Alpha", 0.9))
	svc, _, _, sink := newAnswerFixture(store)

	_, err := svc.Answer(context.Background(), "what is alpha?")
	require.NoError(t, err)
	require.Len(t, sink.lastSources, 1)

	_, err = svc.Answer(context.Background(), "what are the salaries?")
	require.NoError(t, err)

	// The earlier attribution is still in place.
	assert.Equal(t, 1, sink.recordCalls)
	require.Len(t, sink.lastSources, 1)
	assert.Equal(t, "doc-a", sink.lastSources[0].OwnerID)
}
