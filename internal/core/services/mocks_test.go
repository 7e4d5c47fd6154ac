package services

import (
	"context"
	"math"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedding implements driven.EmbeddingService for testing. Texts
// with a registered vector get it; everything else gets the fallback.
type mockEmbedding struct {
	vectors  map[string][]float32
	fallback []float32
	calls    int
	err      error
}

func newMockEmbedding() *mockEmbedding {
	return &mockEmbedding{
		vectors:  make(map[string][]float32),
		fallback: []float32{1, 0},
	}
}

func (m *mockEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return m.fallback, nil
}

func (m *mockEmbedding) Dimensions() int   { return 2 }
func (m *mockEmbedding) ModelName() string { return "mock-embedding" }
func (m *mockEmbedding) Close() error      { return nil }

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	reply        string
	calls        int
	err          error
	lastMessages []driven.ChatMessage
	lastOpts     driven.ChatOptions
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.calls++
	m.lastMessages = messages
	m.lastOpts = opts
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }
func (m *mockLLM) Close() error      { return nil }

// mockPrompts implements driven.PromptStore with passthrough templates.
type mockPrompts struct {
	overrides map[string]string
	loadErr   error
}

func (m *mockPrompts) Load(name string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	if m.overrides != nil {
		if p, ok := m.overrides[name]; ok {
			return p, nil
		}
	}
	if name == driven.PromptAnswerSystem {
		return "Answer from the context only.", nil
	}
	return "%s", nil
}

func (m *mockPrompts) Reload() {}

// mockSink implements driven.AttributionSink and counts Record calls.
type mockSink struct {
	recordCalls  int
	lastQuestion string
	lastSources  []domain.SourceRecord
}

func (m *mockSink) Record(question string, sources []domain.SourceRecord) {
	m.recordCalls++
	m.lastQuestion = question
	m.lastSources = sources
}

func (m *mockSink) LastSources() []domain.SourceRecord {
	return m.lastSources
}

// vec returns a unit 2d embedding whose cosine similarity to (1,0) is
// exactly the given value, so the distance against a (1,0) query is
// 1-similarity.
func vec(similarity float64) []float32 {
	if similarity > 1 {
		similarity = 1
	}
	if similarity < -1 {
		similarity = -1
	}
	return []float32{float32(similarity), float32(math.Sqrt(1 - similarity*similarity))}
}
