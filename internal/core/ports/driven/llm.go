package driven

import "context"

// LLMService provides language model completions for block
// summarisation, title generation and grounded answer generation.
//
// Implementations may include:
//   - OpenAI (gpt-4o, gpt-4o-mini)
//   - Compatible chat-completion endpoints
type LLMService interface {
	// Chat sends a conversation and returns the model's reply text.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the chat model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic-leaning).
	Temperature float64
}
