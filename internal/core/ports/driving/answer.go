package driving

import "context"

// Answerer answers natural-language questions grounded in retrieved
// chunks.
type Answerer interface {
	// Answer returns the generated answer text. Disallowed questions
	// get a fixed refusal and empty retrievals a fixed "no
	// information" reply, neither of which reaches the language
	// model.
	Answer(ctx context.Context, question string) (string, error)

	// AnswerWithContext additionally returns the assembled context
	// block, for debugging retrieval quality.
	AnswerWithContext(ctx context.Context, question string) (answer string, contextText string, err error)
}
