package driven

// PromptStore provides access to LLM prompt templates. Implementations
// may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name, falling
	// back to an embedded default when no override exists.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access.
	Reload()
}

// Well-known prompt names. These constants define the contract between
// prompt consumers and providers.
const (
	// PromptSummariseText summarises prose content.
	// The template expects a %s placeholder for the content.
	PromptSummariseText = "summarise_text"

	// PromptSummariseTable summarises raw tabular text.
	// The template expects a %s placeholder for the table text.
	PromptSummariseTable = "summarise_table"

	// PromptSummariseImage describes a base64-encoded image.
	// The template expects a %s placeholder for the base64 content.
	PromptSummariseImage = "summarise_image"

	// PromptTitle generates a concise document title.
	// The template expects a %s placeholder for the content prefix.
	PromptTitle = "title"

	// PromptAnswerSystem is the system prompt for grounded answering.
	// This prompt has no format placeholders.
	PromptAnswerSystem = "answer_system"
)
