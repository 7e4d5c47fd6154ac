package domain

import "errors"

// Core pipeline errors. Failures from external services are wrapped in
// one of these sentinels so callers can classify them with errors.Is;
// none are fatal to the process.
var (
	// ErrExtraction indicates content extraction failed after the
	// fallback strategy was exhausted.
	ErrExtraction = errors.New("extraction failed")

	// ErrSummarization indicates the language model call for a table
	// or image block failed.
	ErrSummarization = errors.New("summarization failed")

	// ErrEmbedding indicates the embedding call failed.
	ErrEmbedding = errors.New("embedding failed")

	// ErrStore indicates the vector store is unavailable or a write
	// failed.
	ErrStore = errors.New("vector store failure")

	// ErrIngestion wraps any failure that aborts ingestion of a
	// single document. Chunks upserted before the failure may remain;
	// ingestion is not transactional across chunks.
	ErrIngestion = errors.New("ingestion failed")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
