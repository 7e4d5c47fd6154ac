// Package domain contains the core types of the Lorebase knowledge
// pipeline: content blocks produced by extraction, chunks stored in the
// vector collection, registry records for documents and notes, and the
// retrieval results surfaced to the answer generator.
package domain
