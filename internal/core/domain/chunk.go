package domain

// OwnerType identifies the kind of entity a chunk was derived from.
type OwnerType string

const (
	// OwnerDocument marks chunks derived from an uploaded file.
	OwnerDocument OwnerType = "document"

	// OwnerNote marks chunks derived from a wiki note.
	OwnerNote OwnerType = "note"
)

// Valid reports whether t is a known owner type.
func (t OwnerType) Valid() bool {
	return t == OwnerDocument || t == OwnerNote
}

// Metadata keys used on chunk records. The ingestion pipeline always
// sets MetaOwnerID and MetaOwnerType; the remaining keys come from the
// caller-supplied metadata and depend on the owner type.
const (
	MetaOwnerID   = "owner_id"
	MetaOwnerType = "owner_type"
	MetaTitle     = "title"
	MetaFolder    = "folder"
	MetaFilename  = "filename"
	MetaExt       = "ext"
	MetaNoteID    = "note_id"
	MetaUploader  = "uploader"
)

// Chunk is the atomic retrievable unit: one embeddable text with its
// vector and owner reference. Chunk IDs are generated at ingestion and
// never reused; many chunks share an owner, and every chunk has exactly
// one.
type Chunk struct {
	// ID is the globally unique chunk identifier.
	ID string

	// Text is the embeddable content, either raw text or a generated
	// summary of a table or image block.
	Text string

	// Embedding is the vector produced by the embedding service. Its
	// length always equals the service's fixed output dimension.
	Embedding []float32

	// OwnerID identifies the owning document or note.
	OwnerID string

	// OwnerType discriminates the owner.
	OwnerType OwnerType

	// Metadata carries auxiliary fields (title, storage location,
	// note id) merged from the caller at ingestion.
	Metadata map[string]string
}
