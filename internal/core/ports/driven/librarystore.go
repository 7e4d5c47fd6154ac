package driven

import (
	"context"

	"github.com/verdantlabs/lorebase/internal/core/domain"
)

// LibraryStore persists document and note registry records. This is the
// collaborator-side metadata catalogue; chunk content lives in the
// VectorStore.
type LibraryStore interface {
	// SaveDocument stores a document record.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by id.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents, newest upload first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document record.
	DeleteDocument(ctx context.Context, id string) error

	// SaveNote stores or updates a note record.
	SaveNote(ctx context.Context, note *domain.Note) error

	// GetNote retrieves a note by id.
	GetNote(ctx context.Context, id string) (*domain.Note, error)

	// ListNotes returns all notes, most recently updated first.
	ListNotes(ctx context.Context) ([]domain.Note, error)

	// DeleteNote removes a note record.
	DeleteNote(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
