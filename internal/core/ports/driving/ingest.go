package driving

import (
	"context"

	"github.com/verdantlabs/lorebase/internal/core/domain"
)

// Ingestor turns one source document or note into chunk records in the
// vector collection.
type Ingestor interface {
	// Ingest extracts, summarises, embeds and upserts the file's
	// content as chunks tagged with the owner. Any prior chunks for
	// the owner are deleted first, so exactly one generation per
	// owner is queryable at any time. Callers must serialise
	// concurrent ingestion and deletion of the same owner.
	Ingest(ctx context.Context, path string, ownerID string, ownerType domain.OwnerType, metadata map[string]string) error

	// IngestText ingests literal text (a note body) as a single
	// chunk, following the same delete-then-insert discipline.
	IngestText(ctx context.Context, text string, ownerID string, ownerType domain.OwnerType, metadata map[string]string) error

	// DeleteOwner removes every chunk whose owner id matches.
	DeleteOwner(ctx context.Context, ownerID string) error

	// GenerateTitle produces a concise human-facing title from a
	// short content prefix of the file. Independent of Ingest and may
	// run before it.
	GenerateTitle(ctx context.Context, path string) (string, error)
}
