package driven

import (
	"context"

	"github.com/verdantlabs/lorebase/internal/core/domain"
)

// Extractor converts a raw file of a known format into an ordered
// sequence of typed content blocks. Each extractor handles specific
// file extensions; dispatch is by lower-cased extension.
type Extractor interface {
	// Extensions returns the file extensions this extractor handles,
	// lower-cased and including the dot (e.g. ".pdf").
	Extensions() []string

	// Extract reads the file and returns its content blocks in
	// document order.
	Extract(ctx context.Context, path string) ([]domain.Block, error)
}

// CommandRunner executes an external command and returns its combined
// output. It exists so extractors that shell out (pdftotext) can be
// tested without the native tool installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
