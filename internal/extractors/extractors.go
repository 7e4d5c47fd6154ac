// Package extractors converts raw files into ordered sequences of typed
// content blocks. Dispatch is by file extension; each format has a
// dedicated extraction strategy registered here.
package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
	"github.com/verdantlabs/lorebase/internal/extractors/docx"
	"github.com/verdantlabs/lorebase/internal/extractors/image"
	"github.com/verdantlabs/lorebase/internal/extractors/pdf"
	"github.com/verdantlabs/lorebase/internal/extractors/plaintext"
	"github.com/verdantlabs/lorebase/internal/extractors/xlsx"
	"github.com/verdantlabs/lorebase/internal/logger"
)

// titleSeedLimit caps the content prefix used to seed title generation.
const titleSeedLimit = 500

// Registry dispatches extraction by lower-cased file extension.
type Registry struct {
	byExt map[string]driven.Extractor
}

// NewRegistry creates a registry over the given extractors. Later
// registrations win on extension conflicts.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byExt: make(map[string]driven.Extractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[strings.ToLower(ext)] = e
		}
	}
	return r
}

// Defaults returns a registry with the standard format strategies. The
// runner is used by the PDF extractor to invoke the native converter.
func Defaults(runner driven.CommandRunner) *Registry {
	return NewRegistry(
		plaintext.New(),
		docx.New(),
		xlsx.New(),
		pdf.New(runner),
		image.New(),
	)
}

// Extract converts the file at path into content blocks. Unsupported
// extensions yield a single informational text block rather than an
// error, so ingestion never fails solely because a file type is
// undisplayable.
func (r *Registry) Extract(ctx context.Context, path string) ([]domain.Block, error) {
	ext := strings.ToLower(filepath.Ext(path))

	e, ok := r.byExt[ext]
	if !ok {
		logger.Debug("No extractor for %q, storing informational block", ext)
		note := fmt.Sprintf("File %s has an unsupported type (%s); its content was not indexed.",
			filepath.Base(path), ext)
		return []domain.Block{domain.TextBlock(note)}, nil
	}

	blocks, err := e.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Extracted %d blocks from %s", len(blocks), filepath.Base(path))
	return blocks, nil
}

// TitleSeed extracts a short content prefix from the file, used to seed
// title generation. It is independent of the main chunking pass and
// never fails: files that yield no text seed the generic "Document".
func (r *Registry) TitleSeed(ctx context.Context, path string) string {
	blocks, err := r.Extract(ctx, path)
	if err != nil {
		logger.Warn("Title seed extraction failed for %s: %v", filepath.Base(path), err)
		return "Document"
	}

	var sb strings.Builder
	for _, b := range blocks {
		switch b.Kind {
		case domain.BlockText, domain.BlockTable:
			if t := strings.TrimSpace(b.Text); t != "" {
				if sb.Len() > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(t)
			}
		case domain.BlockImage:
			// Images carry no seed text.
		}
		if sb.Len() >= titleSeedLimit {
			break
		}
	}

	seed := sb.String()
	if seed == "" {
		return "Document"
	}
	// Cut on a rune boundary at or just past the limit.
	for i := range seed {
		if i > titleSeedLimit {
			return seed[:i]
		}
	}
	return seed
}
