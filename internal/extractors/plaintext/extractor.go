// Package plaintext extracts paragraph blocks from plain text files.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text and markdown files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt", ".md"}
}

// Extract splits the file into one text block per paragraph. Paragraphs
// are separated by blank lines; whitespace-only paragraphs are dropped.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrExtraction, path, err)
	}

	return SplitParagraphs(string(data)), nil
}

// SplitParagraphs converts text into one text block per blank-line
// separated paragraph. Shared with the PDF extractor, whose converter
// output follows the same convention.
func SplitParagraphs(text string) []domain.Block {
	normalised := strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []domain.Block
	for _, para := range strings.Split(normalised, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		blocks = append(blocks, domain.TextBlock(para))
	}
	return blocks
}
