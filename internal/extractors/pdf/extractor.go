// Package pdf extracts text blocks from PDF documents.
//
// The primary strategy shells out to pdftotext through an injectable
// CommandRunner. When that fails (missing tool, malformed file) the
// extractor falls back once to a naive in-process scan of literal
// strings in the raw PDF, which recovers readable text from simple
// uncompressed files. If the fallback also yields nothing, extraction
// fails.
package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
	"github.com/verdantlabs/lorebase/internal/extractors/plaintext"
	"github.com/verdantlabs/lorebase/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// ExecRunner runs commands with os/exec. It is the production
// CommandRunner; tests substitute a stub.
type ExecRunner struct{}

// Run executes the command and returns its stdout.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor handles PDF documents.
type Extractor struct {
	runner driven.CommandRunner
}

// New creates a new PDF extractor using the given command runner.
func New(runner driven.CommandRunner) *Extractor {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Extractor{runner: runner}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract converts the PDF to paragraph text blocks via pdftotext,
// falling back at most once to the literal-string scan.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.Block, error) {
	out, err := e.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err == nil && strings.TrimSpace(string(out)) != "" {
		return plaintext.SplitParagraphs(string(out)), nil
	}
	if err != nil {
		logger.Warn("pdftotext failed for %s, using fallback: %v", path, err)
	} else {
		logger.Warn("pdftotext produced no text for %s, using fallback", path)
	}

	text, ferr := scanLiteralStrings(path)
	if ferr != nil {
		return nil, fmt.Errorf("%w: pdf %s: primary: %v, fallback: %v", domain.ErrExtraction, path, err, ferr)
	}
	// The fallback is lower fidelity: one text block, no layout.
	return []domain.Block{domain.TextBlock(text)}, nil
}

// scanLiteralStrings pulls printable text out of parenthesised PDF
// string literals. It handles backslash escapes and nested parentheses
// but not compressed content streams.
func scanLiteralStrings(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read: %v", err)
	}

	var sb strings.Builder
	depth := 0
	escaped := false
	for _, b := range data {
		if depth == 0 {
			if b == '(' {
				depth = 1
			}
			continue
		}
		if escaped {
			switch b {
			case 'n', 'r':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte(' ')
			case '(', ')', '\\':
				sb.WriteByte(b)
			}
			escaped = false
			continue
		}
		switch b {
		case '\\':
			escaped = true
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				sb.WriteByte(' ')
			}
		default:
			if b >= 0x20 && b < 0x7F {
				sb.WriteByte(b)
			}
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no literal text found")
	}
	return text, nil
}
