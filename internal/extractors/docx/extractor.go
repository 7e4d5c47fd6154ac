// Package docx extracts text and table blocks from DOCX documents.
//
// DOCX files are ZIP archives; the document body lives in
// word/document.xml. The extractor walks the XML token stream so that
// paragraphs and tables come out in document order, with table cell
// text never duplicated into text blocks.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".docx"}
}

// Extract returns the document's paragraphs as text blocks and its
// tables as tab-separated table blocks, in document order.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Block, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open docx %s: %v", domain.ErrExtraction, path, err)
	}
	defer reader.Close()

	body, err := readArchiveFile(&reader.Reader, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	blocks, err := parseBody(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrExtraction, path, err)
	}
	return blocks, nil
}

// readArchiveFile returns the contents of one file inside the archive.
func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %v", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("missing %s", name)
}

// parseBody walks the document XML and emits blocks in order.
func parseBody(content []byte) ([]domain.Block, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var blocks []domain.Block
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "tbl":
			table, err := parseTable(decoder, start)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(table) != "" {
				blocks = append(blocks, domain.TableBlock(table))
			}
		case "p":
			text, err := collectText(decoder, start)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(text) != "" {
				blocks = append(blocks, domain.TextBlock(strings.TrimSpace(text)))
			}
		}
	}
	return blocks, nil
}

// parseTable consumes a w:tbl element, returning rows joined by
// newlines and cells by tabs.
func parseTable(decoder *xml.Decoder, start xml.StartElement) (string, error) {
	var rows []string
	var cells []string

	depth := 1
	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case start.Name.Local:
				depth++
			case "tr":
				cells = nil
			case "tc":
				cell, err := collectText(decoder, t)
				if err != nil {
					return "", err
				}
				cells = append(cells, strings.TrimSpace(cell))
			}
		case xml.EndElement:
			switch t.Name.Local {
			case start.Name.Local:
				depth--
			case "tr":
				if len(cells) > 0 {
					rows = append(rows, strings.Join(cells, "\t"))
				}
			}
		}
	}
	return strings.Join(rows, "\n"), nil
}

// collectText consumes an element and concatenates every w:t run
// inside it, separating paragraphs within a cell by spaces.
func collectText(decoder *xml.Decoder, start xml.StartElement) (string, error) {
	var sb strings.Builder

	depth := 1
	inText := false
	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == start.Name.Local {
				depth++
			}
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				depth--
			}
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
