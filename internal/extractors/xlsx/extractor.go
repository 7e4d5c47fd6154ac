// Package xlsx extracts table blocks from XLSX spreadsheets.
//
// XLSX files are ZIP archives with one XML part per worksheet and a
// shared-string table. Each worksheet becomes one table block whose
// rows are newline-separated and cells tab-separated, preserving the
// raw cell text for downstream summarisation.
package xlsx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles XLSX spreadsheets.
type Extractor struct{}

// New creates a new XLSX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".xlsx"}
}

// sharedStrings is the xl/sharedStrings.xml structure.
type sharedStrings struct {
	Items []sharedString `xml:"si"`
}

// sharedString holds either a plain text run or rich text runs.
type sharedString struct {
	Text string `xml:"t"`
	Runs []struct {
		Text string `xml:"t"`
	} `xml:"r"`
}

// value flattens a shared string entry to its text.
func (s sharedString) value() string {
	if len(s.Runs) == 0 {
		return s.Text
	}
	var sb strings.Builder
	for _, r := range s.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// worksheet is the xl/worksheets/sheetN.xml structure.
type worksheet struct {
	Rows []struct {
		Cells []cell `xml:"c"`
	} `xml:"sheetData>row"`
}

// cell is one worksheet cell.
type cell struct {
	Type   string `xml:"t,attr"`
	Value  string `xml:"v"`
	Inline struct {
		Text string `xml:"t"`
	} `xml:"is"`
}

// Extract returns one table block per worksheet, in sheet file order.
// Empty sheets are skipped.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Block, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open xlsx %s: %v", domain.ErrExtraction, path, err)
	}
	defer reader.Close()

	shared, err := loadSharedStrings(&reader.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	var sheetNames []string
	for _, f := range reader.File {
		if strings.HasPrefix(f.Name, "xl/worksheets/sheet") && strings.HasSuffix(f.Name, ".xml") {
			sheetNames = append(sheetNames, f.Name)
		}
	}
	sort.Strings(sheetNames)

	var blocks []domain.Block
	for _, name := range sheetNames {
		table, err := parseSheet(&reader.Reader, name, shared)
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrExtraction, name, err)
		}
		if strings.TrimSpace(table) != "" {
			blocks = append(blocks, domain.TableBlock(table))
		}
	}
	return blocks, nil
}

// loadSharedStrings parses xl/sharedStrings.xml if present.
func loadSharedStrings(reader *zip.Reader) ([]string, error) {
	data, err := readArchiveFile(reader, "xl/sharedStrings.xml")
	if err != nil {
		// The shared string table is optional.
		return nil, nil
	}

	var sst sharedStrings
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil, fmt.Errorf("parse shared strings: %v", err)
	}

	values := make([]string, len(sst.Items))
	for i, item := range sst.Items {
		values[i] = item.value()
	}
	return values, nil
}

// parseSheet flattens one worksheet into tab-separated rows.
func parseSheet(reader *zip.Reader, name string, shared []string) (string, error) {
	data, err := readArchiveFile(reader, name)
	if err != nil {
		return "", err
	}

	var sheet worksheet
	if err := xml.Unmarshal(data, &sheet); err != nil {
		return "", err
	}

	var rows []string
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = cellText(c, shared)
		}
		if strings.TrimSpace(strings.Join(cells, "")) == "" {
			continue
		}
		rows = append(rows, strings.Join(cells, "\t"))
	}
	return strings.Join(rows, "\n"), nil
}

// cellText resolves a cell to its raw text.
func cellText(c cell, shared []string) string {
	switch c.Type {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return shared[idx]
	case "inlineStr":
		return c.Inline.Text
	default:
		return c.Value
	}
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
