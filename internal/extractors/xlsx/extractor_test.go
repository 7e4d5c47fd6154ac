package xlsx

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/lorebase/internal/core/domain"
)

// writeXlsx creates a minimal XLSX archive from part name to XML body.
func writeXlsx(t *testing.T, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range parts {
		part, err := w.Create(name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return path
}

func TestExtractSharedAndInlineStrings(t *testing.T) {
	path := writeXlsx(t, map[string]string{
		"xl/sharedStrings.xml": `<?xml version="1.0"?>
<sst><si><t>Name</t></si><si><r><t>Ri</t></r><r><t>ch</t></r></si></sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?>
<worksheet><sheetData>
<row><c t="s"><v>0</v></c><c t="s"><v>1</v></c></row>
<row><c t="inlineStr"><is><t>inline</t></is></c><c><v>42</v></c></row>
</sheetData></worksheet>`,
	})

	blocks, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockTable, blocks[0].Kind)
	assert.Equal(t, "Name\tRich\ninline\t42", blocks[0].Text)
}

func TestExtractMultipleSheetsSkipEmpty(t *testing.T) {
	path := writeXlsx(t, map[string]string{
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData><row><c><v>first</v></c></row></sheetData></worksheet>`,
		"xl/worksheets/sheet2.xml": `<worksheet><sheetData></sheetData></worksheet>`,
		"xl/worksheets/sheet3.xml": `<worksheet><sheetData><row><c><v>third</v></c></row></sheetData></worksheet>`,
	})

	blocks, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, blocks, 2)
	assert.Equal(t, "first", blocks[0].Text)
	assert.Equal(t, "third", blocks[1].Text)
}

func TestExtractBadSharedStringIndex(t *testing.T) {
	path := writeXlsx(t, map[string]string{
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData>
<row><c t="s"><v>7</v></c><c><v>ok</v></c></row>
</sheetData></worksheet>`,
	})

	blocks, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	// The dangling reference resolves to empty, the row survives.
	require.Len(t, blocks, 1)
	assert.Equal(t, "\tok", blocks[0].Text)
}

func TestExtractNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0600))

	_, err := New().Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}
