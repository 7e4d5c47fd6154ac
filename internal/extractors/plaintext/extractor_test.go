package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/lorebase/internal/core/domain"
)

func TestExtractParagraphs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	content := "First paragraph.\n\nSecond paragraph\nspanning two lines.\n\n\n\nThird."
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	blocks, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, blocks, 3)
	assert.Equal(t, domain.BlockText, blocks[0].Kind)
	assert.Equal(t, "First paragraph.", blocks[0].Text)
	assert.Equal(t, "Second paragraph\nspanning two lines.", blocks[1].Text)
	assert.Equal(t, "Third.", blocks[2].Text)
}

func TestExtractMissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"windows line endings", "a\r\n\r\nb", []string{"a", "b"}},
		{"whitespace only dropped", "a\n\n   \n\nb", []string{"a", "b"}},
		{"empty input", "", nil},
		{"single paragraph", "only one", []string{"only one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := SplitParagraphs(tt.text)
			var got []string
			for _, b := range blocks {
				got = append(got, b.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
