package extractors

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/lorebase/internal/core/domain"
)

func TestExtractDispatchesByExtension(t *testing.T) {
	r := Defaults(nil)

	path := filepath.Join(t.TempDir(), "Notes.TXT")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0600))

	// Extension matching is case-insensitive.
	blocks, err := r.Extract(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "hello", blocks[0].Text)
}

func TestExtractUnsupportedExtension(t *testing.T) {
	r := Defaults(nil)

	blocks, err := r.Extract(context.Background(), "/tmp/archive.tar.gz")
	require.NoError(t, err)

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockText, blocks[0].Kind)
	assert.Contains(t, blocks[0].Text, "archive.tar.gz")
	assert.Contains(t, blocks[0].Text, "unsupported type")
}

func TestTitleSeedFromText(t *testing.T) {
	r := Defaults(nil)

	path := filepath.Join(t.TempDir(), "guide.txt")
	require.NoError(t, os.WriteFile(path, []byte("Team onboarding guide.\n\nSecond part."), 0600))

	seed := r.TitleSeed(context.Background(), path)
	assert.Equal(t, "Team onboarding guide. Second part.", seed)
}

func TestTitleSeedCapped(t *testing.T) {
	r := Defaults(nil)

	path := filepath.Join(t.TempDir(), "long.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("word ", 400)), 0600))

	seed := r.TitleSeed(context.Background(), path)
	assert.LessOrEqual(t, len(seed), titleSeedLimit+10)
}

func TestTitleSeedFallback(t *testing.T) {
	r := Defaults(nil)

	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("   "), 0600))

	assert.Equal(t, "Document", r.TitleSeed(context.Background(), path))

	// Unreadable files also fall back.
	assert.Equal(t, "Document", r.TitleSeed(context.Background(), filepath.Join(t.TempDir(), "absent.docx")))
}
