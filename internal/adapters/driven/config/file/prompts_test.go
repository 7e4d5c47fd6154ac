package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
)

func TestLoadCreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := s.Load(driven.PromptSummariseTable)
	require.NoError(t, err)
	assert.Contains(t, prompt, "%s")

	// First load materialises every default prompt on disk.
	for name := range defaultPrompts {
		_, err := os.Stat(filepath.Join(dir, name+".txt"))
		assert.NoError(t, err, name)
	}
}

func TestLoadPrefersUserFile(t *testing.T) {
	dir := t.TempDir()
	custom := "Give me a short title for:\n%s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "title.txt"), []byte(custom), 0600))

	s, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := s.Load(driven.PromptTitle)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestReloadPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := s.Load(driven.PromptAnswerSystem)
	require.NoError(t, err)

	edited := "Answer only from the snippets."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "answer_system.txt"), []byte(edited), 0600))

	// Cached until Reload.
	cached, err := s.Load(driven.PromptAnswerSystem)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	s.Reload()
	fresh, err := s.Load(driven.PromptAnswerSystem)
	require.NoError(t, err)
	assert.Equal(t, edited, fresh)
}

func TestLoadUnknownPrompt(t *testing.T) {
	s, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load("no_such_prompt")
	assert.Error(t, err)
}
