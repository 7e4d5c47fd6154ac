package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStoreSetGet(t *testing.T) {
	dir := t.TempDir()
	s, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("openai.llm_model", "gpt-4o-mini"))
	require.NoError(t, s.Set("retrieval.top_k", 7))
	require.NoError(t, s.Set("answer.temperature", 0.5))
	require.NoError(t, s.Set("policy.disallowed_keywords", []string{"secret", "internal"}))

	assert.Equal(t, "gpt-4o-mini", s.GetString("openai.llm_model"))
	assert.Equal(t, 7, s.GetInt("retrieval.top_k"))
	assert.Equal(t, 0.5, s.GetFloat("answer.temperature"))
	assert.Equal(t, []string{"secret", "internal"}, s.GetStringSlice("policy.disallowed_keywords"))
}

func TestConfigStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	s1, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Set("store.postgres_dsn", "postgres://localhost/lorebase"))

	s2, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/lorebase", s2.GetString("store.postgres_dsn"))
}

func TestConfigStoreMissingAndWrongTypes(t *testing.T) {
	s, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := s.Get("absent")
	assert.False(t, ok)
	assert.Equal(t, "", s.GetString("absent"))
	assert.Equal(t, 0, s.GetInt("absent"))
	assert.Equal(t, 0.0, s.GetFloat("absent"))
	assert.Nil(t, s.GetStringSlice("absent"))

	require.NoError(t, s.Set("key", "string value"))
	assert.Equal(t, 0, s.GetInt("key"))
	assert.Nil(t, s.GetStringSlice("key"))
}

func TestConfigStoreFlattensNestedTOML(t *testing.T) {
	dir := t.TempDir()
	content := "[openai]\nembedding_model = \"text-embedding-3-small\"\n\n[retrieval]\ntop_k = 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	s, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "text-embedding-3-small", s.GetString("openai.embedding_model"))
	assert.Equal(t, 3, s.GetInt("retrieval.top_k"))
}
