package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vectormemory "github.com/verdantlabs/lorebase/internal/adapters/driven/vectorstore/memory"
)

func TestNewVectorStore_NoDSNWarnsAndFallsBack(t *testing.T) {
	buf := new(bytes.Buffer)

	store, err := newVectorStore("", 2, buf)
	require.NoError(t, err)

	assert.IsType(t, &vectormemory.Store{}, store)
	// The warning is printed unconditionally, not gated on --verbose.
	assert.Contains(t, buf.String(), "store.postgres_dsn is not configured")
	assert.Contains(t, buf.String(), "lost when this command exits")
}
