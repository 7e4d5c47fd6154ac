package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockConstructors(t *testing.T) {
	text := TextBlock("a paragraph")
	assert.Equal(t, BlockText, text.Kind)
	assert.Equal(t, "a paragraph", text.Text)
	assert.Nil(t, text.Data)

	table := TableBlock("h1\th2\nv1\tv2")
	assert.Equal(t, BlockTable, table.Kind)
	assert.Equal(t, "h1\th2\nv1\tv2", table.Text)

	img := ImageBlock([]byte{0xFF, 0xD8})
	assert.Equal(t, BlockImage, img.Kind)
	assert.Equal(t, []byte{0xFF, 0xD8}, img.Data)
	assert.Empty(t, img.Text)
}

func TestBlockKindString(t *testing.T) {
	assert.Equal(t, "text", BlockText.String())
	assert.Equal(t, "table", BlockTable.String())
	assert.Equal(t, "image", BlockImage.String())
	assert.Equal(t, "unknown", BlockKind(99).String())
}

func TestOwnerTypeValid(t *testing.T) {
	assert.True(t, OwnerDocument.Valid())
	assert.True(t, OwnerNote.Valid())
	assert.False(t, OwnerType("folder").Valid())
	assert.False(t, OwnerType("").Valid())
}

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected float64
	}{
		{name: "perfect match", distance: 0, expected: 100},
		{name: "mid distance", distance: 0.25, expected: 75},
		{name: "unit distance", distance: 1, expected: 0},
		{name: "beyond unit clamps to zero", distance: 1.7, expected: 0},
		{name: "negative clamps to hundred", distance: -0.3, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeScore(tt.distance), 1e-9)
		})
	}
}
