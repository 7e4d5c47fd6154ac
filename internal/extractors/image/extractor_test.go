package image

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/lorebase/internal/core/domain"
)

// writePNG creates a PNG of the given size filled with a flat colour.
func writePNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "pic.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestExtractReencodesWithinBounds(t *testing.T) {
	path := writePNG(t, 1200, 600)

	blocks, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockImage, blocks[0].Kind)

	decoded, err := jpeg.Decode(bytes.NewReader(blocks[0].Data))
	require.NoError(t, err)
	b := decoded.Bounds()
	assert.LessOrEqual(t, b.Dx(), maxDimension)
	assert.LessOrEqual(t, b.Dy(), maxDimension)
	// Aspect ratio is preserved.
	assert.Equal(t, maxDimension, b.Dx())
	assert.Equal(t, maxDimension/2, b.Dy())
}

func TestExtractSmallImagePassesThrough(t *testing.T) {
	path := writePNG(t, 10, 8)

	blocks, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(blocks[0].Data))
	require.NoError(t, err)
	assert.Equal(t, 10, decoded.Bounds().Dx())
	assert.Equal(t, 8, decoded.Bounds().Dy())
}

func TestExtractNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0600))

	_, err := New().Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}
