// Package image extracts bounded image blocks from image files.
//
// Originals can be arbitrarily large, so the extractor downscales and
// re-encodes to JPEG before handing bytes to the summariser. This keeps
// the downstream token cost bounded regardless of source resolution.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding
	"os"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// maxDimension is the largest edge of the re-encoded image in pixels.
const maxDimension = 512

// jpegQuality balances legibility against payload size.
const jpegQuality = 60

// Extractor handles raster image files.
type Extractor struct{}

// New creates a new image extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".png", ".jpg", ".jpeg"}
}

// Extract returns a single image block holding the bounded re-encoded
// representation of the file.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open image %s: %v", domain.ErrExtraction, path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode image %s: %v", domain.ErrExtraction, path, err)
	}

	bounded := downscale(src, maxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, bounded, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("%w: encode image %s: %v", domain.ErrExtraction, path, err)
	}

	return []domain.Block{domain.ImageBlock(buf.Bytes())}, nil
}

// downscale resizes src so its longest edge is at most maxDim, using
// nearest-neighbour sampling. Images already within bounds pass through.
func downscale(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	for y := 0; y < nh; y++ {
		sy := b.Min.Y + y*h/nh
		for x := 0; x < nw; x++ {
			sx := b.Min.X + x*w/nw
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}
