// Package pdf implements the catalog assembly engine: front page rendering,
// image-to-page conversion, and document merging.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	infraconfig "github.com/catalog/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Brand palette and document identity
const (
	brandRedR, brandRedG, brandRedB = 209, 23, 32
	grayR, grayG, grayB             = 156, 163, 175

	creatorName = "Catalog Generator System"
)

// Engine renders and merges catalog documents. It is stateless per call and
// safe for concurrent use.
type Engine struct {
	branding infraconfig.BrandingConfig
	logger   *zap.Logger
}

// NewEngine creates an Engine with the given branding
func NewEngine(branding infraconfig.BrandingConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{branding: branding, logger: logger}
}

// flattenToPNG decodes raw image bytes, composites alpha and palette images
// onto a white background, and re-encodes as PNG. Returns the PNG bytes and
// the pixel dimensions.
func flattenToPNG(data []byte) ([]byte, int, int, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	flat := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), bounds.Dx(), bounds.Dy(), nil
}
