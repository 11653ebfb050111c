// Package sprite renders legend swatches for a map's vector layers and packs
// them into a sprite sheet the renderer can reference.
package sprite

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/srwiley/rasterx"

	"github.com/naturalcap/geoviewer/models"
)

const (
	swatchSize  = 24
	swatchInset = 4
)

// Swatch draws a legend chip for a geometry kind in the given color: a dot
// for points, a stroke for lines, a filled square for polygons.
func Swatch(kind models.GeometryKind, hex string) (image.Image, error) {
	c, err := parseHex(hex)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, swatchSize, swatchSize))
	scanner := rasterx.NewScannerGV(swatchSize, swatchSize, img, img.Bounds())
	filler := rasterx.NewFiller(swatchSize, swatchSize, scanner)
	filler.SetColor(c)

	half := float64(swatchSize) / 2
	switch kind {
	case models.GeometryPoint:
		rasterx.AddCircle(half, half, half-swatchInset, filler)
	case models.GeometryLine:
		rasterx.AddRect(swatchInset, half-2, swatchSize-swatchInset, half+2, 0, filler)
	case models.GeometryPolygon:
		rasterx.AddRect(swatchInset, swatchInset, swatchSize-swatchInset, swatchSize-swatchInset, 0, filler)
	default:
		return nil, fmt.Errorf("no swatch for geometry type %q", kind)
	}

	filler.Draw()
	return img, nil
}

func parseHex(hex string) (color.RGBA, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
