package sprite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/naturalcap/geoviewer/composer"
	"github.com/naturalcap/geoviewer/models"
)

// Sheet is a packed sprite: the PNG image and its JSON index.
type Sheet struct {
	PNG   []byte
	Index []byte
}

// BuildForMap renders one swatch per vector layer of a stored map and packs
// them horizontally. Layers with a custom SVG marker use the rasterized
// marker instead of a palette swatch. Raster layers have no swatch; their
// legend is the color ramp itself.
func BuildForMap(record models.MapRecord) (Sheet, error) {
	var (
		images []image.Image
		names  []string
	)

	for _, row := range record.Layers {
		if models.LayerType(row.LayerType) != models.LayerTypeVector || row.VectorType == nil {
			continue
		}

		var (
			img image.Image
			err error
		)
		if row.Marker != nil && strings.HasSuffix(*row.Marker, ".svg") {
			img, err = SVGToImage(*row.Marker)
		} else {
			img, err = Swatch(models.GeometryKind(*row.VectorType), composer.PaletteColor(row.LayerOrder))
		}
		if err != nil {
			return Sheet{}, fmt.Errorf("swatch for layer %q: %w", row.Name, err)
		}

		images = append(images, img)
		names = append(names, row.Name)
	}

	if len(images) == 0 {
		return Sheet{}, fmt.Errorf("map %q has no vector layers to draw", record.Title)
	}

	return pack(images, names)
}

// pack lays the swatches out left to right; the sheet is as tall as the
// tallest image.
func pack(images []image.Image, names []string) (Sheet, error) {
	var sheetWidth, maxHeight int
	meta := make(map[string]models.SpriteMeta, len(images))

	for i, img := range images {
		bounds := img.Bounds()
		width, height := bounds.Dx(), bounds.Dy()
		meta[names[i]] = models.SpriteMeta{
			X:          sheetWidth,
			Y:          0,
			Width:      width,
			Height:     height,
			PixelRatio: 1,
		}
		sheetWidth += width
		if height > maxHeight {
			maxHeight = height
		}
	}

	sheetImg := image.NewRGBA(image.Rect(0, 0, sheetWidth, maxHeight))
	x := 0
	for _, img := range images {
		bounds := img.Bounds()
		target := image.Rect(x, 0, x+bounds.Dx(), bounds.Dy())
		draw.Draw(sheetImg, target, img, bounds.Min, draw.Over)
		x += bounds.Dx()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, sheetImg); err != nil {
		return Sheet{}, fmt.Errorf("encoding sprite sheet: %w", err)
	}
	index, err := json.Marshal(meta)
	if err != nil {
		return Sheet{}, fmt.Errorf("encoding sprite index: %w", err)
	}

	return Sheet{PNG: buf.Bytes(), Index: index}, nil
}
