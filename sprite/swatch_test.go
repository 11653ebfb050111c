package sprite

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"testing"

	"github.com/naturalcap/geoviewer/models"
)

func TestParseHex(t *testing.T) {
	c, err := parseHex("#377eb8")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.RGBA{R: 0x37, G: 0x7e, B: 0xb8, A: 255}) {
		t.Errorf("parsed %v", c)
	}

	if _, err := parseHex("377eb8"); err == nil {
		t.Error("missing # must be rejected")
	}
	if _, err := parseHex("#37"); err == nil {
		t.Error("short color must be rejected")
	}
}

func TestSwatch_draws_each_kind(t *testing.T) {
	for _, kind := range []models.GeometryKind{models.GeometryPoint, models.GeometryLine, models.GeometryPolygon} {
		img, err := Swatch(kind, "#e41a1c")
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if img.Bounds().Dx() != swatchSize || img.Bounds().Dy() != swatchSize {
			t.Errorf("%s: bounds %v", kind, img.Bounds())
		}

		// Something must have been painted.
		painted := false
		for y := 0; y < swatchSize && !painted; y++ {
			for x := 0; x < swatchSize; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
					painted = true
					break
				}
			}
		}
		if !painted {
			t.Errorf("%s: swatch is empty", kind)
		}
	}

	if _, err := Swatch("Curve", "#e41a1c"); err == nil {
		t.Error("unsupported kind must be rejected")
	}
}

func TestBuildForMap_packs_vector_layers(t *testing.T) {
	polygon := "Polygon"
	point := "Point"
	record := models.MapRecord{
		Title: "demo",
		Layers: []models.MapLayerRecord{
			{Name: "dem", LayerType: "raster", LayerOrder: 0},
			{Name: "lakes", LayerType: "vector", VectorType: &polygon, LayerOrder: 1},
			{Name: "stations", LayerType: "vector", VectorType: &point, LayerOrder: 2},
		},
	}

	sheet, err := BuildForMap(record)
	if err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(bytes.NewReader(sheet.PNG))
	if err != nil {
		t.Fatalf("sheet is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 2*swatchSize {
		t.Errorf("sheet width = %d, want two swatches", img.Bounds().Dx())
	}

	var meta map[string]models.SpriteMeta
	if err := json.Unmarshal(sheet.Index, &meta); err != nil {
		t.Fatal(err)
	}
	if len(meta) != 2 {
		t.Fatalf("index has %d entries, want 2", len(meta))
	}
	if _, ok := meta["dem"]; ok {
		t.Error("raster layers must not get a swatch")
	}
	if meta["stations"].X != swatchSize {
		t.Errorf("stations offset = %d, want %d", meta["stations"].X, swatchSize)
	}
}

func TestBuildForMap_no_vector_layers(t *testing.T) {
	record := models.MapRecord{Title: "empty", Layers: []models.MapLayerRecord{
		{Name: "dem", LayerType: "raster"},
	}}
	if _, err := BuildForMap(record); err == nil {
		t.Error("expected an error for a map without vector layers")
	}
}
