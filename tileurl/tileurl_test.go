package tileurl

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/naturalcap/geoviewer/colorramp"
)

func TestRasterTileJSON_round_trip(t *testing.T) {
	// Reserved characters and unicode must survive encode/decode untouched.
	layerURL := "https://x.example/path/dem é.tif?a=1&b=2/c"
	result := colorramp.Result{
		Colormap: map[string][4]uint8{"0": {1, 2, 3, 255}, "255": {4, 5, 6, 255}},
		Low:      10,
		High:     900,
	}

	out, err := RasterTileJSON("https://titiler.example", layerURL, result)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := url.Parse(out)
	if err != nil {
		t.Fatalf("output is not a valid URL: %v", err)
	}
	if parsed.Path != "/cog/WebMercatorQuad/tilejson.json" {
		t.Errorf("path = %q", parsed.Path)
	}

	q := parsed.Query()
	if got := q.Get("url"); got != layerURL {
		t.Errorf("url param = %q, want %q", got, layerURL)
	}
	if got := q.Get("rescale"); got != "10,900" {
		t.Errorf("rescale = %q, want 10,900", got)
	}
	if got := q.Get("tile_scale"); got != "1" {
		t.Errorf("tile_scale = %q", got)
	}
	if got := q.Get("bidx"); got != "1" {
		t.Errorf("bidx = %q", got)
	}
	if got := q.Get("format"); got != "png" {
		t.Errorf("format = %q", got)
	}
	if got := q.Get("colormap_type"); got != "linear" {
		t.Errorf("colormap_type = %q", got)
	}

	var cm map[string][4]uint8
	if err := json.Unmarshal([]byte(q.Get("colormap")), &cm); err != nil {
		t.Fatalf("colormap param does not parse: %v", err)
	}
	if cm["0"] != [4]uint8{1, 2, 3, 255} {
		t.Errorf("colormap[0] = %v", cm["0"])
	}
	if q.Has("colormap_name") {
		t.Error("explicit colormap must not also carry colormap_name")
	}
}

func TestRasterTileJSON_named_ramp(t *testing.T) {
	result := colorramp.Result{Name: "viridis", Low: 2, High: 98}

	out, err := RasterTileJSON("titiler.example/", "https://x/dem.tif", result)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "https://titiler.example/cog/") {
		t.Errorf("base not normalized: %q", out)
	}

	q, err := url.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := q.Query().Get("colormap_name"); got != "viridis" {
		t.Errorf("colormap_name = %q", got)
	}
	if q.Query().Has("colormap") {
		t.Error("named ramp must not also carry an explicit colormap")
	}
}

func TestPointQuery(t *testing.T) {
	out := PointQuery("https://titiler.example", -122.5, 37.75, "https://x/dem.tif?v=1&w=2")

	parsed, err := url.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Path != "/cog/point/-122.5,37.75" {
		t.Errorf("path = %q", parsed.Path)
	}
	if got := parsed.Query().Get("url"); got != "https://x/dem.tif?v=1&w=2" {
		t.Errorf("url param = %q", got)
	}
}
