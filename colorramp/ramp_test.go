package colorramp

import (
	"encoding/json"
	"image/color"
	"strconv"
	"testing"

	"github.com/naturalcap/geoviewer/models"
)

func demStats() models.RasterStats {
	return models.RasterStats{
		Min: 0, Max: 1000,
		P2: 10, P20: 55, P40: 140, P60: 310, P80: 620, P98: 900,
	}
}

func TestPercentileRamp_first_and_last_stop_pinned(t *testing.T) {
	result, err := PercentileStrategy{}.Build(demStats())
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := result.Colormap["0"]; !ok {
		t.Error("expected first stop at pixel index 0")
	}
	if _, ok := result.Colormap["255"]; !ok {
		t.Error("expected last stop at pixel index 255")
	}
}

func TestPercentileRamp_first_and_last_pinned_even_when_values_extreme(t *testing.T) {
	// P2 lands mid-range and P98 at max; the outermost stops must still pin
	// to 0 and 255.
	stats := models.RasterStats{
		Min: 0, Max: 100,
		P2: 50, P20: 60, P40: 70, P60: 80, P80: 90, P98: 100,
	}
	result, err := PercentileStrategy{}.Build(stats)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := result.Colormap["0"]; !ok {
		t.Error("first stop not pinned to 0")
	}
	if _, ok := result.Colormap["255"]; !ok {
		t.Error("last stop not pinned to 255")
	}
	// The raw value 50 would map to index 128; it must not appear for the
	// first stop.
	first := DefaultStops[0].Color
	if c, ok := result.Colormap["128"]; ok && c == [4]uint8{first.R, first.G, first.B, first.A} {
		t.Error("first stop escaped the pin")
	}
}

func TestPercentileRamp_interior_stop_position(t *testing.T) {
	result, err := PercentileStrategy{}.Build(demStats())
	if err != nil {
		t.Fatal(err)
	}

	// P40=140 over [0,1000] -> round(0.14*255) = 36
	c, ok := result.Colormap["36"]
	if !ok {
		t.Fatalf("expected stop at index 36, got keys %v", keys(result.Colormap))
	}
	want := DefaultStops[2].Color
	if c != [4]uint8{want.R, want.G, want.B, want.A} {
		t.Errorf("index 36 color = %v, want %v", c, want)
	}
}

func TestPercentileRamp_degenerate_stats_no_nan(t *testing.T) {
	stats := models.RasterStats{
		Min: 5, Max: 5,
		P2: 5, P20: 5, P40: 5, P60: 5, P80: 5, P98: 5,
	}
	result, err := PercentileStrategy{}.Build(stats)
	if err != nil {
		t.Fatal(err)
	}

	for key := range result.Colormap {
		idx, err := strconv.Atoi(key)
		if err != nil {
			t.Fatalf("non-integer pixel index %q", key)
		}
		if idx < 0 || idx > 255 {
			t.Errorf("pixel index %d out of range", idx)
		}
	}
	// Values at max scale to the top of the ramp; the forced first stop
	// still covers index 0.
	if _, ok := result.Colormap["0"]; !ok {
		t.Error("expected index 0 in degenerate colormap")
	}
	if _, ok := result.Colormap["255"]; !ok {
		t.Error("expected index 255 in degenerate colormap")
	}
}

func TestPercentileRamp_rescale_bounds_are_2_and_98(t *testing.T) {
	result, err := PercentileStrategy{}.Build(demStats())
	if err != nil {
		t.Fatal(err)
	}
	if result.Low != 10 || result.High != 900 {
		t.Errorf("rescale bounds = %g,%g, want 10,900", result.Low, result.High)
	}
	if result.RescaleParam() != "10,900" {
		t.Errorf("RescaleParam = %q, want %q", result.RescaleParam(), "10,900")
	}
}

func TestPercentileRamp_unknown_percentile(t *testing.T) {
	stops := []Stop{
		{Percentile: 2, Color: color.RGBA{A: 255}},
		{Percentile: 50, Color: color.RGBA{A: 255}},
	}
	_, err := PercentileStrategy{Stops: stops}.Build(demStats())
	if err == nil {
		t.Error("expected error for percentile without a precomputed statistic")
	}
}

func TestNamedStrategy_same_rescale_contract(t *testing.T) {
	result, err := NamedStrategy{}.Build(demStats())
	if err != nil {
		t.Fatal(err)
	}
	if result.Name != "viridis" {
		t.Errorf("default ramp name = %q, want viridis", result.Name)
	}
	if result.Colormap != nil {
		t.Error("named strategy should not emit an explicit colormap")
	}
	if result.Low != 10 || result.High != 900 {
		t.Errorf("rescale bounds = %g,%g, want 10,900", result.Low, result.High)
	}
}

func TestColormapJSON_round_trip(t *testing.T) {
	result, err := PercentileStrategy{}.Build(demStats())
	if err != nil {
		t.Fatal(err)
	}
	raw, err := result.ColormapJSON()
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string][4]uint8
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("colormap JSON does not parse: %v", err)
	}
	if len(decoded) != len(result.Colormap) {
		t.Errorf("decoded %d entries, want %d", len(decoded), len(result.Colormap))
	}
}

func TestForName(t *testing.T) {
	if _, ok := ForName("named", "magma").(NamedStrategy); !ok {
		t.Error("expected NamedStrategy for \"named\"")
	}
	if _, ok := ForName("", "").(PercentileStrategy); !ok {
		t.Error("expected PercentileStrategy fallback")
	}
}

func keys(m map[string][4]uint8) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
