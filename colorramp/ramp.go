// Package colorramp derives tile-service colormaps from precomputed raster
// pixel statistics. Rescale bounds are always the 2nd and 98th percentiles,
// so outlier pixels do not flatten the visible range.
package colorramp

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/naturalcap/geoviewer/models"
)

// Stop pairs a percentile rank with the color the ramp passes through there.
type Stop struct {
	Percentile float64
	Color      color.RGBA
}

// DefaultStops is a viridis-derived six-stop ramp over the precomputed
// percentile ranks.
var DefaultStops = []Stop{
	{Percentile: 2, Color: color.RGBA{R: 68, G: 1, B: 84, A: 255}},
	{Percentile: 20, Color: color.RGBA{R: 65, G: 68, B: 135, A: 255}},
	{Percentile: 40, Color: color.RGBA{R: 42, G: 120, B: 142, A: 255}},
	{Percentile: 60, Color: color.RGBA{R: 34, G: 168, B: 132, A: 255}},
	{Percentile: 80, Color: color.RGBA{R: 122, G: 209, B: 81, A: 255}},
	{Percentile: 98, Color: color.RGBA{R: 253, G: 231, B: 37, A: 255}},
}

// Result is what the tile service needs to color a raster layer: either an
// explicit pixel-index colormap or a named ramp, plus the rescale bounds
// applied before coloring.
type Result struct {
	// Colormap maps pixel indices ("0".."255") to RGBA tuples. Nil when a
	// named ramp is used instead.
	Colormap map[string][4]uint8
	// Name is the tile service's identifier for a built-in ramp.
	Name string
	Low  float64
	High float64
}

// RescaleParam renders the bounds in the "low,high" form the tile service
// expects.
func (r Result) RescaleParam() string {
	return strconv.FormatFloat(r.Low, 'f', -1, 64) + "," + strconv.FormatFloat(r.High, 'f', -1, 64)
}

// ColormapJSON serializes the explicit colormap for embedding in a tile URL.
func (r Result) ColormapJSON() (string, error) {
	data, err := json.Marshal(r.Colormap)
	if err != nil {
		return "", fmt.Errorf("serializing colormap: %w", err)
	}
	return string(data), nil
}

// Strategy builds a Result from one layer's statistics. Two policies exist:
// an explicit multi-color percentile ramp and a named single-hue ramp with a
// plain 2-98 rescale. Both honor the same rescale-bound contract.
type Strategy interface {
	Build(stats models.RasterStats) (Result, error)
}

// PercentileStrategy spreads configured color stops across the 0-255 pixel
// range according to where each stop's percentile value falls between the
// layer's min and max.
type PercentileStrategy struct {
	// Stops must be ordered by percentile rank. Empty means DefaultStops.
	Stops []Stop
}

func (s PercentileStrategy) Build(stats models.RasterStats) (Result, error) {
	stops := s.Stops
	if len(stops) == 0 {
		stops = DefaultStops
	}

	cm := make(map[string][4]uint8, len(stops))
	for i, stop := range stops {
		v, ok := stats.Percentile(stop.Percentile)
		if !ok {
			return Result{}, fmt.Errorf("no precomputed statistic for percentile %g", stop.Percentile)
		}

		idx := pixelIndex(v, stats.Min, stats.Max)
		// The ramp must span the full output range: the tile service clips
		// silently outside the colormap's keys. Pin the outermost stops.
		if i == 0 {
			idx = 0
		}
		if i == len(stops)-1 {
			idx = 255
		}
		c := stop.Color
		cm[strconv.Itoa(idx)] = [4]uint8{c.R, c.G, c.B, c.A}
	}

	return Result{Colormap: cm, Low: stats.P2, High: stats.P98}, nil
}

// NamedStrategy defers coloring to a ramp built into the tile service.
type NamedStrategy struct {
	Name string
}

func (s NamedStrategy) Build(stats models.RasterStats) (Result, error) {
	name := s.Name
	if name == "" {
		name = "viridis"
	}
	return Result{Name: name, Low: stats.P2, High: stats.P98}, nil
}

// ForName resolves a stored strategy identifier. Unrecognized identifiers
// fall back to the percentile ramp.
func ForName(strategy, rampName string) Strategy {
	if strategy == "named" {
		return NamedStrategy{Name: rampName}
	}
	return PercentileStrategy{}
}

// pixelIndex maps a raw statistic value onto the 0-255 ramp. Degenerate
// statistics (max == min) would divide by zero under the linear scale; the
// clamp rules collapse to 0 below max and 255 at or above it, so no NaN ever
// reaches a color.
func pixelIndex(v, min, max float64) int {
	if max == min {
		if v >= max {
			return 255
		}
		return 0
	}
	t := (v - min) / (max - min)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return int(math.Round(t * 255))
}
