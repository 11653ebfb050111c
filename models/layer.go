package models

import (
	"encoding/json"
	"fmt"
)

type LayerType string

const (
	LayerTypeRaster LayerType = "raster"
	LayerTypeVector LayerType = "vector"
)

type GeometryKind string

const (
	GeometryPoint   GeometryKind = "Point"
	GeometryLine    GeometryKind = "Line"
	GeometryPolygon GeometryKind = "Polygon"
)

// Layer describes one map overlay. The concrete shape depends on the layer
// type, so the variants live behind this interface and MapConfig dispatches
// on the "type" tag while decoding. Key doubles as the source id and the
// style-layer id handed to the renderer, so it must be unique per map.
type Layer interface {
	Key() string
	Type() LayerType
}

// RasterStats holds the precomputed pixel statistics of a raster layer.
// Percentile values are expected to be non-decreasing with rank.
type RasterStats struct {
	Min float64 `json:"pixel_min_value"`
	Max float64 `json:"pixel_max_value"`
	P2  float64 `json:"pixel_percentile_2"`
	P20 float64 `json:"pixel_percentile_20"`
	P40 float64 `json:"pixel_percentile_40"`
	P60 float64 `json:"pixel_percentile_60"`
	P80 float64 `json:"pixel_percentile_80"`
	P98 float64 `json:"pixel_percentile_98"`
}

// Percentile returns the precomputed value for one of the known ranks.
func (s RasterStats) Percentile(p float64) (float64, bool) {
	switch p {
	case 2:
		return s.P2, true
	case 20:
		return s.P20, true
	case 40:
		return s.P40, true
	case 60:
		return s.P60, true
	case 80:
		return s.P80, true
	case 98:
		return s.P98, true
	}
	return 0, false
}

type RasterLayer struct {
	Name  string
	URL   string
	Stats RasterStats
}

func (l RasterLayer) Key() string     { return l.Name }
func (l RasterLayer) Type() LayerType { return LayerTypeRaster }

type VectorLayer struct {
	Name string
	URL  string
	Kind GeometryKind
}

func (l VectorLayer) Key() string     { return l.Name }
func (l VectorLayer) Type() LayerType { return LayerTypeVector }

// UnknownLayer preserves descriptors whose type is not recognized. Decoding
// keeps them so composition can warn and drop the layer instead of failing
// the whole map.
type UnknownLayer struct {
	Name     string
	TypeName string
}

func (l UnknownLayer) Key() string     { return l.Name }
func (l UnknownLayer) Type() LayerType { return LayerType(l.TypeName) }

type MapOptions struct {
	Bounds  [4]float64 `json:"bounds"`
	MinZoom float64    `json:"minzoom"`
	MaxZoom float64    `json:"maxzoom"`
}

// MapConfig is the full layer-list configuration for one map instance. It is
// the source of truth for the session and is never mutated after decoding.
type MapConfig struct {
	Map    MapOptions `json:"map"`
	Layers []Layer    `json:"layers"`
}

type layerEnvelope struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	VectorType string `json:"vector_type"`
	RasterStats
}

func (c *MapConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		Map    MapOptions      `json:"map"`
		Layers []layerEnvelope `json:"layers"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Map = raw.Map
	c.Layers = make([]Layer, 0, len(raw.Layers))
	for _, env := range raw.Layers {
		c.Layers = append(c.Layers, env.toLayer())
	}
	return nil
}

func (e layerEnvelope) toLayer() Layer {
	switch LayerType(e.Type) {
	case LayerTypeRaster:
		return RasterLayer{Name: e.Name, URL: e.URL, Stats: e.RasterStats}
	case LayerTypeVector:
		return VectorLayer{Name: e.Name, URL: e.URL, Kind: GeometryKind(e.VectorType)}
	}
	return UnknownLayer{Name: e.Name, TypeName: e.Type}
}

// Validate enforces the invariants a MapConfig must hold before it is
// accepted: unique layer names and a geometry kind on every vector layer.
func (c MapConfig) Validate() error {
	seen := make(map[string]bool, len(c.Layers))
	for _, layer := range c.Layers {
		name := layer.Key()
		if name == "" {
			return fmt.Errorf("layer without a name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate layer name %q", name)
		}
		seen[name] = true

		if vl, ok := layer.(VectorLayer); ok {
			switch vl.Kind {
			case GeometryPoint, GeometryLine, GeometryPolygon:
			default:
				return fmt.Errorf("layer %q: unsupported vector type %q", name, vl.Kind)
			}
		}
	}
	return nil
}
