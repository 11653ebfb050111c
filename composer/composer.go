// Package composer turns a map's layer list into renderer-ready source and
// style-layer descriptors. Composition is synchronous and pure: no shared
// state beyond the read-only configuration, safe to call repeatedly.
package composer

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/naturalcap/geoviewer/colorramp"
	"github.com/naturalcap/geoviewer/models"
	"github.com/naturalcap/geoviewer/tileurl"
)

// Palette is rotated through by list position for vector layers. Layers past
// the end wrap around and reuse colors; the wraparound is intentional.
var Palette = []string{"#e41a1c", "#377eb8", "#4daf4a", "#984ea3"}

const (
	circleRadius = 5.0
	lineWidth    = 2.0
	fillOpacity  = 0.5

	// OutlineSuffix distinguishes a polygon's outline layer id from its fill
	// layer id, which keeps the layer's own name.
	OutlineSuffix = "-outline"

	// Raster opacity ramps up with zoom so overlays do not drown basemap
	// detail when zoomed out.
	rasterOpacityAtMinZoom = 0.35
	rasterOpaqueAfterZooms = 6.0
)

// PaletteColor returns the palette entry for a layer at the given list
// position.
func PaletteColor(index int) string {
	return Palette[index%len(Palette)]
}

// Plan is the composed output for one map: sources keyed by layer name with
// their add order preserved, style layers in draw order, and the legend
// registration.
type Plan struct {
	Sources     map[string]any
	SourceOrder []string
	Layers      []any
	Legend      map[string]string
	// Dropped lists layers excluded because their type or geometry kind is
	// not supported.
	Dropped []string
}

// Planner composes plans against one tile-service endpoint with one raster
// styling strategy.
type Planner struct {
	TitilerURL string
	Strategy   colorramp.Strategy
	Log        *slog.Logger
}

// draw-order priority, bottom first: rasters under fills under lines under
// point markers, so vector overlays stay visible above raster basemaps.
const (
	priorityRaster = iota
	priorityFill
	priorityLine
	priorityCircle
)

type plannedLayer struct {
	priority int
	layer    any
}

// Plan builds sources and style layers for every supported layer in the
// configuration. Unsupported layers are logged and dropped; composition
// continues for the rest.
func (p Planner) Plan(cfg models.MapConfig) (Plan, error) {
	strategy := p.Strategy
	if strategy == nil {
		strategy = colorramp.PercentileStrategy{}
	}
	log := p.Log
	if log == nil {
		log = slog.Default()
	}

	plan := Plan{
		Sources: make(map[string]any, len(cfg.Layers)),
		Legend:  make(map[string]string, len(cfg.Layers)),
	}
	var planned []plannedLayer

	for i, layer := range cfg.Layers {
		name := layer.Key()

		switch l := layer.(type) {
		case models.RasterLayer:
			result, err := strategy.Build(l.Stats)
			if err != nil {
				return Plan{}, fmt.Errorf("layer %q: %w", name, err)
			}
			tileJSON, err := tileurl.RasterTileJSON(p.TitilerURL, l.URL, result)
			if err != nil {
				return Plan{}, fmt.Errorf("layer %q: %w", name, err)
			}

			plan.addSource(name, models.RasterSource{Type: "raster", URL: tileJSON, TileSize: 256})
			planned = append(planned, plannedLayer{priorityRaster, models.RasterStyleLayer{
				ID:     name,
				Type:   "raster",
				Source: name,
				Paint:  models.RasterLayerPaint{RasterOpacity: rasterOpacity(cfg.Map)},
			}})
			plan.Legend[name] = name

		case models.VectorLayer:
			color := PaletteColor(i)

			switch l.Kind {
			case models.GeometryPoint:
				planned = append(planned, plannedLayer{priorityCircle, models.CircleLayer{
					ID:     name,
					Type:   "circle",
					Source: name,
					Paint:  models.CircleLayerPaint{CircleColor: color, CircleRadius: circleRadius},
				}})
			case models.GeometryLine:
				planned = append(planned, plannedLayer{priorityLine, models.LineLayer{
					ID:     name,
					Type:   "line",
					Source: name,
					Paint:  models.LineLayerPaint{LineColor: color, LineWidth: lineWidth},
				}})
			case models.GeometryPolygon:
				// Outline first, then fill; both share the polygon's palette
				// color. The fill keeps the layer's own id.
				planned = append(planned, plannedLayer{priorityLine, models.LineLayer{
					ID:     name + OutlineSuffix,
					Type:   "line",
					Source: name,
					Paint:  models.LineLayerPaint{LineColor: color, LineWidth: lineWidth},
				}})
				planned = append(planned, plannedLayer{priorityFill, models.FillLayer{
					ID:     name,
					Type:   "fill",
					Source: name,
					Paint:  models.FillLayerPaint{FillColor: color, FillOpacity: fillOpacity},
				}})
			default:
				log.Warn("dropping layer with unsupported geometry type",
					"layer", name, "geometry_type", string(l.Kind))
				plan.Dropped = append(plan.Dropped, name)
				continue
			}

			plan.addSource(name, models.GeoJSONSource{Type: "geojson", Data: l.URL})
			plan.Legend[name] = name

		default:
			log.Warn("dropping layer with unsupported type",
				"layer", name, "type", string(layer.Type()))
			plan.Dropped = append(plan.Dropped, name)
		}
	}

	sort.SliceStable(planned, func(a, b int) bool {
		return planned[a].priority < planned[b].priority
	})
	plan.Layers = make([]any, len(planned))
	for i, pl := range planned {
		plan.Layers[i] = pl.layer
	}

	return plan, nil
}

func (p *Plan) addSource(name string, src any) {
	p.Sources[name] = src
	p.SourceOrder = append(p.SourceOrder, name)
}

// rasterOpacity builds the zoom interpolation expression: faint at the map's
// minimum zoom, fully opaque a few zoom levels in (capped at maxzoom).
func rasterOpacity(opts models.MapOptions) []interface{} {
	full := opts.MinZoom + rasterOpaqueAfterZooms
	if opts.MaxZoom > opts.MinZoom && full > opts.MaxZoom {
		full = opts.MaxZoom
	}
	if full <= opts.MinZoom {
		full = opts.MinZoom + 1
	}
	return []interface{}{
		"interpolate", []interface{}{"linear"}, []interface{}{"zoom"},
		opts.MinZoom, rasterOpacityAtMinZoom,
		full, 1.0,
	}
}

// VectorStyleLayerIDs lists the style-layer ids a click should be tested
// against, in draw order: every planned vector layer id, fills and outlines
// included.
func (p Plan) VectorStyleLayerIDs() []string {
	var ids []string
	for _, layer := range p.Layers {
		switch l := layer.(type) {
		case models.FillLayer:
			ids = append(ids, l.ID)
		case models.LineLayer:
			ids = append(ids, l.ID)
		case models.CircleLayer:
			ids = append(ids, l.ID)
		}
	}
	return ids
}
