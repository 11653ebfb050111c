// Package inspector answers map clicks: it resolves which layers were hit,
// reads or fetches the underlying values, and formats a popup-ready summary.
package inspector

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/naturalcap/geoviewer/models"
)

// ReportedFeature is a feature the renderer already resolved for a click
// (the layer-scoped click-event protocol). When a click arrives with these,
// hit testing is skipped and the features are formatted directly.
type ReportedFeature struct {
	Layer      string         `json:"layer"`
	Properties map[string]any `json:"properties"`
}

// ClickContext carries one click. Lng/Lat locate it, Zoom scales the hit
// tolerance, Features optionally carry renderer-resolved hits.
type ClickContext struct {
	Lng      float64           `json:"lng"`
	Lat      float64           `json:"lat"`
	Zoom     float64           `json:"zoom"`
	Features []ReportedFeature `json:"features,omitempty"`
}

// Property is one formatted key/value row of a match.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Match is one hit feature, grouped under its owning layer.
type Match struct {
	Layer      string     `json:"layer"`
	Properties []Property `json:"properties"`
}

// Options controls inspection behavior. AllMatches decides what happens when
// overlapping features of different layers sit under one click: every hit
// gets a block, or only the topmost.
type Options struct {
	AllMatches bool
}

// Inspector resolves clicks against one map configuration.
type Inspector struct {
	TitilerURL string
	Cache      *FeatureCache
	Options    Options
	Log        *slog.Logger
	// OnPointError, when set, is called for each failed point query.
	OnPointError func()

	client *http.Client
}

func New(titilerURL string, client *http.Client, opts Options) *Inspector {
	if client == nil {
		client = http.DefaultClient
	}
	return &Inspector{
		TitilerURL: titilerURL,
		Cache:      NewFeatureCache(client),
		Options:    opts,
		Log:        slog.Default(),
		client:     client,
	}
}

// Inspect resolves a click to zero or more matches. Two sub-protocols:
// vector layers are hit-tested against their fetched features (or the
// renderer's pre-resolved ones), and a map holding exactly one raster layer
// answers with a tile-service point query. A click matching neither
// condition is a no-op. Errors from the tile service degrade to "no value"
// rather than surfacing to the user.
func (ins *Inspector) Inspect(ctx context.Context, cfg models.MapConfig, click ClickContext) ([]Match, error) {
	if len(click.Features) > 0 {
		return ins.fromReported(click.Features), nil
	}

	var vectors []models.VectorLayer
	for _, layer := range cfg.Layers {
		if vl, ok := layer.(models.VectorLayer); ok {
			vectors = append(vectors, vl)
		}
	}

	if len(vectors) > 0 {
		return ins.inspectVectors(ctx, vectors, click)
	}

	if len(cfg.Layers) == 1 {
		if rl, ok := cfg.Layers[0].(models.RasterLayer); ok {
			return ins.inspectRaster(ctx, rl, click), nil
		}
	}

	return nil, nil
}

// fromReported formats renderer-resolved features, one block per feature,
// grouped by owning layer. The renderer reports topmost first.
func (ins *Inspector) fromReported(features []ReportedFeature) []Match {
	matches := make([]Match, 0, len(features))
	for _, f := range features {
		matches = append(matches, Match{Layer: f.Layer, Properties: orderedProperties(f.Properties)})
	}
	if !ins.Options.AllMatches && len(matches) > 1 {
		matches = matches[:1]
	}
	return matches
}

// inspectVectors hit-tests the clicked point against each vector layer's
// features, topmost layer first (later list position draws on top).
func (ins *Inspector) inspectVectors(ctx context.Context, vectors []models.VectorLayer, click ClickContext) ([]Match, error) {
	pt := orb.Point{click.Lng, click.Lat}
	tolerance := clickTolerance(click.Zoom)

	var matches []Match
	for i := len(vectors) - 1; i >= 0; i-- {
		layer := vectors[i]

		collection, err := ins.Cache.FeatureCollection(ctx, layer.URL)
		if err != nil {
			ins.Log.Warn("skipping layer during inspection", "layer", layer.Name, "error", err)
			continue
		}

		for _, feature := range collection.Features {
			if !featureHit(feature.Geometry, pt, tolerance) {
				continue
			}
			matches = append(matches, Match{
				Layer:      layer.Name,
				Properties: orderedProperties(feature.Properties),
			})
			if !ins.Options.AllMatches {
				return matches, nil
			}
		}
	}
	return matches, nil
}

// inspectRaster runs the tile-service point query. Failures and empty
// responses both suppress the popup.
func (ins *Inspector) inspectRaster(ctx context.Context, layer models.RasterLayer, click ClickContext) []Match {
	values, err := ins.pointValue(ctx, click.Lng, click.Lat, layer.URL)
	if err != nil {
		ins.Log.Warn("raster point query failed", "layer", layer.Name, "error", err)
		if ins.OnPointError != nil {
			ins.OnPointError()
		}
		return nil
	}
	if len(values) == 0 {
		return nil
	}

	return []Match{{
		Layer:      layer.Name,
		Properties: []Property{{Key: "value", Value: formatValue(values[0])}},
	}}
}

// orderedProperties flattens a property map into deterministic key order.
func orderedProperties(props map[string]any) []Property {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Property, 0, len(keys))
	for _, k := range keys {
		out = append(out, Property{Key: k, Value: formatValue(props[k])})
	}
	return out
}

func formatValue(v any) string {
	return fmt.Sprintf("%v", v)
}

// PopupClass scopes popup markup away from ambient page styling.
const PopupClass = "geoviewer-popup"

// FormatMatches renders matches as popup HTML: one block per match with the
// owning layer as heading and one key/value row per property.
func FormatMatches(matches []Match) string {
	if len(matches) == 0 {
		return ""
	}

	var b strings.Builder
	for _, m := range matches {
		b.WriteString(`<div class="` + PopupClass + `">`)
		b.WriteString("<h4>" + html.EscapeString(m.Layer) + "</h4>")
		for _, p := range m.Properties {
			b.WriteString("<div><strong>" + html.EscapeString(p.Key) + "</strong>: " + html.EscapeString(p.Value) + "</div>")
		}
		b.WriteString("</div>")
	}
	return b.String()
}
