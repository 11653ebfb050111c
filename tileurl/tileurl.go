// Package tileurl assembles parameterized tile-service URLs. Building is
// pure string work: no retries, no caching, and malformed inputs simply
// produce a URL the tile service will reject downstream.
package tileurl

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/naturalcap/geoviewer/colorramp"
)

const (
	tileJSONPath = "/cog/WebMercatorQuad/tilejson.json"
	pointPath    = "/cog/point/"
)

// RasterTileJSON builds the TileJSON URL for one raster layer, combining the
// layer's data URL with the colormap and rescale bounds. Every parameter
// value is percent-encoded individually.
func RasterTileJSON(base, layerURL string, result colorramp.Result) (string, error) {
	params := url.Values{}
	params.Set("tile_scale", "1")
	params.Set("url", layerURL)
	params.Set("bidx", "1")
	params.Set("format", "png")
	params.Set("rescale", result.RescaleParam())

	if result.Colormap != nil {
		cm, err := result.ColormapJSON()
		if err != nil {
			return "", err
		}
		params.Set("colormap", cm)
		params.Set("colormap_type", "linear")
	} else {
		params.Set("colormap_name", result.Name)
	}

	return NormalizeBase(base) + tileJSONPath + "?" + params.Encode(), nil
}

// PointQuery builds the pixel-value lookup URL for a clicked coordinate.
func PointQuery(base string, lng, lat float64, layerURL string) string {
	params := url.Values{}
	params.Set("url", layerURL)

	coords := strconv.FormatFloat(lng, 'f', -1, 64) + "," + strconv.FormatFloat(lat, 'f', -1, 64)
	return NormalizeBase(base) + pointPath + coords + "?" + params.Encode()
}

// NormalizeBase trims a trailing slash and prepends https:// when the base
// carries no protocol.
func NormalizeBase(base string) string {
	b := strings.TrimSuffix(base, "/")
	hasProtocol := strings.HasPrefix(b, "http://") || strings.HasPrefix(b, "https://")
	if !hasProtocol {
		b = "https://" + b
	}
	return b
}
