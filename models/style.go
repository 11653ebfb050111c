package models

// Source and style-layer descriptors handed to the renderer. One struct per
// renderer layer type; paint properties live in their own sub-structs so the
// serialized shape matches what the renderer expects verbatim.

type RasterSource struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	TileSize int    `json:"tileSize,omitempty"`
}

type GeoJSONSource struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

type RasterStyleLayer struct {
	ID     string           `json:"id"`
	Type   string           `json:"type"`
	Source string           `json:"source"`
	Paint  RasterLayerPaint `json:"paint"`
}

type RasterLayerPaint struct {
	// RasterOpacity holds a zoom interpolation expression.
	RasterOpacity []interface{} `json:"raster-opacity"`
}

type FillLayer struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Source string         `json:"source"`
	Paint  FillLayerPaint `json:"paint"`
}

type FillLayerPaint struct {
	FillColor   string  `json:"fill-color"`
	FillOpacity float64 `json:"fill-opacity"`
}

type LineLayer struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Source string         `json:"source"`
	Paint  LineLayerPaint `json:"paint"`
}

type LineLayerPaint struct {
	LineColor string  `json:"line-color"`
	LineWidth float64 `json:"line-width"`
}

type CircleLayer struct {
	ID     string           `json:"id"`
	Type   string           `json:"type"`
	Source string           `json:"source"`
	Paint  CircleLayerPaint `json:"paint"`
}

type CircleLayerPaint struct {
	CircleColor       string  `json:"circle-color"`
	CircleRadius      float64 `json:"circle-radius"`
	CircleStrokeWidth float64 `json:"circle-stroke-width,omitempty"`
	CircleStrokeColor string  `json:"circle-stroke-color,omitempty"`
}

type SpriteMeta struct {
	X          int `json:"x"`
	Y          int `json:"y"`
	Width      int `json:"width"`
	Height     int `json:"height"`
	PixelRatio int `json:"pixelRatio"`
}
