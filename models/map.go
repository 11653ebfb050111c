package models

// MapView is the composed, renderer-ready view of one stored map: ordered
// sources and style layers plus the legend registration. Built per request
// and never mutated afterward.
type MapView struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	Map         MapOptions        `json:"map"`
	MapboxStyle string            `json:"mapbox_style,omitempty"`
	Sources     map[string]any    `json:"sources"`
	Layers      []any             `json:"layers"`
	Legend      map[string]string `json:"legend"`
	Sprite      string            `json:"sprite,omitempty"`
}
