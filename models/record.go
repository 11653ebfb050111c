package models

import (
	"time"

	"gorm.io/gorm"
)

// MapRecord is the stored configuration for one map instance.
type MapRecord struct {
	ID              string           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title           string           `gorm:"column:title" json:"title"`
	Description     *string          `gorm:"column:description" json:"description"`
	MinLng          float64          `gorm:"column:min_lng" json:"min_lng"`
	MinLat          float64          `gorm:"column:min_lat" json:"min_lat"`
	MaxLng          float64          `gorm:"column:max_lng" json:"max_lng"`
	MaxLat          float64          `gorm:"column:max_lat" json:"max_lat"`
	MinZoom         float64          `gorm:"column:minzoom" json:"minzoom"`
	MaxZoom         float64          `gorm:"column:maxzoom" json:"maxzoom"`
	RampStrategy    string           `gorm:"column:ramp_strategy" json:"ramp_strategy"`
	RampName        string           `gorm:"column:ramp_name" json:"ramp_name"`
	PopupAllMatches bool             `gorm:"column:popup_all_matches;default:true" json:"popup_all_matches"`
	CreatedAt       time.Time        `gorm:"column:created_at" json:"-"`
	UpdatedAt       time.Time        `gorm:"column:updated_at" json:"-"`
	DeletedAt       gorm.DeletedAt   `gorm:"column:deleted_at" json:"-"`
	Layers          []MapLayerRecord `gorm:"foreignKey:MapID" json:"layers"`
}

func (m *MapRecord) TableName() string {
	return "map_server.maps"
}

// MapLayerRecord is one stored layer row. Raster statistics columns are
// nullable; they are only populated for raster layers.
type MapLayerRecord struct {
	ID         string   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MapID      string   `gorm:"column:map_id;type:uuid" json:"map_id"`
	Name       string   `gorm:"column:name" json:"name"`
	LayerType  string   `gorm:"column:layer_type" json:"type"`
	URL        string   `gorm:"column:url" json:"url"`
	VectorType *string  `gorm:"column:vector_type" json:"vector_type,omitempty"`
	Marker     *string  `gorm:"column:marker" json:"marker,omitempty"`
	LayerOrder int      `gorm:"column:layer_order" json:"layer_order"`
	PixelMin   *float64 `gorm:"column:pixel_min_value" json:"pixel_min_value,omitempty"`
	PixelMax   *float64 `gorm:"column:pixel_max_value" json:"pixel_max_value,omitempty"`
	P2         *float64 `gorm:"column:pixel_percentile_2" json:"pixel_percentile_2,omitempty"`
	P20        *float64 `gorm:"column:pixel_percentile_20" json:"pixel_percentile_20,omitempty"`
	P40        *float64 `gorm:"column:pixel_percentile_40" json:"pixel_percentile_40,omitempty"`
	P60        *float64 `gorm:"column:pixel_percentile_60" json:"pixel_percentile_60,omitempty"`
	P80        *float64 `gorm:"column:pixel_percentile_80" json:"pixel_percentile_80,omitempty"`
	P98        *float64 `gorm:"column:pixel_percentile_98" json:"pixel_percentile_98,omitempty"`
}

func (m *MapLayerRecord) TableName() string {
	return "map_server.map_layers"
}

// ToLayer converts a stored row into its descriptor variant.
func (m MapLayerRecord) ToLayer() Layer {
	switch LayerType(m.LayerType) {
	case LayerTypeRaster:
		return RasterLayer{
			Name: m.Name,
			URL:  m.URL,
			Stats: RasterStats{
				Min: deref(m.PixelMin),
				Max: deref(m.PixelMax),
				P2:  deref(m.P2),
				P20: deref(m.P20),
				P40: deref(m.P40),
				P60: deref(m.P60),
				P80: deref(m.P80),
				P98: deref(m.P98),
			},
		}
	case LayerTypeVector:
		kind := GeometryKind("")
		if m.VectorType != nil {
			kind = GeometryKind(*m.VectorType)
		}
		return VectorLayer{Name: m.Name, URL: m.URL, Kind: kind}
	}
	return UnknownLayer{Name: m.Name, TypeName: m.LayerType}
}

// ToConfig assembles the stored rows into a MapConfig. Layer rows are
// expected in layer_order.
func (m MapRecord) ToConfig() MapConfig {
	cfg := MapConfig{
		Map: MapOptions{
			Bounds:  [4]float64{m.MinLng, m.MinLat, m.MaxLng, m.MaxLat},
			MinZoom: m.MinZoom,
			MaxZoom: m.MaxZoom,
		},
		Layers: make([]Layer, 0, len(m.Layers)),
	}
	for _, row := range m.Layers {
		cfg.Layers = append(cfg.Layers, row.ToLayer())
	}
	return cfg
}

// LayerRecords converts a decoded configuration into storable rows, keeping
// the list order.
func LayerRecords(cfg MapConfig) []MapLayerRecord {
	rows := make([]MapLayerRecord, 0, len(cfg.Layers))
	for i, layer := range cfg.Layers {
		row := MapLayerRecord{
			Name:       layer.Key(),
			LayerType:  string(layer.Type()),
			LayerOrder: i,
		}
		switch l := layer.(type) {
		case RasterLayer:
			row.URL = l.URL
			s := l.Stats
			row.PixelMin = ptr(s.Min)
			row.PixelMax = ptr(s.Max)
			row.P2 = ptr(s.P2)
			row.P20 = ptr(s.P20)
			row.P40 = ptr(s.P40)
			row.P60 = ptr(s.P60)
			row.P80 = ptr(s.P80)
			row.P98 = ptr(s.P98)
		case VectorLayer:
			row.URL = l.URL
			kind := string(l.Kind)
			row.VectorType = &kind
		}
		rows = append(rows, row)
	}
	return rows
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func ptr(v float64) *float64 { return &v }
