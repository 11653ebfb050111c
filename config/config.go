package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// GlobalConfig carries the service endpoints and process settings. It is
// populated once at startup and read-only afterwards.
type GlobalConfig struct {
	MapboxAPIKey string `envconfig:"MAPBOX_API_KEY" json:"mapbox_api_key"`
	MapboxStyle  string `envconfig:"MAPBOX_STYLE" default:"mapbox://styles/mapbox/light-v10" json:"mapbox_style"`
	TitilerURL   string `envconfig:"TITILER_URL" default:"https://titiler.xyz" json:"titiler_url"`
	DatabaseDSN  string `envconfig:"DATABASE_DSN" json:"-"`
	Port         int    `envconfig:"PORT" default:"8080" json:"-"`
	Migrate      bool   `envconfig:"MIGRATE" json:"-"`
	Seed         bool   `envconfig:"SEED" json:"-"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info" json:"-"`
	LogFormat    string `envconfig:"LOG_FORMAT" default:"json" json:"-"`
}

var Config GlobalConfig

// Load reads an optional .env file and then the GEOVIEWER_* environment.
// A missing .env is not an error; system env and defaults still apply.
func Load() error {
	_ = godotenv.Load()
	return envconfig.Process("geoviewer", &Config)
}

// ApplyHostBlob overlays service endpoints supplied by a host page blob on
// top of the environment-loaded configuration.
func ApplyHostBlob(blob string) error {
	return DecodeHostBlob(blob, &Config)
}
