package migrations

import (
	"log"

	"github.com/naturalcap/geoviewer/database"
	"github.com/naturalcap/geoviewer/models"
)

func Migrate() {
	// Create the schema if it doesn't exist
	createSchema := `
	CREATE SCHEMA IF NOT EXISTS map_server;
	`

	err := database.DB.Exec(createSchema).Error
	if err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	database.DB.AutoMigrate(
		&models.MapRecord{},
		&models.MapLayerRecord{},
	)

	uniqueLayerName := `
	CREATE UNIQUE INDEX IF NOT EXISTS map_layers_map_id_name
	ON map_server.map_layers (map_id, name);
	`
	if err := database.DB.Exec(uniqueLayerName).Error; err != nil {
		log.Fatalf("Failed to create layer name index: %v", err)
	}
}
