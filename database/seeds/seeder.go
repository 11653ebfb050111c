package seeds

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/naturalcap/geoviewer/database"
	"github.com/naturalcap/geoviewer/models"
)

//go:embed demo_maps.json
var demoMaps []byte

// Seed loads the bundled demo maps. Existing maps with the same title are
// left untouched.
func Seed() {
	var records []models.MapRecord
	if err := json.Unmarshal(demoMaps, &records); err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	for _, record := range records {
		var existing models.MapRecord
		err := database.DB.Where("title = ?", record.Title).First(&existing).Error
		if err == nil {
			continue
		}

		if err := database.DB.Create(&record).Error; err != nil {
			log.Fatalf("Failed to seed map %q: %v", record.Title, err)
		}
	}

	fmt.Println("Seed data successfully loaded into the database.")
}
