package maplayer

import (
	"log"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/naturalcap/geoviewer/database"
	"github.com/naturalcap/geoviewer/models"
	"gorm.io/gorm"
)

func init() {
	// Initialize the cache with Ristretto
	var err error
	mapCache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,     // number of keys to track frequency of (10M)
		MaxCost:     1 << 30, // maximum cost of cache (1GB)
		BufferItems: 64,      // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
}

var mapCache *ristretto.Cache

// FetchMapRecord loads a stored map with its layer rows in layer order,
// cached for an hour.
func FetchMapRecord(mapID string) (models.MapRecord, error) {
	mapID = strings.TrimSpace(mapID)

	if cached, found := mapCache.Get(mapID); found {
		record, ok := cached.(models.MapRecord)
		if ok {
			return record, nil
		}
	}

	var record models.MapRecord
	err := database.DB.Preload("Layers", func(db *gorm.DB) *gorm.DB {
		return db.Order("layer_order ASC")
	}).Where("id = ?", mapID).First(&record).Error
	if err != nil {
		return record, err
	}

	mapCache.SetWithTTL(mapID, record, 1, 60*time.Minute)
	mapCache.Wait()

	return record, nil
}

// Invalidate drops a map from the cache after its configuration changes.
func Invalidate(mapID string) {
	mapCache.Del(strings.TrimSpace(mapID))
}
