package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naturalcap/geoviewer/colorramp"
	"github.com/naturalcap/geoviewer/composer"
	"github.com/naturalcap/geoviewer/config"
	"github.com/naturalcap/geoviewer/database"
	"github.com/naturalcap/geoviewer/maplayer"
	"github.com/naturalcap/geoviewer/models"
)

// GetMap loads a stored map and returns its composed, renderer-ready view:
// sources, style layers in draw order, legend and sprite location.
func GetMap(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "ID parameter is required",
		})
	}

	record, err := maplayer.FetchMapRecord(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Map not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error retrieving map",
			"error":   err.Error(),
		})
	}

	cfg := record.ToConfig()
	planner := composer.Planner{
		TitilerURL: config.Config.TitilerURL,
		Strategy:   colorramp.ForName(record.RampStrategy, record.RampName),
	}

	start := time.Now()
	plan, err := planner.Plan(cfg)
	mx.ComposeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error composing map",
			"error":   err.Error(),
		})
	}
	mx.CompositionsTotal.Inc()
	mx.LayersDroppedTotal.Add(float64(len(plan.Dropped)))

	view := models.MapView{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		Map:         cfg.Map,
		MapboxStyle: config.Config.MapboxStyle,
		Sources:     plan.Sources,
		Layers:      plan.Layers,
		Legend:      plan.Legend,
		Sprite:      "/mapserver/api/sprite/" + record.ID,
	}
	return c.JSON(view)
}

type saveMapInput struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Config          string `json:"config"`
	RampStrategy    string `json:"ramp_strategy"`
	RampName        string `json:"ramp_name"`
	PopupAllMatches *bool  `json:"popup_all_matches"`
}

// SaveMap registers a map from the host's configuration blob, or replaces an
// existing one when an id is supplied.
func SaveMap(c *fiber.Ctx) error {
	var input saveMapInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid input",
			"error":   err.Error(),
		})
	}
	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Title is required",
		})
	}

	var cfg models.MapConfig
	if err := config.DecodeHostBlob(input.Config, &cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid map configuration",
			"error":   err.Error(),
		})
	}
	if err := cfg.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid map configuration",
			"error":   err.Error(),
		})
	}

	record := models.MapRecord{
		ID:              input.ID,
		Title:           input.Title,
		MinLng:          cfg.Map.Bounds[0],
		MinLat:          cfg.Map.Bounds[1],
		MaxLng:          cfg.Map.Bounds[2],
		MaxLat:          cfg.Map.Bounds[3],
		MinZoom:         cfg.Map.MinZoom,
		MaxZoom:         cfg.Map.MaxZoom,
		RampStrategy:    input.RampStrategy,
		RampName:        input.RampName,
		PopupAllMatches: input.PopupAllMatches == nil || *input.PopupAllMatches,
		Layers:          models.LayerRecords(cfg),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if input.ID != "" {
			if err := tx.Where("map_id = ?", input.ID).Delete(&models.MapLayerRecord{}).Error; err != nil {
				return err
			}
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error saving map",
			"error":   err.Error(),
		})
	}

	maplayer.Invalidate(record.ID)
	return c.Status(fiber.StatusCreated).JSON(record)
}
