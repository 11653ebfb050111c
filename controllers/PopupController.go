package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naturalcap/geoviewer/inspector"
	"github.com/naturalcap/geoviewer/maplayer"
)

// GetPopup resolves a map click against a stored map's layers and returns
// the matches plus popup-ready HTML. A click that hits nothing returns an
// empty match list; the widget shows no popup for it.
func GetPopup(c *fiber.Ctx) error {
	id := c.Params("id")

	var click inspector.ClickContext
	if err := c.BodyParser(&click); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid input",
			"error":   err.Error(),
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

	// Per-map popup policy; the shared feature cache is reused.
	scoped := *ins
	scoped.Options = inspector.Options{AllMatches: record.PopupAllMatches}

	matches, err := scoped.Inspect(c.Context(), record.ToConfig(), click)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error inspecting click",
			"error":   err.Error(),
		})
	}
	mx.InspectionsTotal.Inc()

	return c.JSON(fiber.Map{
		"anchor":  []float64{click.Lng, click.Lat},
		"matches": matches,
		"html":    inspector.FormatMatches(matches),
	})
}
