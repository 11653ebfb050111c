package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naturalcap/geoviewer/colorramp"
	"github.com/naturalcap/geoviewer/composer"
	"github.com/naturalcap/geoviewer/config"
	"github.com/naturalcap/geoviewer/maplayer"
	"github.com/naturalcap/geoviewer/sprite"
)

// GetLegend returns the legend registration for a stored map: every planned
// layer keyed by name.
func GetLegend(c *fiber.Ctx) error {
	record, err := maplayer.FetchMapRecord(c.Params("id"))
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

	planner := composer.Planner{
		TitilerURL: config.Config.TitilerURL,
		Strategy:   colorramp.ForName(record.RampStrategy, record.RampName),
	}
	plan, err := planner.Plan(record.ToConfig())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error composing legend",
			"error":   err.Error(),
		})
	}

	return c.JSON(plan.Legend)
}

// GetSprite serves a map's legend sprite sheet; ?format=json returns the
// sprite index instead of the image.
func GetSprite(c *fiber.Ctx) error {
	record, err := maplayer.FetchMapRecord(c.Params("id"))
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

	sheet, err := sprite.BuildForMap(record)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error building sprite",
			"error":   err.Error(),
		})
	}

	if c.Query("format") == "json" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(sheet.Index)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(sheet.PNG)
}
