package geoviewer

import (
	"log"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/naturalcap/geoviewer/config"
	"github.com/naturalcap/geoviewer/controllers"
	"github.com/naturalcap/geoviewer/database"
	"github.com/naturalcap/geoviewer/database/migrations"
	"github.com/naturalcap/geoviewer/database/seeds"
	"github.com/naturalcap/geoviewer/logger"
	"github.com/naturalcap/geoviewer/metrics"
)

// Set mounts the map-composition service on a fiber app: map views, click
// inspection, legends, sprites and metrics.
func Set(app *fiber.App) {
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	slog.SetDefault(logger.New(config.Config.LogLevel, config.Config.LogFormat))

	if config.Config.DatabaseDSN != "" {
		if err := database.Connect(config.Config.DatabaseDSN); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if config.Config.Migrate {
			migrations.Migrate()
		}
		if config.Config.Seed {
			seeds.Seed()
		}
	}

	m := metrics.New()
	controllers.Setup(m)

	a := app.Group("/mapserver/api")
	a.Get("/map/:id", controllers.GetMap)
	a.Post("/maps", controllers.SaveMap)
	a.Post("/popup/:id", controllers.GetPopup)
	a.Get("/legend/:id", controllers.GetLegend)
	a.Get("/sprite/:id", controllers.GetSprite)

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
}
