package main

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/naturalcap/geoviewer"
	"github.com/naturalcap/geoviewer/config"
)

func main() {
	app := fiber.New()
	geoviewer.Set(app)

	addr := ":" + strconv.Itoa(config.Config.Port)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
