// Package internal contains core application functionality
package internal

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"panorama/internal/http"
)

// apiCORSConfig is the CORS configuration for the dashboard API. The
// renderer is a browser app that may be served from another origin (TV
// displays load it straight from a CDN), so reads are open.
var apiCORSConfig = cors.Config{
	AllowOrigins: "*",
	AllowMethods: "GET,OPTIONS",
	AllowHeaders: "Origin, Content-Type, Accept, Authorization",
}

// MountAppRoutes mounts all application routes on the fiber app
func MountAppRoutes(app *fiber.App, handler *http.Handler, health *http.HealthHandler) {
	app.Get("/health", health.Get)

	api := app.Group("/api/v1", cors.New(apiCORSConfig))
	api.Get("/report", handler.GetReport)
	api.Get("/systems/:key", handler.GetSystemDetail)
	api.Get("/systems/:key/kpis", handler.GetSystemKpis)
	api.Get("/systems/:key/series", handler.GetSystemSeries)
}
