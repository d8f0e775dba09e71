package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
	app.Use(handler.NotFound)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	days := api.Group("/days")
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date", requireJSONBody, handler.UpsertDay)
	days.Delete("/:date", handler.DeleteDay)

	api.Get("/settings", handler.GetSettings)
	api.Put("/settings", requireJSONBody, handler.UpdateSettings)
	api.Delete("/data", handler.ClearAllData)

	api.Get("/stats", handler.GetStats)
	api.Get("/stats/chart.png", handler.GetStatsChart)
	api.Get("/overview", handler.GetOverview)
	api.Get("/calendar", handler.GetCalendar)

	tags := api.Group("/tags")
	tags.Get("", handler.GetTags)
	tags.Get("/frequencies", handler.GetTagFrequencies)

	api.Get("/export/json", handler.ExportJSON)
	api.Get("/export/csv", handler.ExportCSV)
	api.Post("/import/json", requireJSONBody, handler.ImportJSON)
}
