package api

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
)

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	stats, _, err := handler.statsService.BuildCycleStats(handler.currentTime())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load stats")
	}
	return c.JSON(services.NewStatsReport(stats))
}

func (handler *Handler) GetStatsChart(c *fiber.Ctx) error {
	var output bytes.Buffer
	if err := handler.statsService.RenderChart(&output, handler.currentTime()); err != nil {
		if errors.Is(err, services.ErrNotEnoughCycleHistory) {
			return apiError(c, fiber.StatusNotFound, "not enough cycle history")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to render chart")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(output.Bytes())
}

func (handler *Handler) GetOverview(c *fiber.Ctx) error {
	now := handler.currentTime()
	summary, err := handler.statsService.BuildTodaySummary(now)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load overview")
	}
	return c.JSON(overviewView{
		Today: services.FormatDay(services.DateAtLocation(now, handler.location)),
		Stats: services.NewStatsReport(summary.Stats),
		Day:   buildDayStatusView(summary.Today),
		Phase: summary.PhaseInfo,
	})
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	now := handler.currentTime()
	month, err := parseMonthQuery(c.Query("month"), now, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	days, stats, err := handler.statsService.BuildCalendar(month, now)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load calendar")
	}
	return c.JSON(buildCalendarView(month, days, stats))
}

func (handler *Handler) GetTags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"symptoms": models.SymptomCatalog(),
		"moods":    models.MoodCatalog(),
	})
}

func (handler *Handler) GetTagFrequencies(c *fiber.Ctx) error {
	frequencies, err := handler.tagService.CalculateFrequencies()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load tag frequencies")
	}
	return c.JSON(frequencies)
}
