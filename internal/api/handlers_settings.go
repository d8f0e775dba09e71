package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
)

// settingsPayload is a partial update: omitted fields keep their stored value.
type settingsPayload struct {
	AvgCycleLength        *int    `json:"avgCycleLength" validate:"omitempty,min=15,max=90"`
	AvgPeriodLength       *int    `json:"avgPeriodLength" validate:"omitempty,min=1,max=14"`
	LastPeriodStartManual *string `json:"lastPeriodStartManual" validate:"omitempty,isodate"`
	Theme                 *string `json:"theme" validate:"omitempty,oneof=light dark system"`
}

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.settingsService.LoadSettings()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	return c.JSON(settings)
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	payload := settingsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	// An empty string clears the manual anchor.
	clearAnchor := payload.LastPeriodStartManual != nil && *payload.LastPeriodStartManual == ""
	if clearAnchor {
		payload.LastPeriodStartManual = nil
	}
	if fields := validatePayload(payload); len(fields) > 0 {
		return validationError(c, fields)
	}

	current, err := handler.settingsService.LoadSettings()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	input := services.SettingsInput{
		AvgCycleLength:        current.AvgCycleLength,
		AvgPeriodLength:       current.AvgPeriodLength,
		LastPeriodStartManual: current.LastPeriodStartManual,
		Theme:                 current.Theme,
	}
	if payload.AvgCycleLength != nil {
		input.AvgCycleLength = *payload.AvgCycleLength
	}
	if payload.AvgPeriodLength != nil {
		input.AvgPeriodLength = *payload.AvgPeriodLength
	}
	if payload.LastPeriodStartManual != nil {
		input.LastPeriodStartManual = *payload.LastPeriodStartManual
	}
	if clearAnchor {
		input.LastPeriodStartManual = ""
	}
	if payload.Theme != nil {
		input.Theme = *payload.Theme
	}

	validated, err := handler.settingsService.ValidateSettings(input, handler.currentTime())
	if err != nil {
		status, message := mapSettingsError(err)
		return apiError(c, status, message)
	}
	saved, err := handler.settingsService.SaveSettings(validated)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save settings")
	}
	return c.JSON(saved)
}

// ClearAllData removes every log and restores default settings.
func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	if err := handler.backupService.ClearAll(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear data")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapSettingsError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrSettingsCycleLengthOutOfRange):
		return fiber.StatusBadRequest, "invalid cycle length"
	case errors.Is(err, services.ErrSettingsPeriodLengthOutOfRange):
		return fiber.StatusBadRequest, "invalid period length"
	case errors.Is(err, services.ErrSettingsCycleStartDateInvalid):
		return fiber.StatusBadRequest, "invalid last period start"
	case errors.Is(err, services.ErrSettingsThemeInvalid):
		return fiber.StatusBadRequest, "invalid theme"
	default:
		return fiber.StatusInternalServerError, "failed to save settings"
	}
}
