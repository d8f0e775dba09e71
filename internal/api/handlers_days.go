package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
)

type dayPayload struct {
	IsPeriod     bool     `json:"isPeriod"`
	Intensity    string   `json:"intensity" validate:"intensity"`
	Symptoms     []string `json:"symptoms" validate:"omitempty,max=64,dive,required"`
	Moods        []string `json:"moods" validate:"omitempty,max=64,dive,required"`
	Notes        string   `json:"notes"`
	MedicalNotes string   `json:"medicalNotes"`
	WaterIntake  *int     `json:"waterIntake" validate:"omitempty,min=0"`
	SleepHours   *int     `json:"sleepHours" validate:"omitempty,min=0,max=24"`
}

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	rawFrom := strings.TrimSpace(c.Query("from"))
	rawTo := strings.TrimSpace(c.Query("to"))
	if rawFrom == "" && rawTo == "" {
		logs, err := handler.dayService.FetchAllLogs()
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
		}
		return c.JSON(logs.Sorted())
	}

	from, err := parseDayParam(rawFrom, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseDayParam(rawTo, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}

	logs, err := handler.dayService.FetchLogsForRange(from, to)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDayRangeOrder) {
			return apiError(c, fiber.StatusBadRequest, "invalid range")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}
	return c.JSON(logs)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, _, err := handler.dayService.FetchLogByDate(day)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch day")
	}
	return c.JSON(entry)
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := dayPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if fields := validatePayload(payload); len(fields) > 0 {
		return validationError(c, fields)
	}

	entry, err := handler.dayService.UpsertDayEntry(day, services.DayEntryInput{
		IsPeriod:     payload.IsPeriod,
		Intensity:    models.Intensity(payload.Intensity),
		Symptoms:     payload.Symptoms,
		Moods:        payload.Moods,
		Notes:        payload.Notes,
		MedicalNotes: payload.MedicalNotes,
		WaterIntake:  payload.WaterIntake,
		SleepHours:   payload.SleepHours,
	})
	if err != nil {
		status, message := mapDayWriteError(err)
		return apiError(c, status, message)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	if err := handler.dayService.DeleteDay(day); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete day")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapDayWriteError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidDayIntensity):
		return fiber.StatusBadRequest, "invalid intensity"
	case errors.Is(err, services.ErrUnknownSymptom):
		return fiber.StatusBadRequest, "unknown symptom"
	case errors.Is(err, services.ErrUnknownMood):
		return fiber.StatusBadRequest, "unknown mood"
	case errors.Is(err, services.ErrInvalidWaterIntake):
		return fiber.StatusBadRequest, "invalid water intake"
	case errors.Is(err, services.ErrInvalidSleepHours):
		return fiber.StatusBadRequest, "invalid sleep hours"
	default:
		return fiber.StatusInternalServerError, "failed to save day"
	}
}
