package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

const (
	MinCycleLength  = 15
	MaxCycleLength  = 90
	MinPeriodLength = 1
	MaxPeriodLength = 14
)

var (
	ErrSettingsCycleLengthOutOfRange  = errors.New("settings cycle length out of range")
	ErrSettingsPeriodLengthOutOfRange = errors.New("settings period length out of range")
	ErrSettingsCycleStartDateInvalid  = errors.New("settings cycle start date invalid")
	ErrSettingsThemeInvalid           = errors.New("settings theme invalid")
)

type SettingsInput struct {
	AvgCycleLength        int
	AvgPeriodLength       int
	LastPeriodStartManual string
	Theme                 string
}

func IsValidCycleLength(value int) bool {
	return value >= MinCycleLength && value <= MaxCycleLength
}

func IsValidPeriodLength(value int) bool {
	return value >= MinPeriodLength && value <= MaxPeriodLength
}

// ValidateSettings checks a settings form. The manual anchor may be empty
// but must not lie in the future.
func (service *SettingsService) ValidateSettings(input SettingsInput, now time.Time) (models.UserSettings, error) {
	if !IsValidCycleLength(input.AvgCycleLength) {
		return models.UserSettings{}, ErrSettingsCycleLengthOutOfRange
	}
	if !IsValidPeriodLength(input.AvgPeriodLength) {
		return models.UserSettings{}, ErrSettingsPeriodLengthOutOfRange
	}

	theme := strings.ToLower(strings.TrimSpace(input.Theme))
	switch theme {
	case "":
		theme = models.ThemeLight
	case models.ThemeLight, models.ThemeDark, models.ThemeSystem:
	default:
		return models.UserSettings{}, ErrSettingsThemeInvalid
	}

	settings := models.UserSettings{
		AvgCycleLength:  input.AvgCycleLength,
		AvgPeriodLength: input.AvgPeriodLength,
		Theme:           theme,
	}

	rawDate := strings.TrimSpace(input.LastPeriodStartManual)
	if rawDate == "" {
		return settings.WithDefaults(), nil
	}
	parsedDay, ok := ParseDay(rawDate, service.location)
	if !ok {
		return models.UserSettings{}, ErrSettingsCycleStartDateInvalid
	}
	if parsedDay.After(DateAtLocation(now, service.location)) {
		return models.UserSettings{}, ErrSettingsCycleStartDateInvalid
	}
	settings.LastPeriodStartManual = FormatDay(parsedDay)
	return settings.WithDefaults(), nil
}
