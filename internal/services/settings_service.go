package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

var (
	ErrSettingsLoadFailed = errors.New("load settings failed")
	ErrSettingsSaveFailed = errors.New("save settings failed")
)

type SettingsRepository interface {
	Load() (models.UserSettings, bool, error)
	Save(settings *models.UserSettings) error
}

type SettingsService struct {
	settings SettingsRepository
	location *time.Location
}

func NewSettingsService(settings SettingsRepository, location *time.Location) *SettingsService {
	if location == nil {
		location = time.UTC
	}
	return &SettingsService{
		settings: settings,
		location: location,
	}
}

// LoadSettings never returns a partially valid record: a missing row yields
// the defaults and stored zero values are repaired.
func (service *SettingsService) LoadSettings() (models.UserSettings, error) {
	stored, found, err := service.settings.Load()
	if err != nil {
		return models.DefaultUserSettings(), ErrSettingsLoadFailed
	}
	if !found {
		return models.DefaultUserSettings(), nil
	}
	stored = stored.WithDefaults()
	if stored.LastPeriodStartManual != "" {
		if _, ok := ParseDay(stored.LastPeriodStartManual, service.location); !ok {
			stored.LastPeriodStartManual = ""
		}
	}
	return stored, nil
}

func (service *SettingsService) SaveSettings(settings models.UserSettings) (models.UserSettings, error) {
	settings = settings.WithDefaults()
	if err := service.settings.Save(&settings); err != nil {
		return models.UserSettings{}, ErrSettingsSaveFailed
	}
	return settings, nil
}
