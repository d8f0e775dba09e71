package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5

	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	settingsRowID = 1
)

// UserSettings is the single owner-wide settings record.
type UserSettings struct {
	ID                    uint      `gorm:"primaryKey" json:"-" yaml:"-"`
	AvgCycleLength        int       `gorm:"not null;default:28" json:"avgCycleLength" yaml:"avgCycleLength"`
	AvgPeriodLength       int       `gorm:"not null;default:5" json:"avgPeriodLength" yaml:"avgPeriodLength"`
	LastPeriodStartManual string    `gorm:"not null;default:''" json:"lastPeriodStartManual,omitempty" yaml:"lastPeriodStartManual,omitempty"`
	Theme                 string    `gorm:"not null;default:light" json:"theme" yaml:"theme"`
	UpdatedAt             time.Time `json:"-" yaml:"-"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

func DefaultUserSettings() UserSettings {
	return UserSettings{
		ID:              settingsRowID,
		AvgCycleLength:  DefaultCycleLength,
		AvgPeriodLength: DefaultPeriodLength,
		Theme:           ThemeLight,
	}
}

// WithDefaults replaces missing or non-positive fields with defaults.
func (settings UserSettings) WithDefaults() UserSettings {
	settings.ID = settingsRowID
	if settings.AvgCycleLength <= 0 {
		settings.AvgCycleLength = DefaultCycleLength
	}
	if settings.AvgPeriodLength <= 0 {
		settings.AvgPeriodLength = DefaultPeriodLength
	}
	switch settings.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		settings.Theme = ThemeLight
	}
	return settings
}
