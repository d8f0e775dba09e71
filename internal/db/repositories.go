package db

import "gorm.io/gorm"

type Repositories struct {
	DayLogs  *DayLogRepository
	Settings *SettingsRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		DayLogs:  NewDayLogRepository(database),
		Settings: NewSettingsRepository(database),
	}
}
