package api

import (
	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.dayService = services.NewDayService(handler.repositories.DayLogs, handler.location)
	handler.settingsService = services.NewSettingsService(handler.repositories.Settings, handler.location)
	handler.statsService = services.NewStatsService(handler.dayService, handler.settingsService, handler.location)
	handler.tagService = services.NewTagService(handler.dayService)
	handler.backupService = services.NewBackupService(handler.statsService, handler.repositories.Settings, handler.location)
	return handler
}
