package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	location        *time.Location
	now             func() time.Time
	repositories    *db.Repositories
	dayService      *services.DayService
	settingsService *services.SettingsService
	statsService    *services.StatsService
	tagService      *services.TagService
	backupService   *services.BackupService
}

func NewHandler(database *gorm.DB, location *time.Location) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if location == nil {
		location = time.UTC
	}

	handler := &Handler{
		location: location,
		now:      time.Now,
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) currentTime() time.Time {
	return handler.now().In(handler.location)
}
