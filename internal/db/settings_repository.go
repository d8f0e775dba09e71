package db

import (
	"github.com/terraincognita07/bloom/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

func (repo *SettingsRepository) Load() (models.UserSettings, bool, error) {
	settings := models.UserSettings{}
	result := repo.database.Where("id = ?", models.DefaultUserSettings().ID).Limit(1).Find(&settings)
	if result.Error != nil {
		return models.UserSettings{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.UserSettings{}, false, nil
	}
	return settings, true, nil
}

func (repo *SettingsRepository) Save(settings *models.UserSettings) error {
	return saveSettings(repo.database, settings)
}

// ReplaceAll swaps the whole snapshot in one transaction.
func (repo *SettingsRepository) ReplaceAll(logs []models.DayLog, settings models.UserSettings) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.DayLog{}).Error; err != nil {
			return err
		}
		if len(logs) > 0 {
			if err := tx.CreateInBatches(logs, 200).Error; err != nil {
				return err
			}
		}
		return saveSettings(tx, &settings)
	})
}

func saveSettings(database *gorm.DB, settings *models.UserSettings) error {
	*settings = settings.WithDefaults()
	return database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(settings).Error
}
