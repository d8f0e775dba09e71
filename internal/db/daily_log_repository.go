package db

import (
	"github.com/terraincognita07/bloom/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var dayLogUpsertColumns = []string{
	"is_period",
	"intensity",
	"symptoms",
	"moods",
	"notes",
	"medical_notes",
	"water_intake",
	"sleep_hours",
	"updated_at",
}

type DayLogRepository struct {
	database *gorm.DB
}

func NewDayLogRepository(database *gorm.DB) *DayLogRepository {
	return &DayLogRepository{database: database}
}

func (repo *DayLogRepository) ListAll() ([]models.DayLog, error) {
	logs := make([]models.DayLog, 0)
	if err := repo.database.Order("date ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListRange returns logs between two ISO dates, both inclusive.
func (repo *DayLogRepository) ListRange(fromDate string, toDate string) ([]models.DayLog, error) {
	logs := make([]models.DayLog, 0)
	if err := repo.database.
		Where("date >= ? AND date <= ?", fromDate, toDate).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DayLogRepository) FindByDate(date string) (models.DayLog, bool, error) {
	entry := models.DayLog{}
	result := repo.database.Where("date = ?", date).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.DayLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DayLog{}, false, nil
	}
	return entry, true, nil
}

// Upsert writes the entry keyed by date; the last write wins.
func (repo *DayLogRepository) Upsert(entry *models.DayLog) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns(dayLogUpsertColumns),
	}).Create(entry).Error
}

func (repo *DayLogRepository) DeleteByDate(date string) error {
	return repo.database.Where("date = ?", date).Delete(&models.DayLog{}).Error
}
