package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

var (
	ErrDayEntryLoadFailed   = errors.New("load day entry failed")
	ErrDayEntrySaveFailed   = errors.New("save day entry failed")
	ErrDeleteDayFailed      = errors.New("delete day failed")
	ErrDayLogListFailed     = errors.New("list day logs failed")
	ErrInvalidDayRangeOrder = errors.New("day range start is after end")
)

type DayLogRepository interface {
	ListAll() ([]models.DayLog, error)
	ListRange(fromDate string, toDate string) ([]models.DayLog, error)
	FindByDate(date string) (models.DayLog, bool, error)
	Upsert(entry *models.DayLog) error
	DeleteByDate(date string) error
}

type DayService struct {
	logs     DayLogRepository
	location *time.Location
}

func NewDayService(logs DayLogRepository, location *time.Location) *DayService {
	if location == nil {
		location = time.UTC
	}
	return &DayService{
		logs:     logs,
		location: location,
	}
}

func (service *DayService) FetchAllLogs() (models.DayLogSet, error) {
	logs, err := service.logs.ListAll()
	if err != nil {
		return nil, ErrDayLogListFailed
	}
	return models.NewDayLogSet(logs), nil
}

func (service *DayService) FetchLogsForRange(from time.Time, to time.Time) ([]models.DayLog, error) {
	fromDay := DateAtLocation(from, service.location)
	toDay := DateAtLocation(to, service.location)
	if fromDay.After(toDay) {
		return nil, ErrInvalidDayRangeOrder
	}
	logs, err := service.logs.ListRange(FormatDay(fromDay), FormatDay(toDay))
	if err != nil {
		return nil, ErrDayLogListFailed
	}
	return logs, nil
}

// FetchLogByDate returns an empty entry for days without a stored log.
func (service *DayService) FetchLogByDate(day time.Time) (models.DayLog, bool, error) {
	key := FormatDay(DateAtLocation(day, service.location))
	entry, found, err := service.logs.FindByDate(key)
	if err != nil {
		return models.DayLog{}, false, ErrDayEntryLoadFailed
	}
	if !found {
		return models.DayLog{
			Date:     key,
			Symptoms: []string{},
			Moods:    []string{},
		}, false, nil
	}
	return entry, true, nil
}

func (service *DayService) UpsertDayEntry(day time.Time, input DayEntryInput) (models.DayLog, error) {
	normalized, err := NormalizeDayEntryInput(input)
	if err != nil {
		return models.DayLog{}, err
	}

	entry := models.DayLog{
		Date:         FormatDay(DateAtLocation(day, service.location)),
		IsPeriod:     normalized.IsPeriod,
		Intensity:    normalized.Intensity,
		Symptoms:     normalized.Symptoms,
		Moods:        normalized.Moods,
		Notes:        normalized.Notes,
		MedicalNotes: normalized.MedicalNotes,
		WaterIntake:  normalized.WaterIntake,
		SleepHours:   normalized.SleepHours,
	}
	if err := service.logs.Upsert(&entry); err != nil {
		return models.DayLog{}, ErrDayEntrySaveFailed
	}
	return entry, nil
}

func (service *DayService) DeleteDay(day time.Time) error {
	key := FormatDay(DateAtLocation(day, service.location))
	if err := service.logs.DeleteByDate(key); err != nil {
		return ErrDeleteDayFailed
	}
	return nil
}
