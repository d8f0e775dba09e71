package services

import (
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

type StatsDayReader interface {
	FetchAllLogs() (models.DayLogSet, error)
}

type StatsSettingsReader interface {
	LoadSettings() (models.UserSettings, error)
}

// Snapshot is the complete set of inputs the cycle core reads.
type Snapshot struct {
	Logs     models.DayLogSet
	Settings models.UserSettings
}

type TodaySummary struct {
	Stats     CycleStats
	Today     DayStatus
	PhaseInfo *PhaseInfo
}

type StatsService struct {
	days     StatsDayReader
	settings StatsSettingsReader
	location *time.Location
}

func NewStatsService(days StatsDayReader, settings StatsSettingsReader, location *time.Location) *StatsService {
	if location == nil {
		location = time.UTC
	}
	return &StatsService{
		days:     days,
		settings: settings,
		location: location,
	}
}

func (service *StatsService) LoadSnapshot() (Snapshot, error) {
	logs, err := service.days.FetchAllLogs()
	if err != nil {
		return Snapshot{}, err
	}
	settings, err := service.settings.LoadSettings()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Logs: logs, Settings: settings}, nil
}

func (service *StatsService) BuildCycleStats(now time.Time) (CycleStats, Snapshot, error) {
	snapshot, err := service.LoadSnapshot()
	if err != nil {
		return CycleStats{}, Snapshot{}, err
	}
	return ComputeStats(snapshot.Logs, snapshot.Settings, now, service.location), snapshot, nil
}

func (service *StatsService) BuildTodaySummary(now time.Time) (TodaySummary, error) {
	stats, snapshot, err := service.BuildCycleStats(now)
	if err != nil {
		return TodaySummary{}, err
	}

	today := ResolveDayStatus(DateAtLocation(now, service.location), stats, snapshot.Logs)
	summary := TodaySummary{Stats: stats, Today: today}
	if info, ok := PhaseDetails(today.Phase); ok {
		summary.PhaseInfo = &info
	}
	return summary, nil
}

func (service *StatsService) BuildCalendar(month time.Time, now time.Time) ([]CalendarDay, CycleStats, error) {
	stats, snapshot, err := service.BuildCycleStats(now)
	if err != nil {
		return nil, CycleStats{}, err
	}
	return BuildCalendarMonth(month, stats, snapshot.Logs, now, service.location), stats, nil
}
