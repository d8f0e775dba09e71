package services

import (
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

type DayStatus struct {
	Date              time.Time
	IsMenstruation    bool
	IsPredictedPeriod bool
	IsOvulation       bool
	IsFertile         bool
	DayOfCycle        int
	Phase             Phase
	Log               *models.DayLog
}

type CalendarDay struct {
	DayStatus
	DateString string
	Day        int
	InMonth    bool
	IsToday    bool
	HasData    bool
}

// ResolveDayStatus projects stats onto a single date. The cycle day uses the
// same wrap as CycleStats.CurrentDayOfCycle, so both agree for today.
func ResolveDayStatus(date time.Time, stats CycleStats, logs models.DayLogSet) DayStatus {
	key := FormatDay(date)
	status := DayStatus{
		Date:              date,
		IsPredictedPeriod: sameCalendarDay(date, stats.NextPeriodDate),
		IsOvulation:       sameCalendarDay(date, stats.OvulationDate),
	}

	if entry, ok := logs[key]; ok {
		logEntry := entry
		status.Log = &logEntry
		status.IsMenstruation = entry.IsPeriod
	}

	for _, fertileDay := range stats.FertileWindow {
		if sameCalendarDay(date, fertileDay) {
			status.IsFertile = true
			break
		}
	}

	status.DayOfCycle = DayOfCycle(stats.LastPeriodStart, date, stats.AvgCycleLength)
	if status.DayOfCycle > 0 {
		status.Phase = ClassifyPhase(status.DayOfCycle, stats)
	}
	return status
}

// CalendarGridRange returns the first and last visible day of a Sunday-first month grid.
func CalendarGridRange(monthStart time.Time) (time.Time, time.Time) {
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, monthStart.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := AddDays(monthStart, -int(monthStart.Weekday()))
	gridEnd := AddDays(monthEnd, 6-int(monthEnd.Weekday()))
	return gridStart, gridEnd
}

func BuildCalendarMonth(monthStart time.Time, stats CycleStats, logs models.DayLogSet, now time.Time, location *time.Location) []CalendarDay {
	if location == nil {
		location = time.UTC
	}
	monthStart = DateAtLocation(monthStart, location)
	gridStart, gridEnd := CalendarGridRange(monthStart)
	todayKey := FormatDay(DateAtLocation(now, location))

	days := make([]CalendarDay, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = AddDays(day, 1) {
		status := ResolveDayStatus(day, stats, logs)
		key := FormatDay(day)
		hasData := status.Log != nil && DayHasData(*status.Log)

		days = append(days, CalendarDay{
			DayStatus:  status,
			DateString: key,
			Day:        day.Day(),
			InMonth:    day.Month() == monthStart.Month(),
			IsToday:    key == todayKey,
			HasData:    hasData,
		})
	}
	return days
}
