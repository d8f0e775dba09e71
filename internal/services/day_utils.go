package services

import (
	"strings"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// ParseDay parses an ISO calendar date. Dates such as 2024-02-30 are rejected.
func ParseDay(raw string, location *time.Location) (time.Time, bool) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(raw), location)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func FormatDay(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(models.DateLayout)
}

func AddDays(value time.Time, days int) time.Time {
	return value.AddDate(0, 0, days)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween counts calendar days from start to end. DST shifts do not
// affect the result because both ends are re-anchored in UTC. Unix seconds
// keep the count exact for dates further apart than time.Duration can hold.
func DaysBetween(start time.Time, end time.Time) int {
	startYear, startMonth, startDay := start.Date()
	endYear, endMonth, endDay := end.Date()
	from := time.Date(startYear, startMonth, startDay, 0, 0, 0, 0, time.UTC)
	to := time.Date(endYear, endMonth, endDay, 0, 0, 0, 0, time.UTC)
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

func sameCalendarDay(a time.Time, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return FormatDay(a) == FormatDay(b)
}

func DayHasData(entry models.DayLog) bool {
	if entry.IsPeriod {
		return true
	}
	if len(entry.Symptoms) > 0 || len(entry.Moods) > 0 {
		return true
	}
	if strings.TrimSpace(entry.Notes) != "" || strings.TrimSpace(entry.MedicalNotes) != "" {
		return true
	}
	return entry.WaterIntake != nil || entry.SleepHours != nil
}
