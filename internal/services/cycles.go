package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

const (
	LutealPhaseDays   = 14
	fertileDaysBefore = 3
	fertileDaysAfter  = 1
)

type PeriodGroup struct {
	Start  time.Time
	End    time.Time
	Length int
}

// CycleStats is derived from the log history and settings on every evaluation.
// Zero dates and a zero CurrentDayOfCycle mean "not known".
type CycleStats struct {
	AvgCycleLength    int
	AvgPeriodLength   int
	LastPeriodStart   time.Time
	NextPeriodDate    time.Time
	OvulationDate     time.Time
	FertileWindow     []time.Time
	CurrentDayOfCycle int
	PeriodGroups      []PeriodGroup
}

func (stats CycleStats) HasAnchor() bool {
	return !stats.LastPeriodStart.IsZero()
}

func ComputeStats(logs models.DayLogSet, settings models.UserSettings, now time.Time, location *time.Location) CycleStats {
	if location == nil {
		location = time.UTC
	}
	settings = settings.WithDefaults()

	groups := GroupPeriods(periodDays(logs, location))
	stats := CycleStats{
		AvgCycleLength:  settings.AvgCycleLength,
		AvgPeriodLength: settings.AvgPeriodLength,
		FertileWindow:   []time.Time{},
		PeriodGroups:    groups,
	}

	if len(groups) >= 2 {
		stats.AvgCycleLength = roundedMean(cycleLengths(groups))
	}
	if len(groups) >= 1 {
		lengths := make([]int, 0, len(groups))
		for _, group := range groups {
			lengths = append(lengths, group.Length)
		}
		stats.AvgPeriodLength = roundedMean(lengths)
	}

	anchor, ok := resolveAnchor(groups, settings, location)
	if !ok {
		return stats
	}

	stats.LastPeriodStart = anchor
	stats.NextPeriodDate = AddDays(anchor, stats.AvgCycleLength)
	stats.OvulationDate = AddDays(stats.NextPeriodDate, -LutealPhaseDays)
	for offset := -fertileDaysBefore; offset <= fertileDaysAfter; offset++ {
		stats.FertileWindow = append(stats.FertileWindow, AddDays(stats.OvulationDate, offset))
	}

	today := DateAtLocation(now, location)
	stats.CurrentDayOfCycle = DayOfCycle(anchor, today, stats.AvgCycleLength)
	return stats
}

// DayOfCycle returns the 1-based position of day within the cycle that
// started at anchor, wrapping every cycleLength days. It returns 0 when
// day is before anchor.
func DayOfCycle(anchor time.Time, day time.Time, cycleLength int) int {
	if anchor.IsZero() || cycleLength <= 0 {
		return 0
	}
	diff := DaysBetween(anchor, day) + 1
	if diff <= 0 {
		return 0
	}
	return ((diff - 1) % cycleLength) + 1
}

// GroupPeriods splits ascending period days into runs of consecutive dates.
func GroupPeriods(days []time.Time) []PeriodGroup {
	groups := make([]PeriodGroup, 0)
	for _, day := range days {
		if len(groups) > 0 {
			current := &groups[len(groups)-1]
			if DaysBetween(current.End, day) == 1 {
				current.End = day
				current.Length++
				continue
			}
		}
		groups = append(groups, PeriodGroup{Start: day, End: day, Length: 1})
	}
	return groups
}

func periodDays(logs models.DayLogSet, location *time.Location) []time.Time {
	days := make([]time.Time, 0, len(logs))
	for key, entry := range logs {
		if !entry.IsPeriod {
			continue
		}
		day, ok := ParseDay(key, location)
		if !ok {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

func cycleLengths(groups []PeriodGroup) []int {
	if len(groups) < 2 {
		return nil
	}
	lengths := make([]int, 0, len(groups)-1)
	for i := 1; i < len(groups); i++ {
		lengths = append(lengths, DaysBetween(groups[i-1].Start, groups[i].Start))
	}
	return lengths
}

func resolveAnchor(groups []PeriodGroup, settings models.UserSettings, location *time.Location) (time.Time, bool) {
	if len(groups) > 0 {
		return groups[len(groups)-1].Start, true
	}
	if settings.LastPeriodStartManual == "" {
		return time.Time{}, false
	}
	return ParseDay(settings.LastPeriodStartManual, location)
}

// roundedMean rounds half up; callers guarantee a non-empty slice.
func roundedMean(values []int) int {
	total := 0
	for _, value := range values {
		total += value
	}
	return int(float64(total)/float64(len(values)) + 0.5)
}
