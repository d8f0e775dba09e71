package services

import "time"

// StatsReport is the serialized form of CycleStats. Unknown dates and an
// unknown cycle day are rendered as null.
type StatsReport struct {
	AvgCycleLength    int                 `json:"avgCycleLength" yaml:"avgCycleLength"`
	AvgPeriodLength   int                 `json:"avgPeriodLength" yaml:"avgPeriodLength"`
	LastPeriodStart   *string             `json:"lastPeriodStart" yaml:"lastPeriodStart"`
	NextPeriodDate    *string             `json:"nextPeriodDate" yaml:"nextPeriodDate"`
	OvulationDate     *string             `json:"ovulationDate" yaml:"ovulationDate"`
	FertileWindow     []string            `json:"fertileWindow" yaml:"fertileWindow"`
	CurrentDayOfCycle *int                `json:"currentDayOfCycle" yaml:"currentDayOfCycle"`
	PeriodGroups      []PeriodGroupReport `json:"periodGroups" yaml:"periodGroups"`
}

type PeriodGroupReport struct {
	Start  string `json:"start" yaml:"start"`
	End    string `json:"end" yaml:"end"`
	Length int    `json:"length" yaml:"length"`
}

type DayStatusReport struct {
	Date              string  `json:"date" yaml:"date"`
	IsMenstruation    bool    `json:"isMenstruation" yaml:"isMenstruation"`
	IsPredictedPeriod bool    `json:"isPredictedPeriod" yaml:"isPredictedPeriod"`
	IsOvulation       bool    `json:"isOvulation" yaml:"isOvulation"`
	IsFertile         bool    `json:"isFertile" yaml:"isFertile"`
	DayOfCycle        *int    `json:"dayOfCycle" yaml:"dayOfCycle"`
	Phase             *string `json:"phase" yaml:"phase"`
}

func NewStatsReport(stats CycleStats) StatsReport {
	report := StatsReport{
		AvgCycleLength:    stats.AvgCycleLength,
		AvgPeriodLength:   stats.AvgPeriodLength,
		LastPeriodStart:   nullableDay(stats.LastPeriodStart),
		NextPeriodDate:    nullableDay(stats.NextPeriodDate),
		OvulationDate:     nullableDay(stats.OvulationDate),
		FertileWindow:     make([]string, 0, len(stats.FertileWindow)),
		CurrentDayOfCycle: nullableCycleDay(stats.CurrentDayOfCycle),
		PeriodGroups:      make([]PeriodGroupReport, 0, len(stats.PeriodGroups)),
	}
	for _, day := range stats.FertileWindow {
		report.FertileWindow = append(report.FertileWindow, FormatDay(day))
	}
	for _, group := range stats.PeriodGroups {
		report.PeriodGroups = append(report.PeriodGroups, PeriodGroupReport{
			Start:  FormatDay(group.Start),
			End:    FormatDay(group.End),
			Length: group.Length,
		})
	}
	return report
}

func NewDayStatusReport(status DayStatus) DayStatusReport {
	report := DayStatusReport{
		Date:              FormatDay(status.Date),
		IsMenstruation:    status.IsMenstruation,
		IsPredictedPeriod: status.IsPredictedPeriod,
		IsOvulation:       status.IsOvulation,
		IsFertile:         status.IsFertile,
		DayOfCycle:        nullableCycleDay(status.DayOfCycle),
	}
	if status.Phase != "" {
		phase := string(status.Phase)
		report.Phase = &phase
	}
	return report
}

func nullableDay(value time.Time) *string {
	if value.IsZero() {
		return nil
	}
	formatted := FormatDay(value)
	return &formatted
}

func nullableCycleDay(value int) *int {
	if value <= 0 {
		return nil
	}
	return &value
}
