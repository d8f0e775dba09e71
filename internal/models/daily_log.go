package models

import (
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

type Intensity string

const (
	IntensityNone     Intensity = ""
	IntensityScant    Intensity = "scant"
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityIntense  Intensity = "intense"
)

func (intensity Intensity) Valid() bool {
	switch intensity {
	case IntensityNone, IntensityScant, IntensityLight, IntensityModerate, IntensityIntense:
		return true
	default:
		return false
	}
}

// DayLog is one calendar day of user input, keyed by its ISO date.
type DayLog struct {
	Date         string    `gorm:"primaryKey;type:text" json:"date" yaml:"date"`
	IsPeriod     bool      `gorm:"not null;default:false" json:"isPeriod" yaml:"isPeriod"`
	Intensity    Intensity `gorm:"not null;default:''" json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Symptoms     []string  `gorm:"serializer:json" json:"symptoms" yaml:"symptoms"`
	Moods        []string  `gorm:"serializer:json" json:"moods" yaml:"moods"`
	Notes        string    `gorm:"not null;default:''" json:"notes,omitempty" yaml:"notes,omitempty"`
	MedicalNotes string    `gorm:"not null;default:''" json:"medicalNotes,omitempty" yaml:"medicalNotes,omitempty"`
	WaterIntake  *int      `json:"waterIntake,omitempty" yaml:"waterIntake,omitempty"`
	SleepHours   *int      `json:"sleepHours,omitempty" yaml:"sleepHours,omitempty"`
	CreatedAt    time.Time `json:"-" yaml:"-"`
	UpdatedAt    time.Time `json:"-" yaml:"-"`
}

func (DayLog) TableName() string {
	return "day_logs"
}

// DayLogSet maps ISO dates to their log entry.
type DayLogSet map[string]DayLog

func NewDayLogSet(logs []DayLog) DayLogSet {
	set := make(DayLogSet, len(logs))
	for _, entry := range logs {
		set[entry.Date] = entry
	}
	return set
}

// Sorted returns the entries in ascending date order.
func (set DayLogSet) Sorted() []DayLog {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	logs := make([]DayLog, 0, len(keys))
	for _, key := range keys {
		logs = append(logs, set[key])
	}
	return logs
}
