package api

import (
	"time"

	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
)

type dayStatusView struct {
	services.DayStatusReport
	Log *models.DayLog `json:"log"`
}

type calendarDayView struct {
	dayStatusView
	Day     int  `json:"day"`
	InMonth bool `json:"inMonth"`
	IsToday bool `json:"isToday"`
	HasData bool `json:"hasData"`
}

type calendarView struct {
	Month string               `json:"month"`
	Stats services.StatsReport `json:"stats"`
	Days  []calendarDayView    `json:"days"`
}

type overviewView struct {
	Today string               `json:"today"`
	Stats services.StatsReport `json:"stats"`
	Day   dayStatusView        `json:"day"`
	Phase *services.PhaseInfo  `json:"phase"`
}

func buildDayStatusView(status services.DayStatus) dayStatusView {
	return dayStatusView{
		DayStatusReport: services.NewDayStatusReport(status),
		Log:             status.Log,
	}
}

func buildCalendarView(month time.Time, days []services.CalendarDay, stats services.CycleStats) calendarView {
	view := calendarView{
		Month: month.Format("2006-01"),
		Stats: services.NewStatsReport(stats),
		Days:  make([]calendarDayView, 0, len(days)),
	}
	for _, day := range days {
		view.Days = append(view.Days, calendarDayView{
			dayStatusView: buildDayStatusView(day.DayStatus),
			Day:           day.Day,
			InMonth:       day.InMonth,
			IsToday:       day.IsToday,
			HasData:       day.HasData,
		})
	}
	return view
}
