package services

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

var ErrNotEnoughCycleHistory = errors.New("not enough cycle history")

// RenderCycleChart writes a PNG line chart of period and cycle lengths,
// one point per logged period. It needs at least two period groups.
func RenderCycleChart(writer io.Writer, stats CycleStats) error {
	groups := stats.PeriodGroups
	if len(groups) < 2 {
		return ErrNotEnoughCycleHistory
	}

	periodDates := make([]time.Time, 0, len(groups))
	periodLengths := make([]float64, 0, len(groups))
	cycleDates := make([]time.Time, 0, len(groups)-1)
	cycleLengths := make([]float64, 0, len(groups)-1)
	maxValue := 0.0
	for index, group := range groups {
		periodDates = append(periodDates, group.Start)
		periodLengths = append(periodLengths, float64(group.Length))
		maxValue = max(maxValue, float64(group.Length))
		if index == 0 {
			continue
		}
		length := float64(DaysBetween(groups[index-1].Start, group.Start))
		cycleDates = append(cycleDates, groups[index-1].Start)
		cycleLengths = append(cycleLengths, length)
		maxValue = max(maxValue, length)
	}

	graph := chart.Chart{
		Title:      "Cycle history",
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Cycle length",
				XValues: cycleDates,
				YValues: cycleLengths,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 3.0, DotColor: chart.ColorBlue, DotWidth: 4.0},
			},
			chart.TimeSeries{
				Name:    "Period length",
				XValues: periodDates,
				YValues: periodLengths,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 3.0, DotColor: chart.ColorRed, DotWidth: 4.0},
			},
		},
		XAxis: chart.XAxis{Name: "Period start", ValueFormatter: chart.TimeValueFormatterWithFormat("02 Jan 06")},
		YAxis: chart.YAxis{
			Name:  "Days",
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue + 2},
			ValueFormatter: func(v interface{}) string {
				if value, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", value)
				}
				return ""
			},
		},
		Height: 400,
		Width:  800,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, writer)
}

// RenderChart draws the chart for the currently stored history.
func (service *StatsService) RenderChart(writer io.Writer, now time.Time) error {
	stats, _, err := service.BuildCycleStats(now)
	if err != nil {
		return err
	}
	return RenderCycleChart(writer, stats)
}
