package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/bloom/internal/services"
)

type statsOutput struct {
	Today string                   `json:"today" yaml:"today"`
	Stats services.StatsReport     `json:"stats" yaml:"stats"`
	Day   services.DayStatusReport `json:"day" yaml:"day"`
	Phase *services.PhaseInfo      `json:"phase" yaml:"phase"`
}

func newStatsCommand(opts *rootOptions) *cobra.Command {
	var todayRaw string
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cycle statistics and today's phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				now := rt.currentTime()
				if todayRaw != "" {
					day, err := rt.parseDay(todayRaw)
					if err != nil {
						return err
					}
					now = day
				}

				summary, err := rt.stats.BuildTodaySummary(now)
				if err != nil {
					return fmt.Errorf("load stats: %w", err)
				}
				report := statsOutput{
					Today: services.FormatDay(services.DateAtLocation(now, rt.config.Location)),
					Stats: services.NewStatsReport(summary.Stats),
					Day:   services.NewDayStatusReport(summary.Today),
					Phase: summary.PhaseInfo,
				}
				return writeStructured(cmd.OutOrStdout(), output, report, func(writer io.Writer) error {
					return printStatsText(writer, report)
				})
			})
		},
	}
	cmd.Flags().StringVar(&todayRaw, "today", "", "evaluate as if today were this date (YYYY-MM-DD)")
	addOutputFlag(cmd, &output)
	return cmd
}

func printStatsText(writer io.Writer, report statsOutput) error {
	table := tabwriter.NewWriter(writer, 0, 0, 1, ' ', 0)

	fertile := "unknown"
	if window := report.Stats.FertileWindow; len(window) > 0 {
		fertile = window[0] + " to " + window[len(window)-1]
	}
	cycleDay := "unknown"
	if report.Day.DayOfCycle != nil {
		cycleDay = fmt.Sprintf("%d", *report.Day.DayOfCycle)
	}
	phase := "unknown"
	if report.Phase != nil {
		phase = report.Phase.Icon + " " + report.Phase.Name
	}

	rows := []string{
		"Today:\t" + report.Today,
		fmt.Sprintf("Cycle length:\t%d days", report.Stats.AvgCycleLength),
		fmt.Sprintf("Period length:\t%d days", report.Stats.AvgPeriodLength),
		"Last period start:\t" + valueOrUnknown(report.Stats.LastPeriodStart),
		"Next period:\t" + valueOrUnknown(report.Stats.NextPeriodDate),
		"Ovulation:\t" + valueOrUnknown(report.Stats.OvulationDate),
		"Fertile window:\t" + fertile,
		"Cycle day:\t" + cycleDay,
		"Phase:\t" + strings.TrimSpace(phase),
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(table, row); err != nil {
			return err
		}
	}
	return table.Flush()
}
