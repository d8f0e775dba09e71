package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
)

func newLogCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Read and write daily logs",
	}
	cmd.AddCommand(
		newLogShowCommand(opts),
		newLogListCommand(opts),
		newLogSetCommand(opts),
		newLogDeleteCommand(opts),
	)
	return cmd
}

func newLogShowCommand(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show DATE",
		Short: "Show the log for one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				day, err := rt.parseDay(args[0])
				if err != nil {
					return err
				}
				entry, _, err := rt.days.FetchLogByDate(day)
				if err != nil {
					return err
				}
				return writeStructured(cmd.OutOrStdout(), output, entry, func(writer io.Writer) error {
					return printDayLogText(writer, entry)
				})
			})
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newLogListCommand(opts *rootOptions) *cobra.Command {
	var fromRaw, toRaw, output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logs, optionally within an inclusive date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				logs, err := listLogs(rt, fromRaw, toRaw)
				if err != nil {
					return err
				}
				return writeStructured(cmd.OutOrStdout(), output, logs, func(writer io.Writer) error {
					for _, entry := range logs {
						if _, err := fmt.Fprintln(writer, summarizeDayLog(entry)); err != nil {
							return err
						}
					}
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&fromRaw, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toRaw, "to", "", "last date (YYYY-MM-DD)")
	addOutputFlag(cmd, &output)
	return cmd
}

func listLogs(rt *appRuntime, fromRaw string, toRaw string) ([]models.DayLog, error) {
	if fromRaw == "" && toRaw == "" {
		logs, err := rt.days.FetchAllLogs()
		if err != nil {
			return nil, err
		}
		return logs.Sorted(), nil
	}
	from, err := rt.parseDay(fromRaw)
	if err != nil {
		return nil, err
	}
	to, err := rt.parseDay(toRaw)
	if err != nil {
		return nil, err
	}
	return rt.days.FetchLogsForRange(from, to)
}

func newLogSetCommand(opts *rootOptions) *cobra.Command {
	var (
		isPeriod     bool
		intensity    string
		symptoms     []string
		moods        []string
		notes        string
		medicalNotes string
		water        int
		sleep        int
	)

	cmd := &cobra.Command{
		Use:   "set DATE",
		Short: "Write the log for one day, replacing any existing entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				day, err := rt.parseDay(args[0])
				if err != nil {
					return err
				}

				input := services.DayEntryInput{
					IsPeriod:     isPeriod,
					Intensity:    models.Intensity(intensity),
					Symptoms:     symptoms,
					Moods:        moods,
					Notes:        notes,
					MedicalNotes: medicalNotes,
				}
				if cmd.Flags().Changed("water") {
					input.WaterIntake = &water
				}
				if cmd.Flags().Changed("sleep") {
					input.SleepHours = &sleep
				}

				entry, err := rt.days.UpsertDayEntry(day, input)
				if err != nil {
					return fmt.Errorf("save %s: %w", args[0], err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "✅ Saved %s\n", summarizeDayLog(entry))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&isPeriod, "period", false, "mark the day as a period day")
	cmd.Flags().StringVar(&intensity, "intensity", "", "flow intensity: scant, light, moderate or intense")
	cmd.Flags().StringSliceVar(&symptoms, "symptom", nil, "symptom id or label (repeatable)")
	cmd.Flags().StringSliceVar(&moods, "mood", nil, "mood id or label (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&medicalNotes, "medical-notes", "", "medication and medical notes")
	cmd.Flags().IntVar(&water, "water", 0, "glasses of water")
	cmd.Flags().IntVar(&sleep, "sleep", 0, "hours of sleep")
	return cmd
}

func newLogDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete DATE",
		Short: "Delete the log for one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				day, err := rt.parseDay(args[0])
				if err != nil {
					return err
				}
				if err := rt.days.DeleteDay(day); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted %s\n", services.FormatDay(day))
				return err
			})
		},
	}
}

func summarizeDayLog(entry models.DayLog) string {
	parts := []string{entry.Date}
	if entry.IsPeriod {
		period := "period"
		if entry.Intensity != models.IntensityNone {
			period += " (" + string(entry.Intensity) + ")"
		}
		parts = append(parts, period)
	}
	if len(entry.Symptoms) > 0 {
		parts = append(parts, "symptoms: "+strings.Join(entry.Symptoms, ", "))
	}
	if len(entry.Moods) > 0 {
		parts = append(parts, "moods: "+strings.Join(entry.Moods, ", "))
	}
	return strings.Join(parts, " | ")
}

func printDayLogText(writer io.Writer, entry models.DayLog) error {
	table := tabwriter.NewWriter(writer, 0, 0, 1, ' ', 0)

	intensity := string(entry.Intensity)
	if intensity == "" {
		intensity = "-"
	}
	rows := []string{
		"Date:\t" + entry.Date,
		fmt.Sprintf("Period:\t%t", entry.IsPeriod),
		"Intensity:\t" + intensity,
		"Symptoms:\t" + joinOrDash(entry.Symptoms),
		"Moods:\t" + joinOrDash(entry.Moods),
		"Water:\t" + optionalIntText(entry.WaterIntake),
		"Sleep:\t" + optionalIntText(entry.SleepHours),
		"Notes:\t" + stringOrDash(entry.Notes),
		"Medical notes:\t" + stringOrDash(entry.MedicalNotes),
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(table, row); err != nil {
			return err
		}
	}
	return table.Flush()
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func stringOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func optionalIntText(value *int) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *value)
}
