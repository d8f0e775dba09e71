package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
)

func newSettingsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change cycle settings",
	}
	cmd.AddCommand(newSettingsShowCommand(opts), newSettingsSetCommand(opts))
	return cmd
}

func newSettingsShowCommand(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				settings, err := rt.settings.LoadSettings()
				if err != nil {
					return err
				}
				return writeStructured(cmd.OutOrStdout(), output, settings, func(writer io.Writer) error {
					return printSettingsText(writer, settings)
				})
			})
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newSettingsSetCommand(opts *rootOptions) *cobra.Command {
	var (
		cycleLength     int
		periodLength    int
		lastPeriodStart string
		theme           string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; flags that are not given keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				current, err := rt.settings.LoadSettings()
				if err != nil {
					return err
				}

				input := services.SettingsInput{
					AvgCycleLength:        current.AvgCycleLength,
					AvgPeriodLength:       current.AvgPeriodLength,
					LastPeriodStartManual: current.LastPeriodStartManual,
					Theme:                 current.Theme,
				}
				flags := cmd.Flags()
				if flags.Changed("cycle-length") {
					input.AvgCycleLength = cycleLength
				}
				if flags.Changed("period-length") {
					input.AvgPeriodLength = periodLength
				}
				if flags.Changed("last-period-start") {
					input.LastPeriodStartManual = lastPeriodStart
				}
				if flags.Changed("theme") {
					input.Theme = theme
				}

				validated, err := rt.settings.ValidateSettings(input, rt.currentTime())
				if err != nil {
					return err
				}
				saved, err := rt.settings.SaveSettings(validated)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), "✅ Settings saved"); err != nil {
					return err
				}
				return printSettingsText(cmd.OutOrStdout(), saved)
			})
		},
	}
	cmd.Flags().IntVar(&cycleLength, "cycle-length", 0, fmt.Sprintf("average cycle length in days (%d-%d)", services.MinCycleLength, services.MaxCycleLength))
	cmd.Flags().IntVar(&periodLength, "period-length", 0, fmt.Sprintf("average period length in days (%d-%d)", services.MinPeriodLength, services.MaxPeriodLength))
	cmd.Flags().StringVar(&lastPeriodStart, "last-period-start", "", "manual last period start (YYYY-MM-DD, empty to clear)")
	cmd.Flags().StringVar(&theme, "theme", "", "theme: light, dark or system")
	return cmd
}

func printSettingsText(writer io.Writer, settings models.UserSettings) error {
	table := tabwriter.NewWriter(writer, 0, 0, 1, ' ', 0)
	rows := []string{
		fmt.Sprintf("Cycle length:\t%d days", settings.AvgCycleLength),
		fmt.Sprintf("Period length:\t%d days", settings.AvgPeriodLength),
		"Last period start:\t" + stringOrDash(settings.LastPeriodStartManual),
		"Theme:\t" + settings.Theme,
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(table, row); err != nil {
			return err
		}
	}
	return table.Flush()
}
