package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	dbPath   string
	timezone string
	now      func() time.Time
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{now: time.Now})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:          "bloom",
		Short:        "Local menstrual cycle tracker",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides BLOOM_DB_PATH)")
	root.PersistentFlags().StringVar(&opts.timezone, "tz", "", "IANA time zone (overrides TZ)")

	root.AddCommand(
		newServeCommand(opts),
		newStatsCommand(opts),
		newLogCommand(opts),
		newSettingsCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newExportCSVCommand(opts),
		newChartCommand(opts),
		newResetCommand(opts),
		newMigrationsCommand(opts),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
