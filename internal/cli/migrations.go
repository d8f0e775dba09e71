package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/bloom/internal/db"
)

func newMigrationsCommand(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "migrations",
		Short: "List schema migrations and when they were applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				statuses, err := db.MigrationStatuses(rt.database)
				if err != nil {
					return err
				}
				return writeStructured(cmd.OutOrStdout(), output, statuses, func(writer io.Writer) error {
					return printMigrationsText(writer, statuses)
				})
			})
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func printMigrationsText(writer io.Writer, statuses []db.MigrationStatus) error {
	table := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(table, "VERSION\tFILE\tAPPLIED"); err != nil {
		return err
	}
	for _, status := range statuses {
		applied := "pending"
		if status.Applied {
			applied = status.AppliedAt
		}
		if _, err := fmt.Fprintf(table, "%s\t%s\t%s\n", status.Version, status.File, applied); err != nil {
			return err
		}
	}
	return table.Flush()
}
