package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/bloom/internal/services"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup of all logs and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				document, err := rt.backup.BuildBackup(rt.currentTime())
				if err != nil {
					return fmt.Errorf("build backup: %w", err)
				}
				serialized, err := services.MarshalBackup(document)
				if err != nil {
					return fmt.Errorf("encode backup: %w", err)
				}
				return writeExport(cmd.OutOrStdout(), outPath, append(serialized, '\n'))
			})
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	return cmd
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all data with the contents of a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}
			return withRuntime(opts, func(rt *appRuntime) error {
				report, err := rt.backup.RestoreBackup(data)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if _, err := fmt.Fprintf(out, "✅ Imported %d day logs\n", report.Imported); err != nil {
					return err
				}
				for _, key := range report.Skipped {
					if _, err := fmt.Fprintf(out, "⚠️  Skipped %q\n", key); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newExportCSVCommand(opts *rootOptions) *cobra.Command {
	var outPath, fromRaw, toRaw string
	cmd := &cobra.Command{
		Use:   "export-csv",
		Short: "Write logs as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				exportRange, err := services.ParseExportRange(fromRaw, toRaw, rt.config.Location)
				if err != nil {
					return err
				}
				logs, err := rt.days.FetchAllLogs()
				if err != nil {
					return err
				}
				logs = exportRange.Filter(logs)
				var output bytes.Buffer
				if err := services.WriteLogsCSV(&output, logs); err != nil {
					return fmt.Errorf("build csv: %w", err)
				}
				return writeExport(cmd.OutOrStdout(), outPath, output.Bytes())
			})
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	cmd.Flags().StringVar(&fromRaw, "from", "", "first date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toRaw, "to", "", "last date to include (YYYY-MM-DD)")
	return cmd
}

func newChartCommand(opts *rootOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render period and cycle lengths as a PNG chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				var output bytes.Buffer
				if err := rt.stats.RenderChart(&output, rt.currentTime()); err != nil {
					return err
				}
				return writeExport(cmd.OutOrStdout(), outPath, output.Bytes())
			})
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output PNG file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// writeExport writes to path, or to stdout when path is empty or "-".
func writeExport(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
