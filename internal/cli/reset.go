package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var errResetAborted = errors.New("reset aborted")

func newResetCommand(opts *rootOptions) *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every log and restore default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				ok, err := confirmReset(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if !ok {
					return errResetAborted
				}
			}
			return withRuntime(opts, func(rt *appRuntime) error {
				if err := rt.backup.ClearAll(); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "✅ All data deleted")
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "skip the confirmation prompt")
	return cmd
}

func confirmReset(stdin io.Reader, stdout io.Writer) (bool, error) {
	if _, err := fmt.Fprint(stdout, "This deletes every day log and resets settings. Type 'yes' to continue: "); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes"), nil
}
