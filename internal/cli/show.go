package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <memo-number>",
		Short: "Show a memo's details and routing history",
		Long: `Show a memo's summary, the location of its scanned file, and its
forward/approve history.

Example:
  clerk show NITT/DG/2025/4821`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, number string, cmd *cobra.Command) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.service.Show(context.Background(), number)
	if err != nil {
		return commandError(err)
	}

	view := newMemoView(a, m)
	if opts.Format == "json" {
		return formatter(opts, cmd).Success(view)
	}

	writeMemo(cmd.OutOrStdout(), view)
	return nil
}
