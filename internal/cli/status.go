package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <memo-number>",
		Short: "Check a memo's status and current location",
		Long: `Check a memo's status and current location.

Example:
  clerk status NITT/DG/2025/4821`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runStatus(opts *RootOptions, number string, cmd *cobra.Command) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.service.Status(context.Background(), number)
	if err != nil {
		return commandError(err)
	}

	if opts.Format == "json" {
		return formatter(opts, cmd).Success(report)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Memo Number: %s\n", report.Number)
	fmt.Fprintf(out, "Status: %s\n", report.Status)
	fmt.Fprintf(out, "Current Location: %s\n", report.CurrentLocation)
	return nil
}
