package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// ApproveOptions holds flags for the approve command.
type ApproveOptions struct {
	*RootOptions
	Comment string
}

// NewApproveCommand creates the approve command.
func NewApproveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApproveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "approve <memo-number>",
		Short: "Approve a memo at its current location",
		Long: `Approve a memo. The memo stays where it is, its status becomes
"Approved", and an approval entry is appended to its history. A memo
can only be approved once.

Example:
  clerk approve NITT/DG/2025/4821 --comment "Approved. Proceed."`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApprove(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Comment, "comment", "m", "", "comment")

	return cmd
}

func runApprove(opts *ApproveOptions, number string, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.service.Approve(context.Background(), number, opts.Comment)
	if err != nil {
		return commandError(err)
	}

	if opts.Format == "json" {
		return formatter(opts.RootOptions, cmd).Success(newMemoView(a, m))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Memo %s approved at %s.\n", m.Number, m.CurrentLocation)
	return nil
}
