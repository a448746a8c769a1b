package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ilawal010/Clerk/internal/workflow"
)

// ForwardOptions holds flags for the forward command.
type ForwardOptions struct {
	*RootOptions
	To      string
	Comment string
	Attach  string
}

// NewForwardCommand creates the forward command.
func NewForwardCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ForwardOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "forward <memo-number>",
		Aliases: []string{"reply"},
		Short:   "Forward or reply to a memo",
		Long: `Forward a memo to a department, with an optional comment and
attachment. The memo's current location becomes the target department and
its status becomes "Forwarded to <department>". Each forward is appended
to the memo's history.

Examples:
  clerk forward NITT/DG/2025/4821 --to "DG/CE" --comment "For your approval"
  clerk forward NITT/DG/2025/4821 --to Bursary --attach quote.pdf`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForward(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "", "department to forward to (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().StringVarP(&opts.Comment, "comment", "m", "", "comment")
	cmd.Flags().StringVar(&opts.Attach, "attach", "", "additional document: pdf, png, jpg or jpeg")

	return cmd
}

func runForward(opts *ForwardOptions, number string, cmd *cobra.Command) error {
	req := workflow.ForwardRequest{To: opts.To, Comment: opts.Comment}

	if opts.Attach != "" {
		f, err := os.Open(opts.Attach)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open attachment", err)
		}
		defer f.Close()
		req.Attachment = &workflow.Document{Name: filepath.Base(opts.Attach), Body: f}
	}

	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.service.Forward(context.Background(), number, req)
	if err != nil {
		return commandError(err)
	}

	if opts.Format == "json" {
		return formatter(opts.RootOptions, cmd).Success(newMemoView(a, m))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Memo %s forwarded to %s successfully!\n", m.Number, m.CurrentLocation)
	return nil
}
