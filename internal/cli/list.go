package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	filterFlags
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List and filter memo records",
		Long: `List memo records, optionally filtered by type, department,
sender, date range or a search term.

Examples:
  clerk list
  clerk list --type internal --department Bursary
  clerk list --type external --sender "Acme Ltd" --from 2025-01-01 --until 2025-03-31
  clerk list -q budget --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	opts.filterFlags.register(cmd)

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	filter, err := opts.filterFlags.build()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid filter", err)
	}

	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	memos, err := a.service.Search(ctx, filter)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list memos", err)
	}

	formatter(opts.RootOptions, cmd).VerboseLog("%d memo(s) matched", len(memos))

	views := make([]MemoView, 0, len(memos))
	for _, m := range memos {
		views = append(views, newMemoView(a, m))
	}

	if opts.Format == "json" {
		return formatter(opts.RootOptions, cmd).Success(views)
	}

	if len(views) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No memo records to display.")
		return nil
	}
	return writeMemoTable(cmd.OutOrStdout(), views)
}
