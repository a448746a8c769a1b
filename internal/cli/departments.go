package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDepartmentsCommand creates the departments command.
func NewDepartmentsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "departments",
		Short:         "List the departments memos can be addressed to",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepartments(rootOpts, cmd)
		},
	}

	return cmd
}

func runDepartments(opts *RootOptions, cmd *cobra.Command) error {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	names := a.service.Departments()
	if opts.Format == "json" {
		return formatter(opts, cmd).Success(names)
	}

	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}
