package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ilawal010/Clerk/internal/config"
	"github.com/ilawal010/Clerk/internal/intake"
	"github.com/ilawal010/Clerk/internal/workflow"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DataDir    string // overrides data_dir from config when set

	hooks hooks
	ran   bool // a command's RunE has started
}

// hooks replace production dependencies in tests. Zero values mean the
// production default.
type hooks struct {
	clock   workflow.Clock
	rand    io.Reader
	stamper intake.Stamper
	logger  *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the clerk CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clerk",
		Short: "clerk - memo & mail tracking",
		Long: `clerk logs internal and external memos, assigns reference numbers,
and tracks where each memo is as it is forwarded between departments
and approved.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultPath, "path to YAML config")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "data directory (overrides config)")

	cmd.AddCommand(NewLogCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewForwardCommand(opts))
	cmd.AddCommand(NewApproveCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewDepartmentsCommand(opts))

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &ExitError{Code: ExitCommandError, Err: err}
	})
	for _, sub := range cmd.Commands() {
		markRun(opts, sub)
	}

	return cmd
}

// markRun records in opts when sub's RunE starts, so errors raised by
// cobra before that point can be told apart from command failures.
func markRun(opts *RootOptions, sub *cobra.Command) {
	run := sub.RunE
	if run == nil {
		return
	}
	sub.RunE = func(cmd *cobra.Command, args []string) error {
		opts.ran = true
		return run(cmd, args)
	}
}

// Execute runs the CLI with args and returns the process exit code.
// Errors are reported on stderr, or as a JSON envelope on stdout when
// --format json is in effect.
func Execute(args []string, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	return execute(NewRootCommandWithOptions(opts), opts, args, stdout, stderr)
}

func execute(cmd *cobra.Command, opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	err = usageError(opts, err)
	code, message := describeError(err)
	if opts.Format == "json" {
		f := &OutputFormatter{Format: "json", Writer: stdout}
		_ = f.Error(code, message, nil)
	} else {
		f := &OutputFormatter{Format: "text", Writer: stderr}
		_ = f.Error(code, message, nil)
	}
	return GetExitCode(err)
}

// usageError turns errors cobra reports before a command runs (argument
// count, required flags, unknown commands) into command errors.
func usageError(opts *RootOptions, err error) error {
	var exitErr *ExitError
	if opts.ran || errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: ExitCommandError, Err: err}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
