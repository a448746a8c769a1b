package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilawal010/Clerk/internal/export"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	filterFlags
	Output     string
	FileFormat string
}

// ExportResult reports what was written.
type ExportResult struct {
	Path    string `json:"path"`
	Format  string `json:"format"`
	Records int    `json:"records"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export filtered memo records to CSV or XLSX",
		Long: `Export memo records matching the same filters as "list".

The file format follows the output file's extension unless --as is set.

Examples:
  clerk export
  clerk export --type internal --department Registry -o registry.xlsx
  clerk export --from 2025-01-01 --as csv -o q1.csv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	opts.filterFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "filtered_memos.csv", "output file")
	cmd.Flags().StringVar(&opts.FileFormat, "as", "", "file format (csv|xlsx)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	filter, err := opts.filterFlags.build()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid filter", err)
	}

	format := export.FormatForPath(opts.Output)
	if opts.FileFormat != "" {
		if format, err = export.ParseFormat(opts.FileFormat); err != nil {
			return WrapExitError(ExitCommandError, "invalid --as", err)
		}
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

	formatter(opts.RootOptions, cmd).VerboseLog("exporting %d memo(s) as %s to %s", len(memos), format, opts.Output)

	f, err := os.Create(opts.Output)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create output file", err)
	}
	if err := export.Write(f, memos, format); err != nil {
		f.Close()
		return WrapExitError(ExitFailure, "failed to export", err)
	}
	if err := f.Close(); err != nil {
		return WrapExitError(ExitFailure, "failed to export", err)
	}

	result := ExportResult{Path: opts.Output, Format: string(format), Records: len(memos)}
	if opts.Format == "json" {
		return formatter(opts.RootOptions, cmd).Success(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Filtered records saved as '%s' (%d records).\n", result.Path, result.Records)
	return nil
}
