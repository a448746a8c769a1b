package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ilawal010/Clerk/internal/memo"
	"github.com/ilawal010/Clerk/internal/workflow"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	Type          string
	Title         string
	Date          string
	Signatory     string
	From          string
	To            string
	SenderName    string
	SenderAddress string
	SenderEmail   string
	SenderPhone   string
	Scan          string
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log an internal or external memo",
		Long: `Log a newly received memo and store its scan.

A reference number is generated (e.g. NITT/DG/2025/4821), scanned PDFs
are stamped with it, and the memo starts out Pending at its receiving
department (internal) or with its sender (external).

Examples:
  clerk log --type internal --title "Budget review" --from Bursary --to Registry --scan budget.pdf
  clerk log --type external --title "Invitation" --sender-name "Acme Ltd" --sender-email info@acme.com --scan letter.jpg`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "internal", "memo type (internal|external)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "memo title (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().StringVar(&opts.Date, "date", "", "date received, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.Signatory, "signatory", "", "signatory/author of the memo")
	cmd.Flags().StringVar(&opts.From, "from", "", "originating department (internal)")
	cmd.Flags().StringVar(&opts.To, "to", "", "receiving department (internal)")
	cmd.Flags().StringVar(&opts.SenderName, "sender-name", "", "sender name or organization (external)")
	cmd.Flags().StringVar(&opts.SenderAddress, "sender-address", "", "sender address (external)")
	cmd.Flags().StringVar(&opts.SenderEmail, "sender-email", "", "sender email (external)")
	cmd.Flags().StringVar(&opts.SenderPhone, "sender-phone", "", "sender phone number (external)")
	cmd.Flags().StringVar(&opts.Scan, "scan", "", "scanned memo file: pdf, png, jpg or jpeg (required)")
	_ = cmd.MarkFlagRequired("scan")

	return cmd
}

func runLog(opts *LogOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	typ, err := memo.ParseType(opts.Type)
	if err != nil {
		return commandError(err)
	}

	req := workflow.LogRequest{
		Type:      typ,
		Title:     opts.Title,
		Signatory: opts.Signatory,
	}
	if opts.Date != "" {
		if req.DateReceived, err = memo.ParseDate(opts.Date); err != nil {
			return commandError(err)
		}
	}
	if typ == memo.TypeInternal {
		req.From, req.To = opts.From, opts.To
	} else {
		req.Sender = &memo.Sender{
			Name:    opts.SenderName,
			Address: opts.SenderAddress,
			Email:   opts.SenderEmail,
			Phone:   opts.SenderPhone,
		}
	}

	f, err := os.Open(opts.Scan)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open scan", err)
	}
	defer f.Close()
	req.Scan = &workflow.Document{Name: filepath.Base(opts.Scan), Body: f}

	a, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.service.Log(ctx, req)
	if err != nil {
		return commandError(err)
	}

	view := newMemoView(a, m)
	if opts.Format == "json" {
		return formatter(opts.RootOptions, cmd).Success(view)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Memo logged successfully!")
	fmt.Fprintf(out, "Memo Number: %s\n", view.Number)
	fmt.Fprintf(out, "Status: %s\n", view.Status)
	fmt.Fprintf(out, "Current Location: %s\n", view.CurrentLocation)
	fmt.Fprintf(out, "Scanned File: %s\n", view.ScannedFile)
	return nil
}
