package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ilawal010/Clerk/internal/memo"
)

// filterFlags are shared by list and export.
type filterFlags struct {
	Type       string
	Department string
	Sender     string
	From       string
	Until      string
	Query      string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Type, "type", "all", "memo type (all|internal|external)")
	cmd.Flags().StringVar(&f.Department, "department", "", "originating department (internal memos)")
	cmd.Flags().StringVar(&f.Sender, "sender", "", "sender name (external memos)")
	cmd.Flags().StringVar(&f.From, "from", "", "received on or after, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.Until, "until", "", "received on or before, YYYY-MM-DD")
	cmd.Flags().StringVarP(&f.Query, "query", "q", "", "search title or memo number")
}

func (f *filterFlags) build() (memo.Filter, error) {
	var out memo.Filter
	var err error

	if t := strings.TrimSpace(f.Type); t != "" && !strings.EqualFold(t, "all") {
		if out.Type, err = memo.ParseType(t); err != nil {
			return memo.Filter{}, err
		}
	}
	if f.From != "" {
		if out.From, err = memo.ParseDate(f.From); err != nil {
			return memo.Filter{}, err
		}
	}
	if f.Until != "" {
		if out.Until, err = memo.ParseDate(f.Until); err != nil {
			return memo.Filter{}, err
		}
	}
	if !out.From.IsZero() && !out.Until.IsZero() && out.Until.Before(out.From) {
		return memo.Filter{}, fmt.Errorf("%w: --until is before --from", memo.ErrInvalid)
	}
	out.Department = strings.TrimSpace(f.Department)
	out.Sender = strings.TrimSpace(f.Sender)
	out.Query = f.Query
	return out, nil
}
