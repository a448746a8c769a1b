package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ilawal010/Clerk/internal/memo"
)

// MemoView is the output shape of a memo.
type MemoView struct {
	Number          string              `json:"memo_number"`
	Title           string              `json:"title"`
	Type            string              `json:"type"`
	DateReceived    string              `json:"date_received"`
	Signatory       string              `json:"signatory,omitempty"`
	Status          string              `json:"status"`
	CurrentLocation string              `json:"current_location"`
	From            string              `json:"from,omitempty"`
	To              string              `json:"to,omitempty"`
	Sender          *memo.Sender        `json:"sender,omitempty"`
	ScannedFile     string              `json:"scanned_file,omitempty"`
	History         []memo.HistoryEntry `json:"history"`
}

func newMemoView(a *app, m *memo.Memo) MemoView {
	history := m.History
	if history == nil {
		history = []memo.HistoryEntry{}
	}
	return MemoView{
		Number:          m.Number,
		Title:           m.Title,
		Type:            string(m.Type),
		DateReceived:    m.DateReceived.Format(memo.DateLayout),
		Signatory:       m.Signatory,
		Status:          m.Status,
		CurrentLocation: m.CurrentLocation,
		From:            m.From,
		To:              m.To,
		Sender:          m.Sender,
		ScannedFile:     a.relPath(m.ScannedFile),
		History:         history,
	}
}

func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// writeMemo prints the memo summary, scan location, and history.
func writeMemo(w io.Writer, v MemoView) {
	fmt.Fprintf(w, "Memo Number: %s\n", v.Number)
	fmt.Fprintf(w, "Title: %s\n", v.Title)
	fmt.Fprintf(w, "Type: %s\n", v.Type)
	if v.Sender != nil {
		fmt.Fprintf(w, "From: %s\n", v.Sender.Name)
		if v.Sender.Address != "" {
			fmt.Fprintf(w, "Sender Address: %s\n", v.Sender.Address)
		}
		if v.Sender.Email != "" {
			fmt.Fprintf(w, "Sender Email: %s\n", v.Sender.Email)
		}
		if v.Sender.Phone != "" {
			fmt.Fprintf(w, "Sender Phone: %s\n", v.Sender.Phone)
		}
	} else {
		fmt.Fprintf(w, "From: %s\n", v.From)
		fmt.Fprintf(w, "To: %s\n", v.To)
	}
	fmt.Fprintf(w, "Date Received: %s\n", v.DateReceived)
	if v.Signatory != "" {
		fmt.Fprintf(w, "Signatory: %s\n", v.Signatory)
	}
	fmt.Fprintf(w, "Status: %s\n", v.Status)
	fmt.Fprintf(w, "Current Location: %s\n", v.CurrentLocation)
	if v.ScannedFile != "" {
		fmt.Fprintf(w, "Scanned File: %s\n", v.ScannedFile)
	} else {
		fmt.Fprintln(w, "Scanned File: not found")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "History:")
	if len(v.History) == 0 {
		fmt.Fprintln(w, "No history available for this memo yet.")
		return
	}
	for _, h := range v.History {
		attachment := h.Attachment
		if attachment == "" {
			attachment = "None"
		}
		fmt.Fprintf(w, "- Date: %s, Action: %s, To: %s, Comment: %s, Attachment: %s\n",
			h.Date, h.Action, h.To, h.Comment, attachment)
	}
}

// writeMemoTable prints the dashboard columns, one memo per row.
func writeMemoTable(w io.Writer, views []MemoView) error {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		from := v.From
		if v.Sender != nil {
			from = v.Sender.Name
		}
		rows = append(rows, []string{
			v.Number, v.Title, v.Type, from, v.To, v.DateReceived, v.Status, v.CurrentLocation,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Memo Number", "Title", "Type", "From", "To", "Date Received", "Status", "Current Location").
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
