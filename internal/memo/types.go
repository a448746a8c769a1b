package memo

import (
	"fmt"
	"strings"
	"time"
)

// Type distinguishes memos moving between departments from mail received
// from outside the organization.
type Type string

const (
	TypeInternal Type = "Internal"
	TypeExternal Type = "External"
)

// ParseType accepts "internal"/"external" in any case.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "internal":
		return TypeInternal, nil
	case "external":
		return TypeExternal, nil
	}
	return "", fmt.Errorf("%w: unknown memo type %q (want internal or external)", ErrInvalid, s)
}

// Statuses written by the workflow. Forwarding produces a derived status,
// see ForwardedStatus.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
)

// Actions recorded in history entries.
const (
	ActionForward = "Forwarded/Reply"
	ActionApprove = "Approved"
)

// HistoryDateLayout is the minute-precision layout used for history dates.
const HistoryDateLayout = "2006-01-02 15:04"

// DateLayout is the layout for DateReceived in filters, output and exports.
const DateLayout = "2006-01-02"

// ForwardedStatus returns the status a memo takes when forwarded to dept.
func ForwardedStatus(dept string) string {
	return "Forwarded to " + dept
}

// Sender identifies the originator of an external memo.
type Sender struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// HistoryEntry is one routing step. Entries are only ever appended.
type HistoryEntry struct {
	Date       string `json:"date"`
	Action     string `json:"action"`
	To         string `json:"to"`
	Comment    string `json:"comment"`
	Attachment string `json:"attachment,omitempty"`
}

// Memo is a logged document and its routing state.
type Memo struct {
	Number          string         `json:"memo_number"`
	Title           string         `json:"title"`
	DateReceived    time.Time      `json:"date_received"`
	Type            Type           `json:"type"`
	Signatory       string         `json:"signatory,omitempty"`
	Status          string         `json:"status"`
	CurrentLocation string         `json:"current_location"`
	From            string         `json:"from,omitempty"`
	To              string         `json:"to,omitempty"`
	Sender          *Sender        `json:"sender,omitempty"`
	ScannedFile     string         `json:"scanned_file,omitempty"`
	History         []HistoryEntry `json:"history"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// InitialLocation is where a freshly logged memo sits: the receiving
// department for internal memos, the sender for external ones.
func (m *Memo) InitialLocation() string {
	if m.Type == TypeExternal {
		if m.Sender == nil {
			return ""
		}
		return m.Sender.Name
	}
	return m.To
}

// Origin returns the department or sender name the memo came from.
func (m *Memo) Origin() string {
	if m.Type == TypeExternal && m.Sender != nil {
		return m.Sender.Name
	}
	return m.From
}

// SenderName is the external sender's name, or "" for internal memos.
func (m *Memo) SenderName() string {
	if m.Sender == nil {
		return ""
	}
	return m.Sender.Name
}

// IsApproved reports whether the memo has reached the Approved status.
func (m *Memo) IsApproved() bool {
	return m.Status == StatusApproved
}

// Date truncates t to midnight in its own location.
func Date(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q (want YYYY-MM-DD)", ErrInvalid, s)
	}
	return t, nil
}
