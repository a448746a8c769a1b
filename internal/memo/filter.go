package memo

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Filter selects memos for listing and export. Zero-valued fields match
// everything. From and Until are inclusive calendar dates.
type Filter struct {
	Type       Type
	Department string // matches From, internal memos only
	Sender     string // matches sender name, external memos only
	From       time.Time
	Until      time.Time
	Query      string // case-insensitive substring of title or number
}

// Match reports whether m passes every set criterion.
func (f Filter) Match(m *Memo) bool {
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.Department != "" && (m.Type != TypeInternal || !strings.EqualFold(m.From, f.Department)) {
		return false
	}
	if f.Sender != "" && (m.Type != TypeExternal || !strings.EqualFold(m.SenderName(), f.Sender)) {
		return false
	}
	day := Date(m.DateReceived)
	if !f.From.IsZero() && day.Before(Date(f.From)) {
		return false
	}
	if !f.Until.IsZero() && day.After(Date(f.Until)) {
		return false
	}
	if q := fold(f.Query); q != "" {
		if !strings.Contains(fold(m.Title), q) && !strings.Contains(fold(m.Number), q) {
			return false
		}
	}
	return true
}

// Apply returns the memos that match, preserving order.
func (f Filter) Apply(memos []*Memo) []*Memo {
	out := make([]*Memo, 0, len(memos))
	for _, m := range memos {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
