package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ilawal010/Clerk/internal/memo"
)

const timeLayout = time.RFC3339Nano

// marshalHistory converts history entries to JSON TEXT for the history cell.
// HTML escaping is disabled so comments with & or < read back verbatim in
// the raw column.
func marshalHistory(h []memo.HistoryEntry) (string, error) {
	if h == nil {
		h = []memo.HistoryEntry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(h); err != nil {
		return "", fmt.Errorf("marshal history: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalHistory parses a history cell. NULL and empty cells are an
// empty list.
func unmarshalHistory(data sql.NullString) ([]memo.HistoryEntry, error) {
	if !data.Valid || strings.TrimSpace(data.String) == "" {
		return []memo.HistoryEntry{}, nil
	}
	var h []memo.HistoryEntry
	if err := json.Unmarshal([]byte(data.String), &h); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	if h == nil {
		h = []memo.HistoryEntry{}
	}
	return h, nil
}

// marshalSender returns NULL for internal memos.
func marshalSender(s *memo.Sender) (sql.NullString, error) {
	if s == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal sender: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalSender(data sql.NullString) (*memo.Sender, error) {
	if !data.Valid || data.String == "" {
		return nil, nil
	}
	var s memo.Sender
	if err := json.Unmarshal([]byte(data.String), &s); err != nil {
		return nil, fmt.Errorf("unmarshal sender: %w", err)
	}
	return &s, nil
}

func formatDate(t time.Time) string {
	return t.Format(memo.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(memo.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date_received %q: %w", s, err)
	}
	return t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
