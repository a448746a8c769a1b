package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ilawal010/Clerk/internal/memo"
)

var testNow = time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestMemo creates an internal memo with minimal required fields.
func createTestMemo(number string, received time.Time) *memo.Memo {
	return &memo.Memo{
		Number:          number,
		Title:           "Memo " + number,
		DateReceived:    received,
		Type:            memo.TypeInternal,
		Status:          memo.StatusPending,
		CurrentLocation: "Registry",
		From:            "Bursary",
		To:              "Registry",
		History:         []memo.HistoryEntry{},
		CreatedAt:       testNow,
		UpdatedAt:       testNow,
	}
}

// createExternalMemo creates an external memo from sender.
func createExternalMemo(number, sender string, received time.Time) *memo.Memo {
	return &memo.Memo{
		Number:          number,
		Title:           "Letter " + number,
		DateReceived:    received,
		Type:            memo.TypeExternal,
		Status:          memo.StatusPending,
		CurrentLocation: sender,
		Sender:          &memo.Sender{Name: sender, Address: "1 Main St", Email: "desk@example.com", Phone: "0800"},
		History:         []memo.HistoryEntry{},
		CreatedAt:       testNow,
		UpdatedAt:       testNow,
	}
}

func date(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 0, 0, 0, 0, time.UTC)
}
