package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ilawal010/Clerk/internal/memo"
)

// InsertMemo stores a new memo record.
// Uses ON CONFLICT(number) DO NOTHING and reports a skipped insert as
// memo.ErrDuplicateNumber so callers can draw a fresh number.
func (s *Store) InsertMemo(ctx context.Context, m *memo.Memo) error {
	historyJSON, err := marshalHistory(m.History)
	if err != nil {
		return fmt.Errorf("insert memo: %w", err)
	}
	sender, err := marshalSender(m.Sender)
	if err != nil {
		return fmt.Errorf("insert memo: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO memos
		(number, title, date_received, type, signatory, status, current_location,
		 from_dept, to_dept, sender, scanned_file, history, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(number) DO NOTHING
	`,
		m.Number,
		m.Title,
		formatDate(m.DateReceived),
		string(m.Type),
		m.Signatory,
		m.Status,
		m.CurrentLocation,
		m.From,
		m.To,
		sender,
		m.ScannedFile,
		historyJSON,
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert memo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert memo: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("insert memo %s: %w", m.Number, memo.ErrDuplicateNumber)
	}

	return nil
}

// Update loads a memo, applies fn, and writes the routing fields back in
// one transaction. If fn returns an error nothing is written.
//
// Only status, current location, history and updated_at are persisted;
// the intake fields of a memo never change after logging.
func (s *Store) Update(ctx context.Context, number string, fn func(m *memo.Memo) error) (*memo.Memo, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update memo: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	m, err := scanMemo(tx.QueryRowContext(ctx, selectMemo+` WHERE number = ?`, number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update memo %s: %w", number, memo.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update memo %s: %w", number, err)
	}

	if err := fn(m); err != nil {
		return nil, err
	}

	historyJSON, err := marshalHistory(m.History)
	if err != nil {
		return nil, fmt.Errorf("update memo %s: %w", number, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE memos
		SET status = ?, current_location = ?, history = ?, updated_at = ?
		WHERE number = ?
	`,
		m.Status,
		m.CurrentLocation,
		historyJSON,
		formatTime(m.UpdatedAt),
		number,
	)
	if err != nil {
		return nil, fmt.Errorf("update memo %s: %w", number, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update memo %s: commit: %w", number, err)
	}

	return m, nil
}

// AppendHistory appends entry and sets status and location together.
func (s *Store) AppendHistory(ctx context.Context, number, status, location string, entry memo.HistoryEntry, at time.Time) (*memo.Memo, error) {
	return s.Update(ctx, number, func(m *memo.Memo) error {
		m.History = append(m.History, entry)
		m.Status = status
		m.CurrentLocation = location
		m.UpdatedAt = at
		return nil
	})
}
