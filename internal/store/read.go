package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ilawal010/Clerk/internal/memo"
)

const selectMemo = `
	SELECT number, title, date_received, type, signatory, status, current_location,
	       from_dept, to_dept, sender, scanned_file, history, created_at, updated_at
	FROM memos`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// GetMemo retrieves a single memo by reference number.
// Returns memo.ErrNotFound if no such memo exists.
func (s *Store) GetMemo(ctx context.Context, number string) (*memo.Memo, error) {
	m, err := scanMemo(s.db.QueryRowContext(ctx, selectMemo+` WHERE number = ?`, number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get memo %s: %w", number, memo.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get memo %s: %w", number, err)
	}
	return m, nil
}

// ListMemos returns memos matching f, ordered by date received then number.
//
// Type and date range are evaluated in SQL; the remaining criteria go
// through memo.Filter.Match so case folding matches the in-memory rules.
func (s *Store) ListMemos(ctx context.Context, f memo.Filter) ([]*memo.Memo, error) {
	query := selectMemo + ` WHERE 1 = 1`
	var args []any

	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(f.Type))
	}
	if !f.From.IsZero() {
		query += ` AND date_received >= ?`
		args = append(args, formatDate(f.From))
	}
	if !f.Until.IsZero() {
		query += ` AND date_received <= ?`
		args = append(args, formatDate(f.Until))
	}
	query += ` ORDER BY date_received ASC, number COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query memos: %w", err)
	}
	defer rows.Close()

	memos := []*memo.Memo{}
	for rows.Next() {
		m, err := scanMemo(rows)
		if err != nil {
			return nil, err
		}
		if f.Match(m) {
			memos = append(memos, m)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memos: %w", err)
	}

	return memos, nil
}

// scanMemo scans a row into a Memo.
func scanMemo(row rowScanner) (*memo.Memo, error) {
	var (
		m                    memo.Memo
		typ, dateReceived    string
		sender, history      sql.NullString
		createdAt, updatedAt string
	)

	if err := row.Scan(
		&m.Number, &m.Title, &dateReceived, &typ, &m.Signatory, &m.Status, &m.CurrentLocation,
		&m.From, &m.To, &sender, &m.ScannedFile, &history, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan memo: %w", err)
	}

	m.Type = memo.Type(typ)

	var err error
	if m.DateReceived, err = parseDate(dateReceived); err != nil {
		return nil, fmt.Errorf("scan memo %s: %w", m.Number, err)
	}
	if m.Sender, err = unmarshalSender(sender); err != nil {
		return nil, fmt.Errorf("scan memo %s: %w", m.Number, err)
	}
	if m.History, err = unmarshalHistory(history); err != nil {
		return nil, fmt.Errorf("scan memo %s: %w", m.Number, err)
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("scan memo %s: %w", m.Number, err)
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("scan memo %s: %w", m.Number, err)
	}

	return &m, nil
}
