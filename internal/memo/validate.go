package memo

import (
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize trims free-text fields, NFC-normalizes the title and signatory,
// and rewrites department names to the directory's spelling when they match.
func (m *Memo) Normalize(dir *Directory) {
	m.Title = norm.NFC.String(strings.TrimSpace(m.Title))
	m.Signatory = norm.NFC.String(strings.TrimSpace(m.Signatory))
	m.From = strings.TrimSpace(m.From)
	m.To = strings.TrimSpace(m.To)
	if dir != nil {
		if n, ok := dir.Resolve(m.From); ok {
			m.From = n
		}
		if n, ok := dir.Resolve(m.To); ok {
			m.To = n
		}
	}
	if m.Sender != nil {
		m.Sender.Name = norm.NFC.String(strings.TrimSpace(m.Sender.Name))
		m.Sender.Address = strings.TrimSpace(m.Sender.Address)
		m.Sender.Email = strings.TrimSpace(m.Sender.Email)
		m.Sender.Phone = strings.TrimSpace(m.Sender.Phone)
	}
}

// Validate checks the fields a memo needs before it can be logged.
// Internal memos must name two known departments; external memos must name
// a sender.
func (m *Memo) Validate(dir *Directory) error {
	if m.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if m.DateReceived.IsZero() {
		return fmt.Errorf("%w: date received is required", ErrInvalid)
	}

	switch m.Type {
	case TypeInternal:
		if m.Sender != nil {
			return fmt.Errorf("%w: internal memo cannot carry sender details", ErrInvalid)
		}
		if m.From == "" || m.To == "" {
			return fmt.Errorf("%w: internal memo needs from and to departments", ErrInvalid)
		}
		if dir != nil {
			if _, ok := dir.Resolve(m.From); !ok {
				return fmt.Errorf("%w: unknown department %q", ErrInvalid, m.From)
			}
			if _, ok := dir.Resolve(m.To); !ok {
				return fmt.Errorf("%w: unknown department %q", ErrInvalid, m.To)
			}
		}
	case TypeExternal:
		if m.From != "" || m.To != "" {
			return fmt.Errorf("%w: external memo cannot carry from/to departments", ErrInvalid)
		}
		if m.Sender == nil || m.Sender.Name == "" {
			return fmt.Errorf("%w: external memo needs a sender name", ErrInvalid)
		}
		if m.Sender.Email != "" {
			if _, err := mail.ParseAddress(m.Sender.Email); err != nil {
				return fmt.Errorf("%w: bad sender email %q", ErrInvalid, m.Sender.Email)
			}
		}
	default:
		return fmt.Errorf("%w: unknown memo type %q", ErrInvalid, m.Type)
	}
	return nil
}
