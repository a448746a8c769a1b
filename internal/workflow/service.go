// Package workflow implements memo intake and routing on top of the store
// and file intake.
//
// Every mutation follows the same shape: validate, persist, log. Routing
// steps (forward, approve) append a history entry and update status and
// current location in one store transaction.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ilawal010/Clerk/internal/intake"
	"github.com/ilawal010/Clerk/internal/memo"
	"github.com/ilawal010/Clerk/internal/store"
)

// maxNumberAttempts bounds retries when a generated number is taken.
const maxNumberAttempts = 5

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Service runs the memo workflow.
type Service struct {
	store   *store.Store
	files   *intake.Files
	dir     *memo.Directory
	numbers *memo.NumberGenerator
	clock   Clock
	logger  *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRand sets the randomness source for reference numbers.
func WithRand(r io.Reader) Option {
	return func(s *Service) { s.numbers.Rand = r }
}

// NewService wires a service. numbers may be nil for the default prefix.
func NewService(st *store.Store, files *intake.Files, dir *memo.Directory, numbers *memo.NumberGenerator, opts ...Option) *Service {
	if numbers == nil {
		numbers = memo.NewNumberGenerator("")
	}
	if dir == nil {
		dir = memo.NewDirectory(nil)
	}
	s := &Service{
		store:   st,
		files:   files,
		dir:     dir,
		numbers: numbers,
		clock:   systemClock{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Departments returns the known departments.
func (s *Service) Departments() []string {
	return s.dir.Names()
}

// Document is an uploaded file.
type Document struct {
	Name string
	Body io.Reader
}

// LogRequest carries the intake form.
type LogRequest struct {
	Type         memo.Type
	Title        string
	DateReceived time.Time // zero means today
	Signatory    string
	From         string // internal
	To           string // internal
	Sender       *memo.Sender
	Scan         *Document
}

// Log validates and records a new memo, storing its scan. The scan is
// required.
func (s *Service) Log(ctx context.Context, req LogRequest) (*memo.Memo, error) {
	now := s.clock.Now()

	m := &memo.Memo{
		Title:        req.Title,
		DateReceived: req.DateReceived,
		Type:         req.Type,
		Signatory:    req.Signatory,
		From:         req.From,
		To:           req.To,
		Sender:       req.Sender,
		Status:       memo.StatusPending,
		History:      []memo.HistoryEntry{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if m.DateReceived.IsZero() {
		m.DateReceived = memo.Date(now)
	}
	m.DateReceived = memo.Date(m.DateReceived)

	m.Normalize(s.dir)
	if err := m.Validate(s.dir); err != nil {
		return nil, err
	}
	if req.Scan == nil || req.Scan.Body == nil {
		return nil, fmt.Errorf("%w: scanned memo is required", memo.ErrInvalid)
	}
	m.CurrentLocation = m.InitialLocation()

	for attempt := 1; ; attempt++ {
		number, err := s.numbers.Next(now)
		if err != nil {
			return nil, err
		}
		m.Number = number

		if _, err := s.store.GetMemo(ctx, number); err == nil {
			s.logger.Debug("memo number taken, retrying", zap.String("memo", number), zap.Int("attempt", attempt))
			if attempt >= maxNumberAttempts {
				return nil, fmt.Errorf("log memo: %w after %d attempts", memo.ErrDuplicateNumber, attempt)
			}
			continue
		} else if !errors.Is(err, memo.ErrNotFound) {
			return nil, fmt.Errorf("log memo: %w", err)
		}

		break
	}

	path, err := s.files.SaveScan(m.Number, req.Scan.Name, req.Scan.Body)
	if err != nil {
		return nil, fmt.Errorf("log memo: %w", err)
	}
	m.ScannedFile = path

	if err := s.store.InsertMemo(ctx, m); err != nil {
		if derr := s.files.DiscardScan(m.Number); derr != nil {
			s.logger.Warn("failed to remove unrecorded scan", zap.String("memo", m.Number), zap.Error(derr))
		}
		return nil, fmt.Errorf("log memo: %w", err)
	}

	s.logger.Info("memo logged",
		zap.String("memo", m.Number),
		zap.String("type", string(m.Type)),
		zap.String("location", m.CurrentLocation))
	return m, nil
}

// ForwardRequest carries a forward/reply step.
type ForwardRequest struct {
	To         string
	Comment    string
	Attachment *Document
}

// Forward routes a memo to another department with an optional comment and
// attachment.
func (s *Service) Forward(ctx context.Context, number string, req ForwardRequest) (*memo.Memo, error) {
	number = strings.TrimSpace(number)
	to, ok := s.dir.Resolve(req.To)
	if !ok {
		return nil, fmt.Errorf("%w: unknown department %q", memo.ErrInvalid, req.To)
	}

	// Fail on a missing memo before writing any attachment.
	if _, err := s.store.GetMemo(ctx, number); err != nil {
		return nil, err
	}

	var attachment, attachmentPath string
	if req.Attachment != nil {
		path, err := s.files.SaveAttachment(number, req.Attachment.Name, req.Attachment.Body)
		if err != nil {
			return nil, fmt.Errorf("forward memo %s: %w", number, err)
		}
		attachment, attachmentPath = filepath.Base(req.Attachment.Name), path
	}

	now := s.clock.Now()
	entry := memo.HistoryEntry{
		Date:       now.Format(memo.HistoryDateLayout),
		Action:     memo.ActionForward,
		To:         to,
		Comment:    strings.TrimSpace(req.Comment),
		Attachment: attachment,
	}

	m, err := s.store.AppendHistory(ctx, number, memo.ForwardedStatus(to), to, entry, now)
	if err != nil {
		if attachmentPath != "" {
			if derr := s.files.Discard(attachmentPath); derr != nil {
				s.logger.Warn("failed to remove unrecorded attachment", zap.String("path", attachmentPath), zap.Error(derr))
			}
		}
		return nil, err
	}

	s.logger.Info("memo forwarded",
		zap.String("memo", number),
		zap.String("to", to),
		zap.String("status", m.Status),
		zap.Bool("attachment", attachment != ""))
	return m, nil
}

// Approve marks a memo approved where it currently sits. Approving twice
// fails with memo.ErrAlreadyApproved.
func (s *Service) Approve(ctx context.Context, number, comment string) (*memo.Memo, error) {
	number = strings.TrimSpace(number)
	now := s.clock.Now()

	m, err := s.store.Update(ctx, number, func(m *memo.Memo) error {
		if m.IsApproved() {
			return fmt.Errorf("approve memo %s: %w", number, memo.ErrAlreadyApproved)
		}
		m.History = append(m.History, memo.HistoryEntry{
			Date:    now.Format(memo.HistoryDateLayout),
			Action:  memo.ActionApprove,
			To:      m.CurrentLocation,
			Comment: strings.TrimSpace(comment),
		})
		m.Status = memo.StatusApproved
		m.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("memo approved",
		zap.String("memo", number),
		zap.String("location", m.CurrentLocation))
	return m, nil
}

// StatusReport is the quick status lookup.
type StatusReport struct {
	Number          string `json:"memo_number"`
	Status          string `json:"status"`
	CurrentLocation string `json:"current_location"`
}

// Status returns where a memo is and what state it is in.
func (s *Service) Status(ctx context.Context, number string) (StatusReport, error) {
	m, err := s.store.GetMemo(ctx, strings.TrimSpace(number))
	if err != nil {
		return StatusReport{}, err
	}
	return StatusReport{Number: m.Number, Status: m.Status, CurrentLocation: m.CurrentLocation}, nil
}

// Show returns the full memo. If the recorded scan path is gone, the scan
// is looked up again by number; a memo with no scan on disk has an empty
// ScannedFile.
func (s *Service) Show(ctx context.Context, number string) (*memo.Memo, error) {
	m, err := s.store.GetMemo(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, err
	}
	path, err := s.files.FindScan(m.Number)
	switch {
	case err == nil:
		m.ScannedFile = path
	case errors.Is(err, intake.ErrScanNotFound):
		s.logger.Warn("scanned memo file not found", zap.String("memo", m.Number))
		m.ScannedFile = ""
	default:
		return nil, err
	}
	return m, nil
}

// Search lists memos matching f.
func (s *Service) Search(ctx context.Context, f memo.Filter) ([]*memo.Memo, error) {
	memos, err := s.store.ListMemos(ctx, f)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("memo search", zap.Int("results", len(memos)))
	return memos, nil
}
