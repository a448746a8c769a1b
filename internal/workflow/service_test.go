package workflow

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ilawal010/Clerk/internal/intake"
	"github.com/ilawal010/Clerk/internal/memo"
	"github.com/ilawal010/Clerk/internal/store"
	"github.com/ilawal010/Clerk/internal/testutil"
)

var start = time.Date(2025, 8, 4, 9, 15, 0, 0, time.UTC)

type copyStamper struct{}

func (copyStamper) Stamp(src, dst, text string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, append(data, text...), 0o644)
}

type fixture struct {
	svc    *Service
	store  *store.Store
	files  *intake.Files
	logs   *observer.ObservedLogs
	clock  *testutil.StepClock
	dbPath string
}

func newFixture(t *testing.T, fills ...byte) *fixture {
	t.Helper()
	root := t.TempDir()
	layout := intake.Layout{Root: root}
	require.NoError(t, layout.Ensure())

	dbPath := filepath.Join(layout.RecordsDir(), "memos.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	core, logs := observer.New(zap.DebugLevel)
	clock := testutil.NewStepClock(start, time.Hour)
	files := intake.NewFiles(layout, copyStamper{})

	svc := NewService(st, files, memo.NewDirectory(nil), memo.NewNumberGenerator("NITT/DG"),
		WithClock(clock),
		WithLogger(zap.New(core)),
		WithRand(testutil.NewScriptedReader(fills...)),
	)
	return &fixture{svc: svc, store: st, files: files, logs: logs, clock: clock, dbPath: dbPath}
}

// rejectWrites installs a trigger, through a second connection, that makes
// every INSERT or UPDATE (op) on memos fail.
func (f *fixture) rejectWrites(t *testing.T, op string) {
	t.Helper()
	db, err := sql.Open("sqlite3", f.dbPath+"?_busy_timeout=5000")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TRIGGER reject_` + op + ` BEFORE ` + op + ` ON memos
		BEGIN SELECT RAISE(ABORT, 'writes disabled'); END`)
	require.NoError(t, err)
}

func scan(name string) *Document {
	return &Document{Name: name, Body: strings.NewReader("scanned-bytes")}
}

func internalRequest() LogRequest {
	return LogRequest{
		Type:         memo.TypeInternal,
		Title:        "Vehicle maintenance budget",
		DateReceived: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Signatory:    "A. Bello",
		From:         "bursary",
		To:           "Registry",
		Scan:         scan("budget.pdf"),
	}
}

func TestLog_Internal(t *testing.T) {
	f := newFixture(t, 0x00)
	ctx := context.Background()

	m, err := f.svc.Log(ctx, internalRequest())
	require.NoError(t, err)

	assert.Equal(t, "NITT/DG/2025/3022", m.Number)
	assert.Equal(t, memo.StatusPending, m.Status)
	assert.Equal(t, "Registry", m.CurrentLocation)
	assert.Equal(t, "Bursary", m.From, "department spelling is canonicalized")
	assert.Equal(t, filepath.Join(f.files.Layout().ScannedDir(), "NITT-DG-2025-3022_stamped.pdf"), m.ScannedFile)
	assert.Empty(t, m.History)

	stored, err := f.store.GetMemo(ctx, m.Number)
	require.NoError(t, err)
	assert.Equal(t, m, stored)

	entries := f.logs.FilterMessage("memo logged").All()
	require.Len(t, entries, 1)
	assert.Equal(t, m.Number, entries[0].ContextMap()["memo"])
}

func TestLog_External(t *testing.T) {
	f := newFixture(t, 0x01)

	m, err := f.svc.Log(context.Background(), LogRequest{
		Type:   memo.TypeExternal,
		Title:  "Request for collaboration",
		Sender: &memo.Sender{Name: "Lagos Ports Authority", Email: "info@lpa.example"},
		Scan:   scan("letter.PNG"),
	})
	require.NoError(t, err)

	assert.Equal(t, "NITT/DG/2025/1334", m.Number)
	assert.Equal(t, "Lagos Ports Authority", m.CurrentLocation)
	assert.Equal(t, memo.Date(start), m.DateReceived, "date received defaults to today")
	assert.True(t, strings.HasSuffix(m.ScannedFile, "NITT-DG-2025-1334.png"))
}

func TestLog_RetriesTakenNumber(t *testing.T) {
	f := newFixture(t, 0x00, 0x00, 0x02)
	ctx := context.Background()

	first, err := f.svc.Log(ctx, internalRequest())
	require.NoError(t, err)
	second, err := f.svc.Log(ctx, internalRequest())
	require.NoError(t, err)

	assert.Equal(t, "NITT/DG/2025/3022", first.Number)
	assert.Equal(t, "NITT/DG/2025/2668", second.Number)
	assert.Equal(t, 1, f.logs.FilterMessage("memo number taken, retrying").Len())
}

func TestLog_GivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newFixture(t, 0x00)
	ctx := context.Background()

	_, err := f.svc.Log(ctx, internalRequest())
	require.NoError(t, err)

	_, err = f.svc.Log(ctx, internalRequest())
	require.ErrorIs(t, err, memo.ErrDuplicateNumber)

	n, err := f.store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLog_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := internalRequest()
	req.Title = "   "
	_, err := f.svc.Log(ctx, req)
	require.ErrorIs(t, err, memo.ErrInvalid)
	assert.Contains(t, err.Error(), "title")

	req = internalRequest()
	req.Scan = nil
	_, err = f.svc.Log(ctx, req)
	require.ErrorIs(t, err, memo.ErrInvalid)
	assert.Contains(t, err.Error(), "scanned memo is required")

	req = internalRequest()
	req.Scan = scan("budget.docx")
	_, err = f.svc.Log(ctx, req)
	require.ErrorIs(t, err, intake.ErrUnsupportedType)

	n, err := f.store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "failed intake stores nothing")
}

func TestForward(t *testing.T) {
	f := newFixture(t, 0x00)
	ctx := context.Background()

	m, err := f.svc.Log(ctx, internalRequest())
	require.NoError(t, err)

	forwarded, err := f.svc.Forward(ctx, m.Number, ForwardRequest{
		To:         "dg/ce",
		Comment:    "  Please review  ",
		Attachment: &Document{Name: "quote.pdf", Body: strings.NewReader("q")},
	})
	require.NoError(t, err)

	assert.Equal(t, "Forwarded to DG/CE", forwarded.Status)
	assert.Equal(t, "DG/CE", forwarded.CurrentLocation)
	require.Len(t, forwarded.History, 1)
	assert.Equal(t, memo.HistoryEntry{
		Date:       "2025-08-04 10:15",
		Action:     memo.ActionForward,
		To:         "DG/CE",
		Comment:    "Please review",
		Attachment: "quote.pdf",
	}, forwarded.History[0])

	_, err = os.Stat(filepath.Join(f.files.Layout().AttachmentsDir(), "NITT-DG-2025-3022_quote.pdf"))
	require.NoError(t, err)

	again, err := f.svc.Forward(ctx, m.Number, ForwardRequest{To: "Bursary"})
	require.NoError(t, err)
	require.Len(t, again.History, 2)
	assert.Equal(t, forwarded.History[0], again.History[0], "history is append-only")
	assert.Equal(t, "", again.History[1].Attachment)
}

func TestForward_Errors(t *testing.T) {
	f := newFixture(t, 0x00)
	ctx := context.Background()

	_, err := f.svc.Forward(ctx, "NITT/DG/2025/9999", ForwardRequest{To: "Registry"})
	require.ErrorIs(t, err, memo.ErrNotFound)

	m, err := f.svc.Log(ctx, internalRequest())
	require.NoError(t, err)

	_, err = f.svc.Forward(ctx, m.Number, ForwardRequest{To: "Canteen"})
	require.ErrorIs(t, err, memo.ErrInvalid)

	_, err = f.svc.Forward(ctx, m.Number, ForwardRequest{
		To:         "Registry",
		Attachment: &Document{Name: "macro.xlsm", Body: strings.NewReader("")},
	})
	require.ErrorIs(t, err, intake.ErrUnsupportedType)

	stored, err := f.store.GetMemo(ctx, m.Number)
	require.NoError(t, err)
	assert.Empty(t, stored.History, "failed forwards leave history untouched")
}

func TestLog_InsertFailureRemovesScan(t *testing.T) {
	f := newFixture(t, 0x00)
	ctx := context.Background()
	f.rejectWrites(t, "INSERT")

	_, err := f.svc.Log(ctx, internalRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writes disabled")

	_, err = f.files.FindScan("NITT/DG/2025/3022")
	assert.ErrorIs(t, err, intake.ErrScanNotFound)

	entries, err := os.ReadDir(f.files.Layout().ScannedDir())
	require.NoError(t, err)
	assert.Empty(t, entries, "no scan is left without a record")
}

func TestForward_UpdateFailureRemovesAttachment(t *testing.T) {
	f := newFixture(t, 0x00)
	ctx := context.Background()

	m, err := f.svc.Log(ctx, internalRequest())
	require.NoError(t, err)
	f.rejectWrites(t, "UPDATE")

	_, err = f.svc.Forward(ctx, m.Number, ForwardRequest{
		To:         "DG/CE",
		Attachment: &Document{Name: "quote.pdf", Body: strings.NewReader("q")},
	})
	require.Error(t, err)

	entries, err := os.ReadDir(f.files.Layout().AttachmentsDir())
	require.NoError(t, err)
	assert.Empty(t, entries, "no attachment is left without a history entry")

	stored, err := f.store.GetMemo(ctx, m.Number)
	require.NoError(t, err)
	assert.Equal(t, memo.StatusPending, stored.Status)
}

func TestRouting_TrimsNumber(t *testing.T) {
	f := newFixture(t, 0x00)
	ctx := context.Background()

	m, err := f.svc.Log(ctx, internalRequest())
	require.NoError(t, err)
	padded := "  " + m.Number + " \n"

	forwarded, err := f.svc.Forward(ctx, padded, ForwardRequest{
		To:         "DG/CE",
		Attachment: &Document{Name: "quote.pdf", Body: strings.NewReader("q")},
	})
	require.NoError(t, err)
	assert.Equal(t, m.Number, forwarded.Number)
	_, err = os.Stat(filepath.Join(f.files.Layout().AttachmentsDir(), "NITT-DG-2025-3022_quote.pdf"))
	require.NoError(t, err)

	approved, err := f.svc.Approve(ctx, padded, "")
	require.NoError(t, err)
	assert.Equal(t, memo.StatusApproved, approved.Status)

	report, err := f.svc.Status(ctx, padded)
	require.NoError(t, err)
	assert.Equal(t, memo.StatusApproved, report.Status)

	shown, err := f.svc.Show(ctx, padded)
	require.NoError(t, err)
	assert.Len(t, shown.History, 2)
}

func TestApprove(t *testing.T) {
	f := newFixture(t, 0x00)
	ctx := context.Background()

	m, err := f.svc.Log(ctx, internalRequest())
	require.NoError(t, err)
	_, err = f.svc.Forward(ctx, m.Number, ForwardRequest{To: "DG/CE"})
	require.NoError(t, err)

	approved, err := f.svc.Approve(ctx, m.Number, "Approved as requested")
	require.NoError(t, err)
	assert.Equal(t, memo.StatusApproved, approved.Status)
	assert.Equal(t, "DG/CE", approved.CurrentLocation)
	require.Len(t, approved.History, 2)
	assert.Equal(t, memo.ActionApprove, approved.History[1].Action)
	assert.Equal(t, "DG/CE", approved.History[1].To)

	_, err = f.svc.Approve(ctx, m.Number, "")
	require.ErrorIs(t, err, memo.ErrAlreadyApproved)

	stored, err := f.store.GetMemo(ctx, m.Number)
	require.NoError(t, err)
	assert.Len(t, stored.History, 2)
}

func TestStatusAndShow(t *testing.T) {
	f := newFixture(t, 0x00)
	ctx := context.Background()

	m, err := f.svc.Log(ctx, internalRequest())
	require.NoError(t, err)

	report, err := f.svc.Status(ctx, "  "+m.Number+" ")
	require.NoError(t, err)
	assert.Equal(t, StatusReport{Number: m.Number, Status: "Pending", CurrentLocation: "Registry"}, report)

	shown, err := f.svc.Show(ctx, m.Number)
	require.NoError(t, err)
	assert.Equal(t, m.ScannedFile, shown.ScannedFile)

	require.NoError(t, os.Remove(m.ScannedFile))
	shown, err = f.svc.Show(ctx, m.Number)
	require.NoError(t, err)
	// The unstamped original is still on disk.
	assert.Equal(t, filepath.Join(f.files.Layout().ScannedDir(), "NITT-DG-2025-3022.pdf"), shown.ScannedFile)

	_, err = f.svc.Status(ctx, "missing")
	require.ErrorIs(t, err, memo.ErrNotFound)
}

func TestSearch(t *testing.T) {
	f := newFixture(t, 0x00, 0x01)
	ctx := context.Background()

	_, err := f.svc.Log(ctx, internalRequest())
	require.NoError(t, err)
	_, err = f.svc.Log(ctx, LogRequest{
		Type:   memo.TypeExternal,
		Title:  "Tender notice",
		Sender: &memo.Sender{Name: "Acme"},
		Scan:   scan("t.jpg"),
	})
	require.NoError(t, err)

	all, err := f.svc.Search(ctx, memo.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ext, err := f.svc.Search(ctx, memo.Filter{Type: memo.TypeExternal})
	require.NoError(t, err)
	require.Len(t, ext, 1)
	assert.Equal(t, "Tender notice", ext[0].Title)
}
