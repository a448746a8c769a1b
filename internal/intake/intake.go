// Package intake stores scanned memos and routing attachments on disk.
//
// Files live under a data directory:
//
//	memos/scanned/      <safe-number>.<ext>, plus <safe-number>_stamped.pdf
//	memos/attachments/  <safe-number>_<original name>
//	memos/records/      the SQLite record file
//
// where safe-number is the reference number with "/" replaced by "-".
package intake

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilawal010/Clerk/internal/memo"
)

// AllowedExtensions lists the accepted scan and attachment types.
var AllowedExtensions = []string{"pdf", "png", "jpg", "jpeg"}

var (
	// ErrUnsupportedType is returned for files outside AllowedExtensions.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrScanNotFound is returned when a memo has no stored scan.
	ErrScanNotFound = errors.New("scanned memo file not found")
)

// Layout resolves the on-disk directories under a data root.
type Layout struct {
	Root string
}

func (l Layout) ScannedDir() string     { return filepath.Join(l.Root, "memos", "scanned") }
func (l Layout) AttachmentsDir() string { return filepath.Join(l.Root, "memos", "attachments") }
func (l Layout) RecordsDir() string     { return filepath.Join(l.Root, "memos", "records") }

// Ensure creates every directory in the layout.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.ScannedDir(), l.RecordsDir(), l.AttachmentsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// Files stores scans and attachments according to a Layout.
type Files struct {
	layout  Layout
	stamper Stamper
}

// NewFiles returns a Files rooted at layout. A nil stamper leaves PDFs
// unstamped.
func NewFiles(layout Layout, stamper Stamper) *Files {
	return &Files{layout: layout, stamper: stamper}
}

// Layout returns the directory layout in use.
func (f *Files) Layout() Layout {
	return f.layout
}

// SaveScan writes the scanned memo for number. PDFs are stamped with the
// reference number and the stamped copy's path is returned.
func (f *Files) SaveScan(number, srcName string, r io.Reader) (string, error) {
	ext, err := extension(srcName)
	if err != nil {
		return "", err
	}

	path := filepath.Join(f.layout.ScannedDir(), memo.SafeNumber(number)+"."+ext)
	if err := writeFile(path, r); err != nil {
		return "", fmt.Errorf("save scan: %w", err)
	}

	if ext != "pdf" || f.stamper == nil {
		return path, nil
	}

	stamped := stampedPath(path)
	if err := f.stamper.Stamp(path, stamped, StampText(number)); err != nil {
		_ = removeFiles(path, stamped)
		return "", fmt.Errorf("stamp scan %s: %w", number, err)
	}
	return stamped, nil
}

// DiscardScan removes every stored scan for number. It is used to undo
// SaveScan when the memo record could not be written.
func (f *Files) DiscardScan(number string) error {
	return removeFiles(f.scanCandidates(number)...)
}

// Discard removes a file written by SaveAttachment.
func (f *Files) Discard(path string) error {
	return removeFiles(path)
}

// FindScan locates the stored scan for number, preferring the stamped PDF.
func (f *Files) FindScan(number string) (string, error) {
	for _, c := range f.scanCandidates(number) {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("%s: %w", number, ErrScanNotFound)
}

// scanCandidates lists the paths a scan for number may be stored at, the
// stamped PDF first.
func (f *Files) scanCandidates(number string) []string {
	base := filepath.Join(f.layout.ScannedDir(), memo.SafeNumber(number))
	candidates := []string{stampedPath(base + ".pdf")}
	for _, ext := range AllowedExtensions {
		candidates = append(candidates, base+"."+ext)
	}
	return candidates
}

// SaveAttachment stores an additional document sent along with a routing
// step and returns its path.
func (f *Files) SaveAttachment(number, srcName string, r io.Reader) (string, error) {
	if _, err := extension(srcName); err != nil {
		return "", err
	}
	name := filepath.Base(srcName)
	path := filepath.Join(f.layout.AttachmentsDir(), memo.SafeNumber(number)+"_"+name)
	if err := writeFile(path, r); err != nil {
		return "", fmt.Errorf("save attachment: %w", err)
	}
	return path, nil
}

// StampText is the text placed on the first page of a scanned PDF.
func StampText(number string) string {
	return "Reference No: " + number
}

func extension(name string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for _, a := range AllowedExtensions {
		if ext == a {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w: %q (allowed: %s)", ErrUnsupportedType, filepath.Base(name), strings.Join(AllowedExtensions, ", "))
}

func stampedPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + "_stamped.pdf"
}

// removeFiles deletes paths, ignoring ones that do not exist.
func removeFiles(paths ...string) error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func writeFile(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
