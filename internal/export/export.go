// Package export writes filtered memo records as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ilawal010/Clerk/internal/memo"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet name used for XLSX exports.
const SheetName = "Memos"

// Columns is the header row of every export.
var Columns = []string{
	"Memo Number",
	"Title",
	"Type",
	"From",
	"To",
	"Sender Name",
	"Date Received",
	"Status",
	"Current Location",
}

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv or xlsx)", s)
}

// FormatForPath infers the format from a file extension, defaulting to CSV.
func FormatForPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Row renders m as one export row, aligned with Columns.
func Row(m *memo.Memo) []string {
	return []string{
		m.Number,
		m.Title,
		string(m.Type),
		m.From,
		m.To,
		m.SenderName(),
		m.DateReceived.Format(memo.DateLayout),
		m.Status,
		m.CurrentLocation,
	}
}

// Write encodes memos to w in the given format.
func Write(w io.Writer, memos []*memo.Memo, format Format) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, memos)
	case FormatXLSX:
		return writeXLSX(w, memos)
	}
	return fmt.Errorf("unknown export format %q", format)
}

func writeCSV(w io.Writer, memos []*memo.Memo) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range memos {
		if err := cw.Write(Row(m)); err != nil {
			return fmt.Errorf("write csv row %s: %w", m.Number, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, memos []*memo.Memo) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	if err := setRow(f, 1, Columns); err != nil {
		return err
	}
	for i, m := range memos {
		if err := setRow(f, i+2, Row(m)); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx row %d: %w", row, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("xlsx row %d: %w", row, err)
	}
	return nil
}
