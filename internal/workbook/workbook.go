// Package workbook exposes spreadsheet files as a set of named sheets of raw
// string cells.
package workbook

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// File is an opened XLSX workbook. Sheet names are reported exactly as stored
// in the file and cells are read as raw values, without number formats
// applied, so "1234.5" is never rendered as "$1,234.50".
type File struct {
	f *excelize.File
}

// Open reads a whole XLSX stream into memory.
func Open(r io.Reader) (*File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx stream: %w", err)
	}
	return &File{f: f}, nil
}

// OpenBytes is Open over an in-memory payload.
func OpenBytes(data []byte) (*File, error) {
	return Open(bytes.NewReader(data))
}

// SheetNames returns the sheet names in workbook order.
func (w *File) SheetNames() []string {
	return w.f.GetSheetList()
}

// Rows returns every row of the sheet. Rows are not padded: a row may be
// shorter than the header when its trailing cells are empty.
func (w *File) Rows(sheet string) ([][]string, error) {
	rows, err := w.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// Close releases the temporary files excelize may have created.
func (w *File) Close() error {
	return w.f.Close()
}

// Sheet is one named table of an in-memory workbook.
type Sheet struct {
	Name string
	Rows [][]string
}

// Static is a workbook held entirely in memory. It is what CSV-backed
// inputs and tests use in place of an XLSX file.
type Static struct {
	Sheets []Sheet
}

// SheetNames returns the sheet names in declaration order.
func (s *Static) SheetNames() []string {
	names := make([]string, 0, len(s.Sheets))
	for _, sh := range s.Sheets {
		names = append(names, sh.Name)
	}
	return names
}

// Rows returns the rows of the named sheet.
func (s *Static) Rows(sheet string) ([][]string, error) {
	for _, sh := range s.Sheets {
		if sh.Name == sheet {
			return sh.Rows, nil
		}
	}
	return nil, fmt.Errorf("sheet %s not found", sheet)
}
