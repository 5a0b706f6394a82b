package inventory

import (
	"github.com/andresuchdata/outlet-insight/internal/workbook"
)

// Workbook is a set of named sheets of raw cells. The first row of a sheet
// is its header.
type Workbook interface {
	SheetNames() []string
	Rows(sheet string) ([][]string, error)
}

// Open reads XLSX bytes. Anything that is not a readable workbook fails with
// an *UnreadableWorkbookError.
func Open(data []byte) (*workbook.File, error) {
	f, err := workbook.OpenBytes(data)
	if err != nil {
		return nil, &UnreadableWorkbookError{Cause: err}
	}
	return f, nil
}

// Validate checks that every required sheet is present. Names must match
// exactly; extra sheets are ignored and row data is never read.
func Validate(wb Workbook) error {
	present := make(map[string]bool)
	for _, name := range wb.SheetNames() {
		present[name] = true
	}

	var missing []string
	for _, name := range RequiredSheets {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingTablesError{Missing: missing}
	}
	return nil
}
