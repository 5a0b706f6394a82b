package inventory

import (
	"fmt"
	"strings"
)

// Error kinds reported by Kind() on the typed errors below.
const (
	KindUnreadableWorkbook = "unreadable_workbook"
	KindMissingTables      = "missing_tables"
	KindEmptyTable         = "empty_table"
	KindMissingColumns     = "missing_columns"
)

// UnreadableWorkbookError means the input is not a workbook at all.
type UnreadableWorkbookError struct {
	Cause error
}

func (e *UnreadableWorkbookError) Error() string {
	return fmt.Sprintf("unreadable workbook: %v", e.Cause)
}

func (e *UnreadableWorkbookError) Unwrap() error { return e.Cause }

func (e *UnreadableWorkbookError) Kind() string { return KindUnreadableWorkbook }

// MissingTablesError lists every required sheet absent from the workbook.
type MissingTablesError struct {
	Missing []string
}

func (e *MissingTablesError) Error() string {
	return "missing required sheets: " + strings.Join(e.Missing, ", ")
}

func (e *MissingTablesError) Kind() string { return KindMissingTables }

// EmptyTableError means a required sheet has a header but no data rows, or
// nothing at all.
type EmptyTableError struct {
	Table string
}

func (e *EmptyTableError) Error() string {
	return fmt.Sprintf("sheet %s has no data rows", e.Table)
}

func (e *EmptyTableError) Kind() string { return KindEmptyTable }

// MissingColumnsError lists the raw headers a sheet needs but lacks.
type MissingColumnsError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("sheet %s is missing columns: %s", e.Table, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Kind() string { return KindMissingColumns }
