package core

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from the ledger header
// row. No rows are parsed when it is returned.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("ledger sheet is missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// DataTypeError reports a cell that could not be coerced to its field
// type. Row is the 1-based sheet row, header included.
type DataTypeError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *DataTypeError) Error() string {
	return fmt.Sprintf("row %d, column %q: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *DataTypeError) Unwrap() error {
	return e.Err
}

// SheetNotFoundError reports a requested sheet name absent from the
// source spreadsheet. Surfaced before any row parsing begins.
type SheetNotFoundError struct {
	Sheet string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found in spreadsheet", e.Sheet)
}
