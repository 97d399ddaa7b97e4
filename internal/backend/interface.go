package backend

import (
	"github.com/sandeepbabloo/loan-primer/internal/ledger"
)

// Backend bundles the spreadsheet source and sink a run works against.
type Backend struct {
	Source ledger.Source
	Sink   ledger.Sink

	// CopyLedger reports whether the run should mirror the SRT sheet
	// into the output. False when source and sink are the same remote
	// spreadsheet: rewriting SRT in place would mutate the input.
	CopyLedger bool

	// Cleanup releases source handles. May be nil.
	Cleanup func() error
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// xlsx specific
	InputPath  string
	OutputPath string

	// Google Sheets specific
	SpreadsheetID       string
	OutputSpreadsheetID string
}

// Type represents the kind of spreadsheet backend.
type Type string

const (
	XLSXBackend   Type = "xlsx"
	SheetsBackend Type = "sheets"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case XLSXBackend, SheetsBackend:
		return true
	default:
		return false
	}
}
