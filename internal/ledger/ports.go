package ledger

import "context"

// Ports for spreadsheet adapters. Sources and sinks are deliberately
// dumb: they move raw rows, all typing happens in this package.
type (
	// Source reads one sheet of a spreadsheet as raw cell text.
	// Implementations return *core.SheetNotFoundError when the sheet
	// does not exist.
	Source interface {
		Rows(ctx context.Context, sheet string) ([][]string, error)
	}

	// Sink renders an ordered row grid into a named output sheet.
	// Adapters that cannot style (e.g. remote APIs) ignore WriteOptions.
	Sink interface {
		WriteSheet(ctx context.Context, sheet string, rows [][]any, opts WriteOptions) error
		// Flush persists everything written so far. Nothing is visible
		// to the user before Flush succeeds on file-based sinks.
		Flush(ctx context.Context) error
	}
)

// WriteOptions carries rendering hints for a single sheet.
type WriteOptions struct {
	BoldHeader bool // embolden the first row
	BoldLabels bool // embolden the first column
}
