// Package ledger loads SRT transaction records from a spreadsheet
// source: it validates the header by column name, coerces cell text to
// typed fields and preserves row order exactly as read.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sandeepbabloo/loan-primer/internal/core"
)

// Canonical SRT column names. Matching is case- and
// whitespace-insensitive but every one of them must be present.
const (
	ColSeq            = "#"
	ColGroup          = "GRP"
	ColDate           = "Date"
	ColDescription    = "C2"
	ColDebit          = "Debit"
	ColCredit         = "Credit"
	ColBalance        = "Balance"
	ColCategory       = "C1"
	ColClassification = "First Level Classification"
	ColTag            = "ITA"
)

// RequiredColumns lists every column an SRT sheet must carry, in
// canonical order. Also used to render the ledger copy in the output.
var RequiredColumns = []string{
	ColSeq, ColGroup, ColDate, ColDescription, ColDebit,
	ColCredit, ColBalance, ColCategory, ColClassification, ColTag,
}

// columnIndex maps canonical column names to their position in the
// header row actually read.
type columnIndex map[string]int

// Load reads the named sheet through src and decodes every data row
// into a core.Record. The first row is the header; data rows keep their
// top-to-bottom order. The source is never mutated.
func Load(ctx context.Context, src Source, sheet string) ([]core.Record, error) {
	rows, err := src.Rows(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, &core.SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}

	idx, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]core.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := decodeRow(row, idx, i+2) // +2: 1-based, header is row 1
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	slog.InfoContext(ctx, "ledger loaded", "sheet", sheet, "rows", len(records))
	return records, nil
}

// mapHeader resolves every required column by normalized name,
// order-independent. All missing columns are reported together.
func mapHeader(header []string) (columnIndex, error) {
	byName := make(map[string]int, len(header))
	for i, cell := range header {
		name := normalizeName(cell)
		if name == "" {
			continue
		}
		if _, dup := byName[name]; !dup {
			byName[name] = i
		}
	}

	idx := make(columnIndex, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		pos, ok := byName[normalizeName(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = pos
	}
	if len(missing) > 0 {
		return nil, &core.SchemaError{Missing: missing}
	}
	return idx, nil
}

// normalizeName lowercases a header cell and collapses internal
// whitespace so "first  level classification" matches.
func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func decodeRow(row []string, idx columnIndex, sheetRow int) (core.Record, error) {
	cell := func(col string) string {
		pos := idx[col]
		if pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	seq, err := parseSeq(cell(ColSeq))
	if err != nil {
		return core.Record{}, &core.DataTypeError{Row: sheetRow, Column: ColSeq, Value: cell(ColSeq), Err: err}
	}
	date, err := parseDate(cell(ColDate))
	if err != nil {
		return core.Record{}, &core.DataTypeError{Row: sheetRow, Column: ColDate, Value: cell(ColDate), Err: err}
	}
	debit, err := parseAmount(cell(ColDebit))
	if err != nil {
		return core.Record{}, &core.DataTypeError{Row: sheetRow, Column: ColDebit, Value: cell(ColDebit), Err: err}
	}
	credit, err := parseAmount(cell(ColCredit))
	if err != nil {
		return core.Record{}, &core.DataTypeError{Row: sheetRow, Column: ColCredit, Value: cell(ColCredit), Err: err}
	}
	balance, err := parseBalance(cell(ColBalance))
	if err != nil {
		return core.Record{}, &core.DataTypeError{Row: sheetRow, Column: ColBalance, Value: cell(ColBalance), Err: err}
	}

	return core.Record{
		Seq:            seq,
		Group:          cell(ColGroup),
		Date:           date,
		Description:    cell(ColDescription),
		Debit:          debit,
		Credit:         credit,
		Balance:        balance,
		Category:       cell(ColCategory),
		Classification: cell(ColClassification),
		Tag:            cell(ColTag),
	}, nil
}
