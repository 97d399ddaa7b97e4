// Package xlsx adapts local .xlsx workbooks to the ledger source and
// sink ports using excelize.
package xlsx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/sandeepbabloo/loan-primer/internal/core"
	"github.com/sandeepbabloo/loan-primer/internal/ledger"
)

// Source reads sheets from an existing workbook. It never writes back
// to the file it was opened from.
type Source struct {
	f    *excelize.File
	path string
}

var _ ledger.Source = (*Source)(nil)

// Open opens the workbook at path for reading.
func Open(path string) (*Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Source{f: f, path: path}, nil
}

// Rows returns all cells of the named sheet as text, row-major, in
// sheet order.
func (s *Source) Rows(ctx context.Context, sheet string) ([][]string, error) {
	idx, err := s.f.GetSheetIndex(sheet)
	if err != nil || idx == -1 {
		return nil, &core.SheetNotFoundError{Sheet: sheet}
	}
	rows, err := s.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", sheet, err)
	}
	return rows, nil
}

func (s *Source) Close() error {
	return s.f.Close()
}

// Writer builds a new workbook in memory and saves it on Flush, so a
// failed run leaves no partial output file behind.
type Writer struct {
	f       *excelize.File
	path    string
	written int
}

var _ ledger.Sink = (*Writer)(nil)

// NewWriter prepares an output workbook targeting path. Nothing touches
// the filesystem until Flush.
func NewWriter(path string) *Writer {
	return &Writer{f: excelize.NewFile(), path: path}
}

// WriteSheet renders rows into the named sheet, applying bold styling
// per opts.
func (w *Writer) WriteSheet(ctx context.Context, sheet string, rows [][]any, opts ledger.WriteOptions) error {
	if _, err := w.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}

	width := 0
	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell reference for row %d: %w", i+1, err)
		}
		if err := w.f.SetSheetRow(sheet, ref, &row); err != nil {
			return fmt.Errorf("write row %d of %q: %w", i+1, sheet, err)
		}
		if len(row) > width {
			width = len(row)
		}
	}

	if err := w.applyStyles(sheet, len(rows), width, opts); err != nil {
		return err
	}

	w.written++
	slog.InfoContext(ctx, "sheet written", "sheet", sheet, "rows", len(rows))
	return nil
}

func (w *Writer) applyStyles(sheet string, height, width int, opts ledger.WriteOptions) error {
	if height == 0 || width == 0 || (!opts.BoldHeader && !opts.BoldLabels) {
		return nil
	}
	bold, err := w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create bold style: %w", err)
	}
	if opts.BoldHeader {
		end, err := excelize.CoordinatesToCellName(width, 1)
		if err != nil {
			return err
		}
		if err := w.f.SetCellStyle(sheet, "A1", end, bold); err != nil {
			return fmt.Errorf("style header of %q: %w", sheet, err)
		}
	}
	if opts.BoldLabels {
		end, err := excelize.CoordinatesToCellName(1, height)
		if err != nil {
			return err
		}
		if err := w.f.SetCellStyle(sheet, "A1", end, bold); err != nil {
			return fmt.Errorf("style label column of %q: %w", sheet, err)
		}
	}
	return nil
}

// Flush drops the default placeholder sheet and saves the workbook.
func (w *Writer) Flush(ctx context.Context) error {
	if w.written > 0 {
		// NewFile seeds a "Sheet1" we never asked for.
		if err := w.f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	slog.InfoContext(ctx, "workbook saved", "path", w.path, "sheets", w.written)
	return nil
}
