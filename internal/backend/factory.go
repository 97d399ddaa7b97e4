package backend

import (
	"context"
	"fmt"

	gledger "github.com/sandeepbabloo/loan-primer/internal/ledger/google"
	"github.com/sandeepbabloo/loan-primer/internal/ledger/xlsx"
)

// New creates the source/sink pair for the configured backend.
func New(ctx context.Context, cfg Config) (*Backend, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case XLSXBackend:
		return newXLSXBackend(cfg)
	case SheetsBackend:
		return newSheetsBackend(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func newXLSXBackend(cfg Config) (*Backend, error) {
	src, err := xlsx.Open(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	return &Backend{
		Source:     src,
		Sink:       xlsx.NewWriter(cfg.OutputPath),
		CopyLedger: true,
		Cleanup:    src.Close,
	}, nil
}

func newSheetsBackend(ctx context.Context, cfg Config) (*Backend, error) {
	src, err := gledger.New(ctx, cfg.SpreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("sheets source: %w", err)
	}

	outID := cfg.OutputSpreadsheetID
	if outID == "" || outID == cfg.SpreadsheetID {
		// Writing into the input spreadsheet: only the STAT sheet goes
		// out, the SRT sheet is left untouched.
		return &Backend{Source: src, Sink: src, CopyLedger: false}, nil
	}

	sink, err := gledger.New(ctx, outID)
	if err != nil {
		return nil, fmt.Errorf("sheets sink: %w", err)
	}
	return &Backend{Source: src, Sink: sink, CopyLedger: true}, nil
}
