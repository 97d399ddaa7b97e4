package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sandeepbabloo/loan-primer/internal/backend"
	"github.com/sandeepbabloo/loan-primer/internal/cli"
	"github.com/sandeepbabloo/loan-primer/internal/config"
	"github.com/sandeepbabloo/loan-primer/internal/ledger"
	"github.com/sandeepbabloo/loan-primer/internal/report"
	"github.com/sandeepbabloo/loan-primer/internal/stats"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	cfg := config.Load()
	flag.StringVar(&cfg.Backend, "backend", cfg.Backend, "spreadsheet backend: xlsx or sheets")
	flag.StringVar(&cfg.InputPath, "in", cfg.InputPath, "input .xlsx file (xlsx backend)")
	flag.StringVar(&cfg.OutputPath, "out", cfg.OutputPath, "output .xlsx file (xlsx backend)")
	flag.StringVar(&cfg.SpreadsheetID, "spreadsheet", cfg.SpreadsheetID, "Google spreadsheet ID (sheets backend)")
	flag.StringVar(&cfg.SRTSheet, "srt-sheet", cfg.SRTSheet, "name of the ledger sheet")
	flag.StringVar(&cfg.STATSheet, "stat-sheet", cfg.STATSheet, "name of the report sheet")
	flag.StringVar(&cfg.StartDate, "start", cfg.StartDate, "first month of the report (YYYY-MM-DD)")
	flag.IntVar(&cfg.Months, "months", cfg.Months, "number of months to compute")
	flag.Parse()

	cli.ValidateConfig(logger, cfg)

	if err := run(context.Background(), cfg); err != nil {
		logger.Error("Processing failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	b, err := backend.New(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("initialize %s backend: %w", cfg.Backend, err)
	}
	if b.Cleanup != nil {
		defer func() {
			if err := b.Cleanup(); err != nil {
				slog.WarnContext(ctx, "backend cleanup failed", "error", err)
			}
		}()
	}

	records, err := ledger.Load(ctx, b.Source, cfg.SRTSheet)
	if err != nil {
		return err
	}

	rows := stats.Compute(records, cfg.Start(), cfg.Months, stats.Options{
		ExcludeTokens: cfg.ExcludeTokens,
	})
	summary := stats.Summarize(rows)
	slog.InfoContext(ctx, "statistics computed",
		"start", cfg.StartDate, "months", cfg.Months, "records", len(records))

	// All computation is done before the first write: a failed run
	// leaves no partial output behind.
	if b.CopyLedger {
		err = b.Sink.WriteSheet(ctx, cfg.SRTSheet, report.LedgerRows(records),
			ledger.WriteOptions{BoldHeader: true})
		if err != nil {
			return fmt.Errorf("write ledger copy: %w", err)
		}
	}
	err = b.Sink.WriteSheet(ctx, cfg.STATSheet, report.Build(rows, summary),
		ledger.WriteOptions{BoldHeader: true, BoldLabels: true})
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return b.Sink.Flush(ctx)
}
