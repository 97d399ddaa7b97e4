package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validXLSXConfig(t *testing.T) Config {
	t.Helper()
	input := filepath.Join(t.TempDir(), "ledger.xlsx")
	if err := os.WriteFile(input, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return Config{
		Backend:    "xlsx",
		InputPath:  input,
		OutputPath: filepath.Join(t.TempDir(), "out.xlsx"),
		SRTSheet:   "SRT",
		STATSheet:  "STAT",
		StartDate:  "2025-02-01",
		Months:     6,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid xlsx backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid sheets backend config",
			mutate: func(c *Config) {
				c.Backend = "sheets"
				c.SpreadsheetID = "1abc"
				c.InputPath = ""
				c.OutputPath = ""
			},
			wantErr: false,
		},
		{
			name: "invalid backend",
			mutate: func(c *Config) {
				c.Backend = "csv"
			},
			wantErr:     true,
			errorString: "invalid backend 'csv': must be one of [xlsx sheets]",
		},
		{
			name: "xlsx backend without input",
			mutate: func(c *Config) {
				c.InputPath = ""
			},
			wantErr:     true,
			errorString: "input path is required",
		},
		{
			name: "xlsx backend input missing on disk",
			mutate: func(c *Config) {
				c.InputPath = "/nonexistent/ledger.xlsx"
			},
			wantErr:     true,
			errorString: "input file does not exist",
		},
		{
			name: "sheets backend without spreadsheet ID",
			mutate: func(c *Config) {
				c.Backend = "sheets"
				c.SpreadsheetID = ""
			},
			wantErr:     true,
			errorString: "Google Spreadsheet ID is required",
		},
		{
			name: "same sheet for input and output",
			mutate: func(c *Config) {
				c.STATSheet = c.SRTSheet
			},
			wantErr:     true,
			errorString: "SRT and STAT sheet names must differ",
		},
		{
			name: "malformed start date",
			mutate: func(c *Config) {
				c.StartDate = "02/01/2025"
			},
			wantErr:     true,
			errorString: "invalid start date '02/01/2025': must be YYYY-MM-DD",
		},
		{
			name: "missing start date",
			mutate: func(c *Config) {
				c.StartDate = ""
			},
			wantErr:     true,
			errorString: "start date is required",
		},
		{
			name: "zero months",
			mutate: func(c *Config) {
				c.Months = 0
			},
			wantErr:     true,
			errorString: "invalid month count 0: must be at least 1",
		},
		{
			name: "absurd months",
			mutate: func(c *Config) {
				c.Months = 600
			},
			wantErr:     true,
			errorString: "invalid month count 600: must be at most 120",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validXLSXConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %v, want it to contain %q", err, tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{Backend: "xlsx", Months: -1}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{
		"input path is required",
		"output path is required",
		"start date is required",
		"invalid month count -1",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	// getEnv treats empty as unset, so blanking is enough to isolate
	// the test from the caller's environment.
	for _, key := range []string{
		"LEDGER_BACKEND", "LEDGER_INPUT", "LEDGER_OUTPUT",
		"SRT_SHEET", "STAT_SHEET", "STAT_START_DATE", "STAT_MONTHS", "EXCLUDE_TOKENS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Backend != "xlsx" {
		t.Errorf("Backend = %q, want xlsx", cfg.Backend)
	}
	if cfg.SRTSheet != "SRT" || cfg.STATSheet != "STAT" {
		t.Errorf("sheet defaults = %q/%q", cfg.SRTSheet, cfg.STATSheet)
	}
	if cfg.Months != 6 {
		t.Errorf("Months = %d, want 6", cfg.Months)
	}
	if len(cfg.ExcludeTokens) != 1 || cfg.ExcludeTokens[0] != "RTN" {
		t.Errorf("ExcludeTokens = %v, want [RTN]", cfg.ExcludeTokens)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "sheets")
	t.Setenv("STAT_MONTHS", "12")
	t.Setenv("EXCLUDE_TOKENS", "RTN, REV ,")

	cfg := Load()
	if cfg.Backend != "sheets" {
		t.Errorf("Backend = %q, want sheets", cfg.Backend)
	}
	if cfg.Months != 12 {
		t.Errorf("Months = %d, want 12", cfg.Months)
	}
	if len(cfg.ExcludeTokens) != 2 || cfg.ExcludeTokens[0] != "RTN" || cfg.ExcludeTokens[1] != "REV" {
		t.Errorf("ExcludeTokens = %v, want [RTN REV]", cfg.ExcludeTokens)
	}
}
