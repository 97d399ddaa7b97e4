package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the layout of the start-date setting.
const DateFormat = "2006-01-02"

type Config struct {
	// Backend selection: "xlsx" or "sheets"
	Backend string

	// xlsx backend
	InputPath  string
	OutputPath string

	// Google Sheets backend. Output defaults to the input spreadsheet:
	// the STAT sheet then lands next to the SRT sheet, like the xlsx
	// output file does.
	SpreadsheetID       string
	OutputSpreadsheetID string

	// Sheet names
	SRTSheet  string
	STATSheet string

	// Aggregation window
	StartDate string
	Months    int

	// C2 markers that void a record for summation
	ExcludeTokens []string
}

func Load() *Config {
	cfg := &Config{
		Backend: getEnv("LEDGER_BACKEND", "xlsx"),

		InputPath:  getEnv("LEDGER_INPUT", ""),
		OutputPath: getEnv("LEDGER_OUTPUT", ""),

		SpreadsheetID:       getEnv("GOOGLE_SPREADSHEET_ID", ""),
		OutputSpreadsheetID: getEnv("GOOGLE_OUTPUT_SPREADSHEET_ID", ""),

		SRTSheet:  getEnv("SRT_SHEET", "SRT"),
		STATSheet: getEnv("STAT_SHEET", "STAT"),

		StartDate: getEnv("STAT_START_DATE", ""),
		Months:    getEnvInt("STAT_MONTHS", 6),

		ExcludeTokens: getEnvList("EXCLUDE_TOKENS", []string{"RTN"}),
	}
	return cfg
}

// Validate validates the configuration and returns an error naming
// every problem found.
func (c *Config) Validate() error {
	var errors []string

	switch c.Backend {
	case "xlsx":
		if c.InputPath == "" {
			errors = append(errors, "input path is required for the xlsx backend")
		} else if _, err := os.Stat(c.InputPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("input file does not exist: %s", c.InputPath))
		}
		if c.OutputPath == "" {
			errors = append(errors, "output path is required for the xlsx backend")
		}
	case "sheets":
		if c.SpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required for the sheets backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of [xlsx sheets]", c.Backend))
	}

	if c.SRTSheet == "" {
		errors = append(errors, "SRT sheet name cannot be empty")
	}
	if c.STATSheet == "" {
		errors = append(errors, "STAT sheet name cannot be empty")
	}
	if c.SRTSheet != "" && c.SRTSheet == c.STATSheet {
		errors = append(errors, "SRT and STAT sheet names must differ")
	}

	if c.StartDate == "" {
		errors = append(errors, "start date is required (YYYY-MM-DD)")
	} else if _, err := time.Parse(DateFormat, c.StartDate); err != nil {
		errors = append(errors, fmt.Sprintf("invalid start date '%s': must be YYYY-MM-DD", c.StartDate))
	}

	if c.Months < 1 {
		errors = append(errors, fmt.Sprintf("invalid month count %d: must be at least 1", c.Months))
	} else if c.Months > 120 {
		errors = append(errors, fmt.Sprintf("invalid month count %d: must be at most 120", c.Months))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// Start returns the parsed start date. Call Validate first.
func (c *Config) Start() time.Time {
	t, _ := time.Parse(DateFormat, c.StartDate)
	return t
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
