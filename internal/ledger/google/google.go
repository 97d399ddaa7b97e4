// Package google adapts a Google Sheets spreadsheet to the ledger
// source and sink ports. Authentication uses a Service Account, the
// same way the rest of the Google tooling here expects it.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/sandeepbabloo/loan-primer/internal/core"
	"github.com/sandeepbabloo/loan-primer/internal/ledger"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var (
	_ ledger.Source = (*Client)(nil)
	_ ledger.Sink   = (*Client)(nil)
)

// New creates a Sheets client bound to one spreadsheet. Credentials
// come from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Rows returns every cell of the named sheet as text. Sheets API values
// come back untyped; everything downstream expects strings.
func (c *Client) Rows(ctx context.Context, sheet string) ([][]string, error) {
	if ok, err := c.sheetExists(ctx, sheet); err != nil {
		return nil, err
	} else if !ok {
		return nil, &core.SheetNotFoundError{Sheet: sheet}
	}

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, sheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) sheetExists(ctx context.Context, sheet string) (bool, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == sheet {
			return true, nil
		}
	}
	return false, nil
}

// WriteSheet replaces the contents of the named sheet, creating it if
// absent. Styling hints are ignored: the report is about the numbers,
// remote formatting stays whatever the spreadsheet owner set up.
func (c *Client) WriteSheet(ctx context.Context, sheet string, rows [][]any, opts ledger.WriteOptions) error {
	exists, err := c.sheetExists(ctx, sheet)
	if err != nil {
		return err
	}
	if !exists {
		req := &gsheet.BatchUpdateSpreadsheetRequest{
			Requests: []*gsheet.Request{{
				AddSheet: &gsheet.AddSheetRequest{
					Properties: &gsheet.SheetProperties{Title: sheet},
				},
			}},
		}
		if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
	}

	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, sheet, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %q: %w", sheet, err)
	}

	vr := &gsheet.ValueRange{Values: sanitize(rows)}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, sheet+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write sheet %q: %w", sheet, err)
	}

	slog.InfoContext(ctx, "sheet written", "sheet", sheet, "rows", len(rows))
	return nil
}

// Flush is a no-op: the Sheets API persists each write.
func (c *Client) Flush(ctx context.Context) error {
	return nil
}

// sanitize replaces nil cells with empty strings; the values API
// rejects JSON nulls inside a row.
func sanitize(rows [][]any) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		clean := make([]any, len(row))
		for j, cell := range row {
			if cell == nil {
				clean[j] = ""
			} else {
				clean[j] = cell
			}
		}
		out[i] = clean
	}
	return out
}
