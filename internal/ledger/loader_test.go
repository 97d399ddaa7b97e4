package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandeepbabloo/loan-primer/internal/core"
)

// fakeSource serves canned rows per sheet name.
type fakeSource struct {
	sheets map[string][][]string
}

func (f *fakeSource) Rows(ctx context.Context, sheet string) ([][]string, error) {
	rows, ok := f.sheets[sheet]
	if !ok {
		return nil, &core.SheetNotFoundError{Sheet: sheet}
	}
	return rows, nil
}

var fullHeader = []string{"#", "GRP", "Date", "C2", "Debit", "Credit", "Balance", "C1", "First Level Classification", "ITA"}

func srt(rows ...[]string) *fakeSource {
	return &fakeSource{sheets: map[string][][]string{
		"SRT": append([][]string{fullHeader}, rows...),
	}}
}

func TestLoad_DecodesTypedRecord(t *testing.T) {
	src := srt(
		[]string{"1", "BT", "2025-02-10", "NEFT inward", "0", "1,000.50", "5000", "Transfer", "Income", "Y"},
	)

	records, err := Load(context.Background(), src, "SRT")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Seq == nil || *rec.Seq != 1 {
		t.Errorf("Seq = %v, want 1", rec.Seq)
	}
	if rec.Group != "BT" {
		t.Errorf("Group = %q, want BT", rec.Group)
	}
	if want := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC); !rec.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", rec.Date, want)
	}
	if !rec.Credit.Equal(decimal.RequireFromString("1000.50")) {
		t.Errorf("Credit = %s, want 1000.50", rec.Credit)
	}
	if !rec.Debit.IsZero() {
		t.Errorf("Debit = %s, want 0", rec.Debit)
	}
	if !rec.Balance.Valid || !rec.Balance.Decimal.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Balance = %v, want 5000", rec.Balance)
	}
	if rec.Classification != "Income" || rec.Tag != "Y" || rec.Category != "Transfer" {
		t.Errorf("string fields not carried through: %+v", rec)
	}
}

func TestLoad_HeaderMatchingIsNormalizedAndOrderIndependent(t *testing.T) {
	src := &fakeSource{sheets: map[string][][]string{
		"SRT": {
			{"ita", " Balance ", "credit", "DEBIT", "c1", "c2", "date", "grp", "#", "FIRST  LEVEL   CLASSIFICATION"},
			{"Y", "100", "50", "", "cat", "desc", "2025-01-05", "BT", "7", "cls"},
		},
	}}

	records, err := Load(context.Background(), src, "SRT")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	rec := records[0]
	if rec.Group != "BT" || rec.Tag != "Y" || rec.Classification != "cls" {
		t.Errorf("columns mapped wrong: %+v", rec)
	}
	if !rec.Credit.Equal(decimal.NewFromInt(50)) || !rec.Debit.IsZero() {
		t.Errorf("amounts mapped wrong: credit=%s debit=%s", rec.Credit, rec.Debit)
	}
}

func TestLoad_MissingColumnsAllReported(t *testing.T) {
	src := &fakeSource{sheets: map[string][][]string{
		"SRT": {
			{"#", "GRP", "Date", "Debit", "Credit", "C1", "ITA"},
		},
	}}

	_, err := Load(context.Background(), src, "SRT")
	var schemaErr *core.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	want := []string{"C2", "Balance", "First Level Classification"}
	if len(schemaErr.Missing) != len(want) {
		t.Fatalf("Missing = %v, want %v", schemaErr.Missing, want)
	}
	for i, col := range want {
		if schemaErr.Missing[i] != col {
			t.Errorf("Missing[%d] = %q, want %q", i, schemaErr.Missing[i], col)
		}
	}
}

func TestLoad_EmptySheetIsSchemaError(t *testing.T) {
	src := &fakeSource{sheets: map[string][][]string{"SRT": {}}}
	_, err := Load(context.Background(), src, "SRT")
	var schemaErr *core.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != len(RequiredColumns) {
		t.Errorf("Missing = %v, want all required columns", schemaErr.Missing)
	}
}

func TestLoad_SheetNotFound(t *testing.T) {
	src := srt()
	_, err := Load(context.Background(), src, "NOPE")
	var nf *core.SheetNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected SheetNotFoundError, got %v", err)
	}
	if nf.Sheet != "NOPE" {
		t.Errorf("Sheet = %q, want NOPE", nf.Sheet)
	}
}

func TestLoad_DataTypeErrorCarriesRowAndColumn(t *testing.T) {
	tests := []struct {
		name    string
		row     []string
		wantCol string
	}{
		{
			name:    "garbage date",
			row:     []string{"1", "BT", "someday", "", "0", "0", "", "", "", ""},
			wantCol: ColDate,
		},
		{
			name:    "non-numeric debit",
			row:     []string{"1", "BT", "2025-01-05", "", "abc", "0", "", "", "", ""},
			wantCol: ColDebit,
		},
		{
			name:    "negative credit",
			row:     []string{"1", "BT", "2025-01-05", "", "0", "-12", "", "", "", ""},
			wantCol: ColCredit,
		},
		{
			name:    "non-numeric balance",
			row:     []string{"1", "BT", "2025-01-05", "", "0", "0", "n/a", "", "", ""},
			wantCol: ColBalance,
		},
		{
			name:    "non-integer sequence",
			row:     []string{"x", "BT", "2025-01-05", "", "0", "0", "", "", "", ""},
			wantCol: ColSeq,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := srt(
				[]string{"1", "BT", "2025-01-02", "", "0", "0", "", "", "", ""},
				tt.row,
			)
			_, err := Load(context.Background(), src, "SRT")
			var typeErr *core.DataTypeError
			if !errors.As(err, &typeErr) {
				t.Fatalf("expected DataTypeError, got %v", err)
			}
			if typeErr.Column != tt.wantCol {
				t.Errorf("Column = %q, want %q", typeErr.Column, tt.wantCol)
			}
			// Header is sheet row 1, good row is 2, bad row is 3.
			if typeErr.Row != 3 {
				t.Errorf("Row = %d, want 3", typeErr.Row)
			}
		})
	}
}

func TestLoad_BlankCellsUseDefaults(t *testing.T) {
	src := srt(
		[]string{"", "BT", "", "", "", "", "", "", "", ""},
	)

	records, err := Load(context.Background(), src, "SRT")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	rec := records[0]
	if rec.Seq != nil {
		t.Error("blank # should yield absent sequence number")
	}
	if rec.HasDate() {
		t.Error("blank date should yield an unusable record, not an error")
	}
	if !rec.Debit.IsZero() || !rec.Credit.IsZero() {
		t.Errorf("blank amounts should default to zero: debit=%s credit=%s", rec.Debit, rec.Credit)
	}
	if rec.Balance.Valid {
		t.Error("blank balance should be null")
	}
}

func TestLoad_ShortRowsTreatedAsBlank(t *testing.T) {
	src := srt(
		[]string{"1", "BT", "2025-01-05"},
	)
	records, err := Load(context.Background(), src, "SRT")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !records[0].Debit.IsZero() || records[0].Balance.Valid {
		t.Errorf("cells beyond row length should act blank: %+v", records[0])
	}
}

func TestLoad_RowOrderPreserved(t *testing.T) {
	src := srt(
		[]string{"3", "BT", "2025-01-30", "", "0", "0", "", "", "", ""},
		[]string{"1", "BT", "2025-01-05", "", "0", "0", "", "", "", ""},
		[]string{"2", "BT", "2025-01-10", "", "0", "0", "", "", "", ""},
	)

	records, err := Load(context.Background(), src, "SRT")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// No sorting: first row stays first regardless of dates or seq.
	want := []int64{3, 1, 2}
	for i, w := range want {
		if *records[i].Seq != w {
			t.Errorf("records[%d].Seq = %d, want %d", i, *records[i].Seq, w)
		}
	}
}

func TestParseDateForms(t *testing.T) {
	want := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	forms := []string{
		"2025-02-10",
		"2025-02-10 14:30:00",
		"2025-02-10T14:30:00",
		"10-02-2025",
		"10/02/2025",
		"10-Feb-2025",
		"10 Feb 2025",
	}
	for _, form := range forms {
		got, err := parseDate(form)
		if err != nil {
			t.Errorf("parseDate(%q) error = %v", form, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("parseDate(%q) = %v, want %v", form, got, want)
		}
	}
}

func TestParseDateExcelSerial(t *testing.T) {
	// 45698 is 2025-02-10 in the 1900 date system.
	got, err := parseDate("45698")
	if err != nil {
		t.Fatalf("parseDate serial error = %v", err)
	}
	if want := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("parseDate(45698) = %v, want %v", got, want)
	}
}
