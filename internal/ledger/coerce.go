package ledger

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errBadDate       = errors.New("unrecognized date")
	errBadAmount     = errors.New("not a decimal amount")
	errNegativeValue = errors.New("negative amount")
	errBadSequence   = errors.New("not an integer sequence number")
)

// Date layouts accepted in the Date column, tried in order. Cells may
// also hold an Excel serial number when the source formats dates as
// plain numbers.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02-01-2006",
	"02/01/2006",
	"2-Jan-2006",
	"2 Jan 2006",
}

// excelEpoch is day zero of the 1900 date system used by xlsx files.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDate coerces a Date cell. A blank cell yields the zero time: the
// record stays in the sequence but is unusable for aggregation.
// Timestamps are truncated to the calendar day in UTC.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return toDay(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		// 2958465 is 9999-12-31 in the 1900 date system.
		if serial >= 1 && serial <= 2958465 {
			return excelEpoch.AddDate(0, 0, int(serial)), nil
		}
	}
	return time.Time{}, errBadDate
}

func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseAmount coerces a Debit or Credit cell. Blank defaults to zero;
// thousands separators are tolerated; negative values violate the
// ledger invariant and are rejected.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, errBadAmount
	}
	if d.IsNegative() {
		return decimal.Zero, errNegativeValue
	}
	return d, nil
}

// parseBalance coerces a Balance cell. Blank means the row carries no
// running balance; negative balances (overdraft) are legitimate.
func parseBalance(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.NullDecimal{}, errBadAmount
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// parseSeq coerces the "#" cell, absent on continuation rows.
func parseSeq(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, errBadSequence
	}
	return &n, nil
}
