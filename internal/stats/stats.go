// Package stats computes the monthly STAT rows and the overall summary
// block from an in-memory record sequence. Everything here is a pure
// function over immutable input: it never mutates records and never
// fails, sparse or empty months just produce zero sums.
package stats

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandeepbabloo/loan-primer/internal/core"
)

// DefaultExcludeTokens voids a row for summation when its C2 cell
// contains one of these markers (returned/reversed transactions).
var DefaultExcludeTokens = []string{"RTN"}

// Options tunes the aggregation. The zero value applies the default
// exclusion tokens.
type Options struct {
	// ExcludeTokens are matched case-insensitively as substrings of the
	// C2 description. A matching record is dropped from every group
	// sum, but still participates in EOD balance selection.
	ExcludeTokens []string
}

func (o Options) tokens() []string {
	if o.ExcludeTokens == nil {
		return DefaultExcludeTokens
	}
	return o.ExcludeTokens
}

func (o Options) excluded(description string) bool {
	desc := strings.ToUpper(description)
	for _, tok := range o.tokens() {
		if tok != "" && strings.Contains(desc, strings.ToUpper(tok)) {
			return true
		}
	}
	return false
}

// Compute returns one MonthlyStats per consecutive calendar month,
// starting at the month containing start. months <= 0 yields an empty
// slice. Records without a date are skipped entirely.
func Compute(records []core.Record, start time.Time, months int, opts Options) []core.MonthlyStats {
	if months <= 0 {
		return nil
	}

	firstMonth := monthStart(start, 0)
	rows := make([]core.MonthlyStats, 0, months)

	// Seed the carry-forward balance from the last balance-bearing
	// record dated before the first window.
	carry := balanceBefore(records, firstMonth)

	for i := 0; i < months; i++ {
		from := monthStart(start, i)
		to := monthEnd(from)
		row := computeMonth(records, from, to, opts)

		if !row.EOD.Valid {
			row.EOD = carry
		}
		carry = row.EOD

		rows = append(rows, row)
	}
	return rows
}

// monthStart is the first day of start's month shifted forward by
// offset months, at midnight UTC.
func monthStart(start time.Time, offset int) time.Time {
	return time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
}

// monthEnd is the last day of the month beginning at from. AddDate
// handles 28/29/30/31-day months and leap years.
func monthEnd(from time.Time) time.Time {
	return from.AddDate(0, 1, -1)
}

// inWindow reports whether d falls inside [from, to], both ends
// inclusive.
func inWindow(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

func computeMonth(records []core.Record, from, to time.Time, opts Options) core.MonthlyStats {
	row := core.MonthlyStats{Month: from}

	// Chronologically last balance observed inside the window,
	// row order breaking date ties.
	var eodDate time.Time

	for _, rec := range records {
		if !rec.HasDate() || !inWindow(rec.Date, from, to) {
			continue
		}

		if rec.Balance.Valid && !rec.Date.Before(eodDate) {
			eodDate = rec.Date
			row.EOD = rec.Balance
		}

		if rec.Group == core.GroupBT {
			row.TransactionCount++
			if rec.Category == "Cash Deposit" || rec.Category == "Cash Withdrawal" {
				row.CashCount++
			}
		}

		if opts.excluded(rec.Description) {
			continue
		}

		switch rec.Group {
		case core.GroupBT:
			row.BTCredit = row.BTCredit.Add(rec.Credit)
			row.BTDebit = row.BTDebit.Add(rec.Debit)
		case core.GroupEXP:
			row.Expense = row.Expense.Add(rec.Debit)
		case core.GroupZIH:
			row.ZIHCredit = row.ZIHCredit.Add(rec.Credit)
			row.ZIHDebit = row.ZIHDebit.Add(rec.Debit)
		case core.GroupDBT:
			row.DBTCredit = row.DBTCredit.Add(rec.Credit)
			row.DBTDebit = row.DBTDebit.Add(rec.Debit)
		case core.GroupECSBank:
			row.ECSBankReceived = row.ECSBankReceived.Add(rec.Credit)
			row.ECSBankPayment = row.ECSBankPayment.Add(rec.Debit)
		case core.GroupECSPrivate:
			row.ECSPrivateReceived = row.ECSPrivateReceived.Add(rec.Credit)
			row.ECSPrivatePayment = row.ECSPrivatePayment.Add(rec.Debit)
		}
	}

	derive(&row)
	return row
}

// derive fills the fields that are pure functions of the sums above.
func derive(row *core.MonthlyStats) {
	row.NetZIH = row.ZIHCredit.Sub(row.ZIHDebit)
	row.CashFlow = row.BTCredit.Sub(row.BTDebit).Sub(row.Expense)
	row.NetECSBank = row.ECSBankReceived.Sub(row.ECSBankPayment)
	row.NetECSPrivate = row.ECSPrivateReceived.Sub(row.ECSPrivatePayment)
	row.NetECS = row.NetECSBank.Add(row.NetECSPrivate)
	row.NetDBT = row.DBTCredit.Sub(row.DBTDebit)
	row.NetFlow = row.CashFlow.Add(row.NetZIH).Add(row.NetECSBank).Add(row.NetECSPrivate)
}

// balanceBefore finds the running balance of the chronologically last
// balance-bearing record dated strictly before cutoff. Null when no
// such record exists.
func balanceBefore(records []core.Record, cutoff time.Time) decimal.NullDecimal {
	var (
		best     decimal.NullDecimal
		bestDate time.Time
	)
	for _, rec := range records {
		if !rec.HasDate() || !rec.Date.Before(cutoff) || !rec.Balance.Valid {
			continue
		}
		if !rec.Date.Before(bestDate) {
			bestDate = rec.Date
			best = rec.Balance
		}
	}
	return best
}
