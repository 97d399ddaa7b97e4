// Package core holds the ledger domain types shared across the loader,
// the aggregation engine and the report writer.
package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Group codes observed in SRT ledgers. GRP is an open set: any other
// value is carried through unchanged and simply never matches a
// configured sum.
const (
	GroupBT         = "BT"
	GroupEXP        = "EXP"
	GroupZIH        = "ZIH"
	GroupDBT        = "DBT"
	GroupECSBank    = "ecs"
	GroupECSPrivate = "ecs pvt"
)

type (
	// Record is one row of the SRT ledger sheet, immutable after load.
	Record struct {
		Seq            *int64 // "#" column, absent on some rows
		Group          string // GRP
		Date           time.Time
		Description    string // C2
		Debit          decimal.Decimal
		Credit         decimal.Decimal
		Balance        decimal.NullDecimal // running balance after this row
		Category       string              // C1
		Classification string              // First Level Classification
		Tag            string              // ITA
	}

	// MonthlyStats is one computed STAT row covering a single calendar
	// month. Sum fields default to zero; EOD is null until a balance is
	// observed or carried forward.
	MonthlyStats struct {
		Month time.Time // first day of the month, UTC

		EOD decimal.NullDecimal

		BTCredit  decimal.Decimal
		BTDebit   decimal.Decimal
		Expense   decimal.Decimal
		ZIHCredit decimal.Decimal
		ZIHDebit  decimal.Decimal
		DBTCredit decimal.Decimal
		DBTDebit  decimal.Decimal

		ECSBankPayment     decimal.Decimal
		ECSPrivatePayment  decimal.Decimal
		ECSBankReceived    decimal.Decimal
		ECSPrivateReceived decimal.Decimal

		NetZIH        decimal.Decimal
		CashFlow      decimal.Decimal
		NetECS        decimal.Decimal
		NetECSBank    decimal.Decimal
		NetECSPrivate decimal.Decimal
		NetDBT        decimal.Decimal
		NetFlow       decimal.Decimal

		TransactionCount int
		CashCount        int
	}

	// Summary aggregates a MonthlyStats series into the overall metrics
	// block of the STAT sheet.
	Summary struct {
		AvailableMonths int
		AverageEOD      decimal.NullDecimal

		TotalBTCredit      decimal.Decimal
		TotalBTDebit       decimal.Decimal
		TotalExpense       decimal.Decimal
		AnnualizedBTCredit decimal.Decimal
		AnnualizedBTDebit  decimal.Decimal

		// Statistical ratios, not monetary values.
		CreditVolatility float64
		DebitVolatility  float64
		SalesTrend       float64
		PurchaseTrend    float64
	}
)

// HasDate reports whether the record carries a usable transaction date.
// Records without one are kept in load order but never aggregated.
func (r Record) HasDate() bool {
	return !r.Date.IsZero()
}

// MonthLabel is the column header used for this row in the STAT sheet.
func (m MonthlyStats) MonthLabel() string {
	return m.Month.Format("2006-01-02")
}
